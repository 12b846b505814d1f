package card

import (
	"strconv"
	"strings"
	"time"
)

// The two error messages the expiry field can surface. They are advisory:
// the field keeps accepting input regardless.
const (
	MsgInvalidMonth = "Invalid month (must be 01-12)"
	MsgCardExpired  = "Card is expired"
)

// FormState is the full state of the payment form between keystrokes.
// It is only ever mutated through the Validator's field-update operations,
// each of which takes the previous state and returns the next one.
type FormState struct {
	CardholderName      string
	CardNumberDigits    string
	CardNumberFormatted string
	CardNumberMaxDigits int
	Brand               string
	ExpiryDigits        string
	ExpiryFormatted     string
	ExpiryError         string
	CVVDigits           string
	CVVMaxDigits        int
}

// Payload is the digit-only submission shape handed across the payment
// gateway boundary once the form is complete.
type Payload struct {
	CardholderName   string
	CardNumberDigits string
	ExpiryMonth      int
	ExpiryYear       int
	CVVDigits        string
}

// Validator runs the per-keystroke field operations over a payment form.
// All operations are pure and total: malformed input degrades to an
// unknown brand or an error string, never to a failure.
type Validator struct {
	now func() time.Time
}

// NewValidator returns a validator on the real clock.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorAt pins the validator to the given clock.
func NewValidatorAt(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

// NewFormState returns the empty form shown when the checkout opens.
func NewFormState() FormState {
	return FormState{
		Brand:               BrandNone,
		CardNumberMaxDigits: defaultMaxDigits,
		CVVMaxDigits:        defaultCVVDigits,
	}
}

// StripDigits removes every non-digit character from raw.
func StripDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpdateCardNumber re-derives the card number field from raw input: strip,
// identify the brand, truncate to the brand's digit cap and regroup in
// blocks of four for display. The CVV cap follows the new brand, but an
// already-typed CVV is left as-is; only a later CVV edit shortens it.
func (v *Validator) UpdateCardNumber(state FormState, raw string) FormState {
	digits := StripDigits(raw)

	maxDigits := defaultMaxDigits
	cvvDigits := defaultCVVDigits
	brand := BrandNone
	if rule, ok := IdentifyBrand(digits); ok {
		brand = rule.Name
		maxDigits = rule.MaxDigits
		cvvDigits = rule.CVVDigits
	} else if digits != "" {
		brand = BrandUnknown
	}

	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}

	state.CardNumberDigits = digits
	state.CardNumberFormatted = groupInFours(digits)
	state.CardNumberMaxDigits = maxDigits
	state.Brand = brand
	state.CVVMaxDigits = cvvDigits
	return state
}

// UpdateExpiry re-derives the expiry field from raw input and runs the
// incremental validation over however many digits have been typed so far:
// with two or more digits the month must be 01-12, and only once all four
// digits are present is the date compared against the current month. A
// date equal to the current month/year is still valid.
func (v *Validator) UpdateExpiry(state FormState, raw string) FormState {
	digits := StripDigits(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}

	state.ExpiryDigits = digits
	if len(digits) <= 2 {
		state.ExpiryFormatted = digits
	} else {
		state.ExpiryFormatted = digits[:2] + "/" + digits[2:]
	}
	state.ExpiryError = ""

	if len(digits) < 2 {
		return state
	}

	month, _ := strconv.Atoi(digits[:2])
	if month < 1 || month > 12 {
		state.ExpiryError = MsgInvalidMonth
		return state
	}

	if len(digits) < 4 {
		// Valid month, incomplete year: no premature expiry judgment.
		return state
	}

	year, _ := strconv.Atoi(digits[2:])
	now := v.now()
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		state.ExpiryError = MsgCardExpired
	}
	return state
}

// UpdateCVV strips non-digits from raw. Length capping is the caller's
// job, driven by FormState.CVVMaxDigits, mirroring how the field's
// max-length constraint behaves in the form.
func (v *Validator) UpdateCVV(state FormState, raw string) FormState {
	state.CVVDigits = StripDigits(raw)
	return state
}

// UpdateCardholderName stores the free-text name untouched.
func (v *Validator) UpdateCardholderName(state FormState, raw string) FormState {
	state.CardholderName = raw
	return state
}

// Complete reports whether every field holds a submittable value.
func (s FormState) Complete() bool {
	if strings.TrimSpace(s.CardholderName) == "" {
		return false
	}
	if s.CardNumberDigits == "" {
		return false
	}
	if len(s.ExpiryDigits) != 4 || s.ExpiryError != "" {
		return false
	}
	return s.CVVDigits != ""
}

// SubmissionPayload converts a complete form into the digit-only payload
// handed to the payment transport. ok is false while the form is not yet
// submittable.
func (s FormState) SubmissionPayload() (Payload, bool) {
	if !s.Complete() {
		return Payload{}, false
	}
	month, _ := strconv.Atoi(s.ExpiryDigits[:2])
	year, _ := strconv.Atoi(s.ExpiryDigits[2:])
	return Payload{
		CardholderName:   s.CardholderName,
		CardNumberDigits: s.CardNumberDigits,
		ExpiryMonth:      month,
		ExpiryYear:       year,
		CVVDigits:        s.CVVDigits,
	}, true
}

func groupInFours(digits string) string {
	if digits == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/4)
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}
