package card

import (
	"testing"
	"time"
)

func fixedClock(year int, month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestUpdateCardNumberVisa(t *testing.T) {
	v := NewValidator()
	state := v.UpdateCardNumber(NewFormState(), "4111111111111111")

	if state.Brand != "visa" {
		t.Fatalf("brand got %q want visa", state.Brand)
	}
	if state.CardNumberFormatted != "4111 1111 1111 1111" {
		t.Fatalf("formatted got %q", state.CardNumberFormatted)
	}
	if state.CardNumberMaxDigits != 16 {
		t.Fatalf("max digits got %d want 16", state.CardNumberMaxDigits)
	}
	if state.CVVMaxDigits != 3 {
		t.Fatalf("cvv max got %d want 3", state.CVVMaxDigits)
	}
}

func TestUpdateCardNumberAmex(t *testing.T) {
	v := NewValidator()
	state := v.UpdateCardNumber(NewFormState(), "371449635398431")

	if state.Brand != "amex" {
		t.Fatalf("brand got %q want amex", state.Brand)
	}
	if state.CardNumberMaxDigits != 15 {
		t.Fatalf("max digits got %d want 15", state.CardNumberMaxDigits)
	}
	if state.CardNumberFormatted != "3714 4963 5398 431" {
		t.Fatalf("formatted got %q", state.CardNumberFormatted)
	}
	if state.CVVMaxDigits != 4 {
		t.Fatalf("cvv max got %d want 4", state.CVVMaxDigits)
	}
}

func TestUpdateCardNumberBrandTable(t *testing.T) {
	tests := []struct {
		input     string
		brand     string
		maxDigits int
	}{
		{"4000123412341234", "visa", 16},
		{"5212345678901234", "mastercard", 16},
		{"5512345678901234", "mastercard", 16},
		{"6011000990139424", "discover", 16},
		{"6500000000000000", "discover", 16},
		{"30569309025904", "diners", 14},
		{"36148900647913", "diners", 14},
		{"3530111333300000", "jcb", 16},
		{"9999999999999999", "unknown", 16},
	}

	v := NewValidator()
	for _, tt := range tests {
		state := v.UpdateCardNumber(NewFormState(), tt.input)
		if state.Brand != tt.brand {
			t.Fatalf("input %s: brand got %q want %q", tt.input, state.Brand, tt.brand)
		}
		if state.CardNumberMaxDigits != tt.maxDigits {
			t.Fatalf("input %s: max digits got %d want %d", tt.input, state.CardNumberMaxDigits, tt.maxDigits)
		}
	}
}

func TestUpdateCardNumberEmpty(t *testing.T) {
	v := NewValidator()
	state := v.UpdateCardNumber(NewFormState(), "no digits here")

	if state.Brand != BrandNone {
		t.Fatalf("brand got %q want none", state.Brand)
	}
	if state.CardNumberFormatted != "" {
		t.Fatalf("formatted got %q want empty", state.CardNumberFormatted)
	}
	if state.CardNumberMaxDigits != 16 || state.CVVMaxDigits != 3 {
		t.Fatalf("defaults not restored: %+v", state)
	}
}

func TestUpdateCardNumberTruncatesToBrandCap(t *testing.T) {
	v := NewValidator()
	// Diners caps at 14; extra typed digits are dropped.
	state := v.UpdateCardNumber(NewFormState(), "305693090259041111")

	if len(state.CardNumberDigits) != 14 {
		t.Fatalf("digits not truncated: %q", state.CardNumberDigits)
	}
	if state.CardNumberFormatted != "3056 9309 0259 04" {
		t.Fatalf("formatted got %q", state.CardNumberFormatted)
	}
}

func TestUpdateCardNumberStripsSeparators(t *testing.T) {
	v := NewValidator()
	state := v.UpdateCardNumber(NewFormState(), "4111-1111 1111x1111")
	if state.CardNumberDigits != "4111111111111111" {
		t.Fatalf("digits got %q", state.CardNumberDigits)
	}
}

func TestUpdateCardNumberDoesNotTruncateStoredCVV(t *testing.T) {
	v := NewValidator()
	state := NewFormState()
	state = v.UpdateCardNumber(state, "371449635398431") // amex, cvv max 4
	state = v.UpdateCVV(state, "1234")

	// Switching to a 3-digit-CVV brand lowers the cap but leaves the
	// stored CVV alone; only a later CVV edit shortens it.
	state = v.UpdateCardNumber(state, "4111111111111111")
	if state.CVVMaxDigits != 3 {
		t.Fatalf("cvv max got %d want 3", state.CVVMaxDigits)
	}
	if state.CVVDigits != "1234" {
		t.Fatalf("stored cvv should be untouched, got %q", state.CVVDigits)
	}
}

func TestUpdateExpiryFormatting(t *testing.T) {
	tests := []struct {
		raw       string
		formatted string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "12/3"},
		{"1234", "12/34"},
		{"12/34", "12/34"},
		{"12345", "12/34"},
		{"1a2b3c4d", "12/34"},
	}

	v := NewValidatorAt(fixedClock(2026, time.January))
	for _, tt := range tests {
		state := v.UpdateExpiry(NewFormState(), tt.raw)
		if state.ExpiryFormatted != tt.formatted {
			t.Fatalf("raw %q: formatted got %q want %q", tt.raw, state.ExpiryFormatted, tt.formatted)
		}
	}
}

func TestUpdateExpiryInvalidMonth(t *testing.T) {
	v := NewValidatorAt(fixedClock(2026, time.June))

	state := v.UpdateExpiry(NewFormState(), "13")
	if state.ExpiryError != MsgInvalidMonth {
		t.Fatalf("error got %q want %q", state.ExpiryError, MsgInvalidMonth)
	}

	// A third digit does not clear the error while the month stays bad.
	state = v.UpdateExpiry(state, "133")
	if state.ExpiryError != MsgInvalidMonth {
		t.Fatalf("error should persist, got %q", state.ExpiryError)
	}

	// Correcting the month clears it.
	state = v.UpdateExpiry(state, "12")
	if state.ExpiryError != "" {
		t.Fatalf("error should clear once the month is valid, got %q", state.ExpiryError)
	}

	state = v.UpdateExpiry(state, "00")
	if state.ExpiryError != MsgInvalidMonth {
		t.Fatalf("month 00 should be invalid, got %q", state.ExpiryError)
	}
}

func TestUpdateExpiryExpiredCard(t *testing.T) {
	v := NewValidatorAt(fixedClock(2026, time.June))

	tests := []struct {
		raw     string
		wantErr string
	}{
		{"0626", ""},                 // current month/year: valid, not expired
		{"0526", MsgCardExpired},     // one month back, same year
		{"1225", MsgCardExpired},     // previous year
		{"0726", ""},                 // next month
		{"0627", ""},                 // next year
		{"06", ""},                   // partial: no expiry judgment
		{"062", ""},                  // partial: no expiry judgment
		{"0", ""},                    // single digit
	}

	for _, tt := range tests {
		state := v.UpdateExpiry(NewFormState(), tt.raw)
		if state.ExpiryError != tt.wantErr {
			t.Fatalf("raw %q: error got %q want %q", tt.raw, state.ExpiryError, tt.wantErr)
		}
	}
}

func TestUpdateExpiryClearsStaleExpiredError(t *testing.T) {
	v := NewValidatorAt(fixedClock(2026, time.June))

	state := v.UpdateExpiry(NewFormState(), "0526")
	if state.ExpiryError != MsgCardExpired {
		t.Fatalf("expected expired error, got %q", state.ExpiryError)
	}

	// Deleting the year digits drops back to the partial-input state.
	state = v.UpdateExpiry(state, "05")
	if state.ExpiryError != "" {
		t.Fatalf("partial input should clear the error, got %q", state.ExpiryError)
	}
}

func TestUpdateCVVStripsNonDigits(t *testing.T) {
	v := NewValidator()
	state := v.UpdateCVV(NewFormState(), "1a2b3")
	if state.CVVDigits != "123" {
		t.Fatalf("cvv got %q want 123", state.CVVDigits)
	}
}

func TestUpdateCardholderNamePassthrough(t *testing.T) {
	v := NewValidator()
	state := v.UpdateCardholderName(NewFormState(), "  Ana María O'Neill 3rd ")
	if state.CardholderName != "  Ana María O'Neill 3rd " {
		t.Fatalf("name got %q", state.CardholderName)
	}
}

func TestSubmissionPayload(t *testing.T) {
	v := NewValidatorAt(fixedClock(2026, time.June))

	state := NewFormState()
	if _, ok := state.SubmissionPayload(); ok {
		t.Fatal("empty form should not be submittable")
	}

	state = v.UpdateCardholderName(state, "John Doe")
	state = v.UpdateCardNumber(state, "4111 1111 1111 1111")
	state = v.UpdateExpiry(state, "12/28")
	state = v.UpdateCVV(state, "123")

	payload, ok := state.SubmissionPayload()
	if !ok {
		t.Fatalf("form should be complete: %+v", state)
	}
	if payload.CardNumberDigits != "4111111111111111" {
		t.Fatalf("payload number got %q", payload.CardNumberDigits)
	}
	if payload.ExpiryMonth != 12 || payload.ExpiryYear != 28 {
		t.Fatalf("payload expiry got %d/%d", payload.ExpiryMonth, payload.ExpiryYear)
	}
	if payload.CVVDigits != "123" {
		t.Fatalf("payload cvv got %q", payload.CVVDigits)
	}

	// An expired date blocks submission even though typing continues.
	expired := v.UpdateExpiry(state, "0526")
	if _, ok := expired.SubmissionPayload(); ok {
		t.Fatal("expired form should not be submittable")
	}
}

func TestIdentifyBrandFirstMatchWins(t *testing.T) {
	// "36" is diners territory even though jcb's "35" sits later in the
	// table; "35" must reach jcb, not diners.
	if rule, ok := IdentifyBrand("36"); !ok || rule.Name != "diners" {
		t.Fatalf("prefix 36 got %v %v", rule.Name, ok)
	}
	if rule, ok := IdentifyBrand("35"); !ok || rule.Name != "jcb" {
		t.Fatalf("prefix 35 got %v %v", rule.Name, ok)
	}
	if _, ok := IdentifyBrand(""); ok {
		t.Fatal("empty string should not match any brand")
	}
}
