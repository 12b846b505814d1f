package card

import "regexp"

// BrandRule describes one card network recognized by the checkout form:
// the leading-digit pattern that identifies it, the number of digits its
// account numbers carry, and the length of its security code.
type BrandRule struct {
	Name      string
	MaxDigits int
	CVVDigits int

	pattern *regexp.Regexp
}

// Sentinel brand names for numbers that match no rule.
const (
	BrandNone    = "none"
	BrandUnknown = "unknown"
)

// Defaults applied when no brand rule matches.
const (
	defaultMaxDigits = 16
	defaultCVVDigits = 3
)

// brandRules is scanned top to bottom; the first matching rule wins, so
// the order is part of the contract.
var brandRules = []BrandRule{
	{Name: "visa", MaxDigits: 16, CVVDigits: 3, pattern: regexp.MustCompile(`^4`)},
	{Name: "mastercard", MaxDigits: 16, CVVDigits: 3, pattern: regexp.MustCompile(`^5[1-5]`)},
	{Name: "amex", MaxDigits: 15, CVVDigits: 4, pattern: regexp.MustCompile(`^3[47]`)},
	{Name: "discover", MaxDigits: 16, CVVDigits: 3, pattern: regexp.MustCompile(`^6(?:011|5)`)},
	{Name: "diners", MaxDigits: 14, CVVDigits: 3, pattern: regexp.MustCompile(`^3(?:0[0-5]|[68])`)},
	{Name: "jcb", MaxDigits: 16, CVVDigits: 3, pattern: regexp.MustCompile(`^35`)},
}

// IdentifyBrand scans the rule table and returns the first rule whose
// prefix pattern matches the digit string. ok is false when nothing
// matched, including the empty string.
func IdentifyBrand(digits string) (BrandRule, bool) {
	if digits == "" {
		return BrandRule{}, false
	}
	for _, rule := range brandRules {
		if rule.pattern.MatchString(digits) {
			return rule, true
		}
	}
	return BrandRule{}, false
}
