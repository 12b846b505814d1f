package enums

import "fmt"

// PaymentStatus describes the outcome reported by the payment gateway.
type PaymentStatus string

const (
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusCaptured   PaymentStatus = "CAPTURED"
	PaymentStatusDeclined   PaymentStatus = "DECLINED"
	PaymentStatusError      PaymentStatus = "ERROR"
	PaymentStatusPending    PaymentStatus = "PENDING"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusAuthorized,
	PaymentStatusCaptured,
	PaymentStatusDeclined,
	PaymentStatusError,
	PaymentStatusPending,
}

// IsValid reports whether the value matches the canonical payment status enum.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts the raw string to PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
