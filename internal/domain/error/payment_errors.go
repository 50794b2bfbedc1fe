// Package error defines domain-specific errors for the PayOnTime application.
package error

import "errors"

// Payment domain errors.
var (
	// ErrPaymentNotFound is returned when a payment does not exist or belongs to another user.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrMissingPaymentFields is returned when a required payment field is empty.
	ErrMissingPaymentFields = errors.New("missing required payment fields")

	// ErrInvalidScheduleMode is returned when the schedule mode is not one of the supported modes.
	ErrInvalidScheduleMode = errors.New("invalid schedule mode")

	// ErrMissingDueDate is returned when a one-time payment has no due date.
	ErrMissingDueDate = errors.New("one-time payment requires a due date")

	// ErrInvalidDayOfMonth is returned when the day of month is outside 1-31.
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")

	// ErrInvalidInterval is returned when the interval unit or value is invalid.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidRemindOffsets is returned when a reminder offset is out of range.
	ErrInvalidRemindOffsets = errors.New("invalid reminder offsets")

	// ErrInvalidPaymentAmount is returned when the amount is negative.
	ErrInvalidPaymentAmount = errors.New("amount must not be negative")

	// ErrInvalidMonthOfYear is returned when the month of year is outside 1-12.
	ErrInvalidMonthOfYear = errors.New("month of year must be between 1 and 12")

	// ErrInvalidCurrency is returned when the currency is not a three-letter code.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidProviderAddress is returned when the provider address is not an http(s) URL.
	ErrInvalidProviderAddress = errors.New("invalid provider address")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingPaymentFields   PaymentErrorCode = "PAY-010001"
	ErrCodeInvalidScheduleMode    PaymentErrorCode = "PAY-010002"
	ErrCodeMissingDueDate         PaymentErrorCode = "PAY-010003"
	ErrCodeInvalidDayOfMonth      PaymentErrorCode = "PAY-010004"
	ErrCodeInvalidInterval        PaymentErrorCode = "PAY-010005"
	ErrCodeInvalidRemindOffsets   PaymentErrorCode = "PAY-010006"
	ErrCodeInvalidPaymentAmount   PaymentErrorCode = "PAY-010007"
	ErrCodeInvalidMonthOfYear     PaymentErrorCode = "PAY-010008"
	ErrCodeInvalidCurrency        PaymentErrorCode = "PAY-010009"
	ErrCodeInvalidProviderAddress PaymentErrorCode = "PAY-010010"

	// Lookup errors (02XXXX)
	ErrCodePaymentNotFound PaymentErrorCode = "PAY-020001"

	// Storage errors (03XXXX)
	ErrCodePaymentStoreFailed PaymentErrorCode = "PAY-030001"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
