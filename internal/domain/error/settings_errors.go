package error

import "errors"

// Settings domain errors.
var (
	// ErrSettingsNotFound is returned when a user has never saved settings.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrInvalidTimezone is returned when the timezone is not a known IANA zone name.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidCopyEmail is returned when the notification copy address is malformed.
	ErrInvalidCopyEmail = errors.New("invalid notification copy email")

	// ErrInvalidPlanTier is returned when the plan tier is not free or premium.
	ErrInvalidPlanTier = errors.New("invalid plan tier")

	// ErrInvalidDisplayName is returned when the display name is too long.
	ErrInvalidDisplayName = errors.New("invalid display name")
)

// SettingsErrorCode defines error codes for settings errors.
// Format: SET-XXYYYY where XX is category and YYYY is specific error.
type SettingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTimezone    SettingsErrorCode = "SET-010001"
	ErrCodeInvalidCopyEmail   SettingsErrorCode = "SET-010002"
	ErrCodeInvalidPlanTier    SettingsErrorCode = "SET-010003"
	ErrCodeInvalidDisplayName SettingsErrorCode = "SET-010004"

	// Storage errors (02XXXX)
	ErrCodeSettingsStoreFailed SettingsErrorCode = "SET-020001"
)

// SettingsError represents a settings error with code and message.
type SettingsError struct {
	Code    SettingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettingsError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new SettingsError with the given code and message.
func NewSettingsError(code SettingsErrorCode, message string, err error) *SettingsError {
	return &SettingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
