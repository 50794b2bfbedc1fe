package error

import "errors"

// Reminder domain errors.
var (
	// ErrReminderBatchLoad is returned when settings or payments cannot be loaded for a run.
	// A run never proceeds on partial data.
	ErrReminderBatchLoad = errors.New("failed to load reminder batch")
)

// ReminderErrorCode defines error codes for reminder errors.
// Format: REM-XXYYYY where XX is category and YYYY is specific error.
type ReminderErrorCode string

const (
	// Batch errors (01XXXX)
	ErrCodeReminderBatchLoad ReminderErrorCode = "REM-010001"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
