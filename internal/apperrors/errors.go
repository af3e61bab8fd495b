package apperrors

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Resume pipeline errors. Extraction and summarization failures are kept
// apart so a caller can tell a bad PDF from an unavailable model.
var (
	ErrMissingFile         = errors.New("resume PDF is required")
	ErrExtractionFailed    = errors.New("failed to extract text from PDF")
	ErrSummarizationFailed = errors.New("failed to summarize resume")
)

// CustomError carries a client-facing message and, for validation
// failures, the JSON name of the offending field.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// MessageOf returns the client-facing message of err when it carries one.
func MessageOf(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}
