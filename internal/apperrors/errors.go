package apperrors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different classes of application errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeTimeout    ErrorType = "timeout"
)

// AppError carries a typed application error with structured context.
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches on type and code so sentinels work through errors.Is even
// after wrapping.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext attaches a key/value pair to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns the error as structured logging fields.
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	for k, v := range e.Context {
		fields = append(fields, k, v)
	}
	return fields
}

// New creates a new AppError.
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  callerSource(),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   callerSource(),
		Context:  make(map[string]interface{}),
	}
}

func callerSource() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", file, line)
}

// Predefined errors.
var (
	// ErrInvalidInput covers rejected submissions: a meal record with a
	// missing nutrition field or a negative target value.
	ErrInvalidInput = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
	// ErrNoTargets is the expected no-data-yet condition: a weekly report
	// was requested before a target profile was configured. Callers prompt
	// for setup rather than treating it as a fault.
	ErrNoTargets = New(ErrorTypeValidation, "NO_TARGETS", "No target profile configured")
	// ErrUpdateConflict is a lost-update race on a (user, date) journal
	// row. Retryable.
	ErrUpdateConflict = New(ErrorTypeConflict, "UPDATE_CONFLICT", "Concurrent update detected")
	ErrDatabase       = New(ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
	ErrExternalAPI    = New(ErrorTypeExternal, "EXTERNAL_API", "External API error")
)

// Convenience constructors.

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "INVALID_INPUT", message)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewExternalAPIError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api)).
		WithContext("api", api)
}

func NewConflictError(err error) *AppError {
	return Wrap(err, ErrorTypeConflict, "UPDATE_CONFLICT", "Concurrent update detected")
}

// Handler logs errors according to their type.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs an error with a severity matching its type. Validation and
// conflict errors are expected operational noise; the rest are critical.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeConflict:
		h.logger.WarnContext(ctx, "Rejected operation", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Operation failed", appErr.LogFields()...)
	}
}
