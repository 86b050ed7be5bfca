package errors

import (
	"fmt"
	"net/http"
	"os"
)

// Stable machine-readable error codes. Clients branch on these; the
// strings never change once published.
const (
	CodeInvalidBet          = "INVALID_BET"
	CodeInvalidBetType      = "INVALID_BET_TYPE"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeServerError         = "SERVER_ERROR"
)

// AppError is the application error carried from the core to the
// transport layer: a stable code plus a human-readable message.
// DebugMessage and the wrapped error never leave the process outside
// development.
type AppError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	DebugMessage string `json:"debug_message,omitempty"`
	Err          error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s [%v]", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error into an AppError
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Response returns a map suitable for a JSON error body. The debug
// message is included only in development.
func (e *AppError) Response() map[string]interface{} {
	response := map[string]interface{}{
		"code":    e.Code,
		"message": e.Message,
	}

	env := os.Getenv("APP_ENV")
	if (env == "dev" || env == "development") && e.DebugMessage != "" {
		response["debug_message"] = e.DebugMessage
	}

	return response
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode extracts the stable code from an error, defaulting to
// SERVER_ERROR for anything that is not an AppError.
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeServerError
}

// HTTPStatusFromCode maps error codes to HTTP status codes. Validation
// and affordability failures are client errors; only SERVER_ERROR is a
// 5xx.
func HTTPStatusFromCode(code string) int {
	switch code {
	case CodeInvalidBet, CodeInvalidBetType, CodeInsufficientBalance:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
