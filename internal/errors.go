package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidHeader    ErrorCode = "INVALID_HEADER"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidValidity  ErrorCode = "INVALID_VALIDITY"

	ErrCodeEmployeeNotFound ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeCourseNotFound   ErrorCode = "COURSE_NOT_FOUND"
	ErrCodeDisputeNotFound  ErrorCode = "DISPUTE_NOT_FOUND"
	ErrCodeDuplicateCourse  ErrorCode = "DUPLICATE_COURSE_CODE"

	ErrCodeCourseUnavailable ErrorCode = "COURSE_UNAVAILABLE"

	ErrCodeImportSessionNotFound ErrorCode = "IMPORT_SESSION_NOT_FOUND"
	ErrCodeImportSessionState    ErrorCode = "IMPORT_SESSION_STATE"
	ErrCodeReportNotAvailable    ErrorCode = "REPORT_NOT_AVAILABLE"

	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEmployeeNotFound = NewNotFoundError("Employee not found or inactive", ErrCodeEmployeeNotFound)
	ErrCourseNotFound   = NewNotFoundError("Course not found", ErrCodeCourseNotFound)
	ErrDisputeNotFound  = NewNotFoundError("Dispute not found", ErrCodeDisputeNotFound)
	ErrDuplicateCourse  = NewConflictError("Course code already exists", ErrCodeDuplicateCourse)

	// ErrCourseUnavailable marks a course whose record collection name failed
	// validation. Lookup and aggregation degrade such a course to N/A instead
	// of surfacing this error; only targeted operations (import, drill-down)
	// reject with it.
	ErrCourseUnavailable = NewValidationError("Course record collection is unavailable", ErrCodeCourseUnavailable)

	ErrImportSessionNotFound = NewNotFoundError("Import session not found or expired", ErrCodeImportSessionNotFound)
	ErrImportSessionState    = NewConflictError("Import session has already been committed or cancelled", ErrCodeImportSessionState)
	ErrReportNotAvailable    = NewNotFoundError("Report already downloaded or never produced", ErrCodeReportNotAvailable)

	ErrInvalidToken = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
