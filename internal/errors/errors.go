package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a TweetSmith error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED" // 500
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// AppError represents a structured error with code, status, and details.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a saved tweet cannot be found.
func NewNotFound(id string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "Tweet not found.",
		Details: map[string]any{"id": id},
	}
}

// NewGenerationFailed creates a 500 error for a failed call to the
// generation service. The hint names the address that was tried.
func NewGenerationFailed(err error, baseURL string) *AppError {
	msg := "unknown error occurred"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Code:    ErrGenerationFailed,
		Status:  500,
		Message: fmt.Sprintf("Failed to transform tweet: %s. Is Ollama running at %s?", msg, baseURL),
		Details: map[string]any{"ollama_url": baseURL},
		Err:     err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AppError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Err:     err,
	}
}

// Is checks if an error is (or wraps) an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As extracts an AppError from err, converting anything else into an
// internal error.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}
