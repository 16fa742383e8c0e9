// Package errors provides the standardized error taxonomy for the assistant
// core: input validation, not-found, external degradation, and storage
// failures.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyMessage         ErrorCode = "EMPTY_MESSAGE"
	ErrCodeNoChanges            ErrorCode = "NO_CHANGES"
	ErrCodeConversationNotFound ErrorCode = "CONVERSATION_NOT_FOUND"
	ErrCodeItemNotFound         ErrorCode = "ITEM_NOT_FOUND"

	ErrCodeClassifierDisabled    ErrorCode = "CLASSIFIER_DISABLED"
	ErrCodeClassifierUnavailable ErrorCode = "CLASSIFIER_UNAVAILABLE"
	ErrCodeClassifierBadOutput   ErrorCode = "CLASSIFIER_BAD_OUTPUT"

	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: isRetryable(code),
		Timestamp: time.Now(),
	}
}

// Wrap creates a StandardError that carries the underlying error as details.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	stdErr := New(code, message)
	if err != nil {
		stdErr.Details = err.Error()
	}
	return stdErr
}

// CodeOf extracts the ErrorCode from an error chain, or empty string.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeQueryExecutionFailed, ErrCodeClassifierUnavailable, ErrCodeCacheUnavailable:
		return true
	}
	return false
}
