package common

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError.
const (
	CodeDocumentRead   = "DOCUMENT_READ"
	CodeRuleResolution = "RULE_RESOLUTION"
	CodeExtraction     = "EXTRACTION"
	CodeConfig         = "CONFIG_ERROR"
	CodePersistence    = "PERSISTENCE"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel that corresponds to the error code, so callers can
// write errors.Is(err, common.ErrDocumentRead) without knowing the cause.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case CodeDocumentRead:
		return target == ErrDocumentRead
	case CodeRuleResolution:
		return target == ErrRuleResolution
	case CodeExtraction:
		return target == ErrExtraction
	case CodeConfig:
		return target == ErrConfiguration
	case CodePersistence:
		return target == ErrPersistence
	}
	return false
}

// Common application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDocumentRead   = errors.New("document read error")
	ErrRuleResolution = errors.New("rule resolution error")
	ErrExtraction     = errors.New("extraction failure")
	ErrConfiguration  = errors.New("configuration error")
	ErrPersistence    = errors.New("persistence error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// DocumentReadError reports a document that is missing, unreadable or not a
// valid container.
func DocumentReadError(path string, cause error) error {
	return NewAppError(CodeDocumentRead, fmt.Sprintf("read %q", path), cause)
}

// RuleResolutionError reports a field rule whose kind has no strategy.
func RuleResolutionError(field, kind string) error {
	return NewAppError(CodeRuleResolution, fmt.Sprintf("field %q: unknown field type %q", field, kind), nil)
}

func ConfigurationError(message string, cause error) error {
	return NewAppError(CodeConfig, message, cause)
}

func ConfigurationErrorf(format string, args ...interface{}) error {
	return ConfigurationError(fmt.Sprintf(format, args...), nil)
}

func PersistenceError(path string, cause error) error {
	return NewAppError(CodePersistence, fmt.Sprintf("save %q", path), cause)
}
