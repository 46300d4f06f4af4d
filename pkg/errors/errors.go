package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"
	ErrRunningAsRoot ErrorCode = "RUNNING_AS_ROOT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestParse     ErrorCode = "MANIFEST_PARSE"
	ErrManifestWrite     ErrorCode = "MANIFEST_WRITE"
	ErrFileNotTracked    ErrorCode = "FILE_NOT_TRACKED"
	ErrPackageNotTracked ErrorCode = "PACKAGE_NOT_TRACKED"

	// Transport errors
	ErrTransport ErrorCode = "TRANSPORT"
	ErrGit       ErrorCode = "GIT"

	// Package manager errors
	ErrNoManager      ErrorCode = "NO_PACKAGE_MANAGER"
	ErrUnknownManager ErrorCode = "UNKNOWN_PACKAGE_MANAGER"
	ErrPackageInstall ErrorCode = "PACKAGE_INSTALL"

	// Script errors
	ErrScriptCompile ErrorCode = "SCRIPT_COMPILE"
	ErrScriptRun     ErrorCode = "SCRIPT_RUN"

	// Selector errors
	ErrSelectorCompile ErrorCode = "SELECTOR_COMPILE"
	ErrSelectorEval    ErrorCode = "SELECTOR_EVAL"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrBackupCreate  ErrorCode = "BACKUP_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// GreatnessError represents a structured error with code and details
type GreatnessError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GreatnessError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GreatnessError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GreatnessError) Is(target error) bool {
	var targetErr *GreatnessError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GreatnessError with the given code and message
func New(code ErrorCode, message string) *GreatnessError {
	return &GreatnessError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GreatnessError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GreatnessError {
	return &GreatnessError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GreatnessError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *GreatnessError {
	if err == nil {
		return nil
	}
	return &GreatnessError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GreatnessError {
	if err == nil {
		return nil
	}
	return &GreatnessError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GreatnessError) WithDetail(key string, value interface{}) *GreatnessError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithPaths attaches the source and destination of a failed file operation
func (e *GreatnessError) WithPaths(src, dst string) *GreatnessError {
	return e.WithDetail("source", src).WithDetail("destination", dst)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gErr *GreatnessError
	if errors.As(err, &gErr) {
		return gErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GreatnessError
func GetErrorCode(err error) ErrorCode {
	var gErr *GreatnessError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GreatnessError
func GetErrorDetails(err error) map[string]interface{} {
	var gErr *GreatnessError
	if errors.As(err, &gErr) {
		return gErr.Details
	}
	return nil
}
