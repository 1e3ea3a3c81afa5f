// Package failure defines the error taxonomy shared by the batch pipeline.
//
// Every error that crosses a package boundary in this module is a *Error
// carrying a Code. Callers branch on the code (see Is and CodeOf) rather
// than on message text.
//
// Two groups of codes exist:
//
//   - Batch-level: DirectoryNotFound, DirectoryUnreadable, WriteFailed and
//     InvalidInput abort a run.
//   - File-level: ImageNotFound and RecognitionFailed are recorded against
//     a single image and never stop the batch.
package failure

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	DirectoryNotFound   Code = "DIRECTORY_NOT_FOUND"
	DirectoryUnreadable Code = "DIRECTORY_UNREADABLE"
	ImageNotFound       Code = "IMAGE_NOT_FOUND"
	RecognitionFailed   Code = "RECOGNITION_FAILED"
	WriteFailed         Code = "WRITE_FAILED"
	InvalidInput        Code = "INVALID_INPUT"
)

// FileLevel reports whether failures with this code are isolated to one image.
func (c Code) FileLevel() bool {
	return c == ImageNotFound || c == RecognitionFailed
}

// Error is a coded failure with an optional path and cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// As returns err as a *Error. Uncoded errors are wrapped with fallback.
func As(err error, fallback Code, path string) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Code: fallback, Message: err.Error(), Path: path, Cause: err}
}

// Factory functions

func NewDirectoryNotFound(path string, cause error) *Error {
	return &Error{
		Code:    DirectoryNotFound,
		Message: fmt.Sprintf("directory not found: %s", path),
		Path:    path,
		Cause:   cause,
	}
}

func NewDirectoryUnreadable(path string, cause error) *Error {
	return &Error{
		Code:    DirectoryUnreadable,
		Message: fmt.Sprintf("directory cannot be read: %s", path),
		Path:    path,
		Cause:   cause,
	}
}

func NewImageNotFound(path string, cause error) *Error {
	return &Error{
		Code:    ImageNotFound,
		Message: fmt.Sprintf("image not found: %s", path),
		Path:    path,
		Cause:   cause,
	}
}

func NewRecognitionFailed(path string, cause error) *Error {
	return &Error{
		Code:    RecognitionFailed,
		Message: fmt.Sprintf("text recognition failed for %s", path),
		Path:    path,
		Cause:   cause,
	}
}

func NewWriteFailed(path string, cause error) *Error {
	return &Error{
		Code:    WriteFailed,
		Message: fmt.Sprintf("cannot write report to %s", path),
		Path:    path,
		Cause:   cause,
	}
}

func NewInvalidInput(message string) *Error {
	return &Error{
		Code:    InvalidInput,
		Message: message,
	}
}
