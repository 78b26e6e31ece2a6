package engine

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes resource errors.
type ErrorCode string

const (
	// CodeNotFound indicates the topic or directory does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates CREATE on an existing id.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeNotEmpty indicates DROP on a directory that still has entries.
	CodeNotEmpty ErrorCode = "NOT_EMPTY"

	// CodeIOFailure indicates the backend failed.
	CodeIOFailure ErrorCode = "IO_FAILURE"
)

// ResourceError is returned by Controller operations on topics and
// directories.
type ResourceError struct {
	Code   ErrorCode
	Target Target
	ID     string

	// Err is the underlying backend error, if any.
	Err error
}

// Error implements the error interface with the message shown to the user.
func (e *ResourceError) Error() string {
	noun := e.Target.noun()
	switch e.Code {
	case CodeNotFound:
		return fmt.Sprintf("The %s %s does not exist.", noun, e.ID)
	case CodeAlreadyExists:
		return fmt.Sprintf("The %s %s already exists.", noun, e.ID)
	case CodeNotEmpty:
		return fmt.Sprintf("The %s %s is not empty.", noun, e.ID)
	default:
		return fmt.Sprintf("Error occurred accessing %s %s: %v", noun, e.ID, e.Err)
	}
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if err is a ResourceError with CodeNotFound.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsAlreadyExists returns true if err is a ResourceError with CodeAlreadyExists.
func IsAlreadyExists(err error) bool {
	return hasCode(err, CodeAlreadyExists)
}

func hasCode(err error, code ErrorCode) bool {
	var re *ResourceError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

func ioFailure(t Target, id string, err error) *ResourceError {
	return &ResourceError{Code: CodeIOFailure, Target: t, ID: id, Err: err}
}
