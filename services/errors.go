package services

import "fmt"

// ValidationError carries a caller-facing reason for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// AuthError is a failed credential check.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
