package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain matches every error raised by the model package.
	ErrDomain = errors.New("model: domain error")
	// ErrValidation matches errors caused by input that cannot form a valid value.
	ErrValidation = errors.New("model: validation error")
)

var (
	ErrEmptyTitle       = &ValidationError{Field: "title", Reason: "title is empty"}
	ErrInvalidTaskID    = &ValidationError{Field: "id", Reason: "task id must be a non-negative integer"}
	ErrMissingCreatedAt = &ValidationError{Field: "created_at", Reason: "created_at is required"}

	ErrAlreadyCompleted = &DomainError{Reason: "task already completed"}
	// ErrInvalidStateTransition is reserved for transitions other than Active -> Completed.
	ErrInvalidStateTransition = &DomainError{Reason: "invalid state transition"}
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: %s", e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrDomain
}

type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("model: %s", e.Reason)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}
