package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDomain marks a submission whose domain key is not in the catalog.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrEmptyField marks a required field that was empty after trimming.
	ErrEmptyField = errors.New("empty required field")
)

// InvalidDomainError reports an unknown domain key together with the accepted keys.
type InvalidDomainError struct {
	Domain string
	Valid  []string
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("Invalid domain '%s'. Must be one of: %s", e.Domain, strings.Join(e.Valid, ", "))
}

func (e *InvalidDomainError) Is(target error) bool {
	return target == ErrInvalidDomain
}

// EmptyFieldError reports a required field that was empty or whitespace-only.
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("Field '%s' must not be empty", e.Field)
}

func (e *EmptyFieldError) Is(target error) bool {
	return target == ErrEmptyField
}
