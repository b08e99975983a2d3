package command

import (
	"errors"
	"fmt"
)

// MissingArgumentsError reports that required arguments were not given.
type MissingArgumentsError struct {
	What string
}

func (e *MissingArgumentsError) Error() string {
	return "Missing arguments: " + e.What
}

// InvalidArgumentsError reports arguments that are present but unusable:
// wrong count, bad syntax, unknown references or uniqueness conflicts.
type InvalidArgumentsError struct {
	What string
}

func (e *InvalidArgumentsError) Error() string {
	return "Invalid arguments: " + e.What
}

// UnknownError wraps any other failure raised while validating.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	if e.Err == nil {
		return "Unknown error"
	}
	return "Unknown error: " + e.Err.Error()
}

func (e *UnknownError) Unwrap() error { return e.Err }

func Missing(what string) error {
	return &MissingArgumentsError{What: what}
}

func Invalid(format string, args ...any) error {
	return &InvalidArgumentsError{What: fmt.Sprintf(format, args...)}
}

func TooMany() error {
	return Invalid("too many arguments")
}

// Classify returns err unchanged when it is one of the command error types
// and wraps anything else in *UnknownError.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var missing *MissingArgumentsError
	var invalid *InvalidArgumentsError
	var unknown *UnknownError
	if errors.As(err, &missing) || errors.As(err, &invalid) || errors.As(err, &unknown) {
		return err
	}
	return &UnknownError{Err: err}
}

// Arity checks len(args) against per-count messages: missing[i] is reported
// when exactly i arguments were given. More than limit arguments is an
// error unless limit is negative.
func Arity(args []string, limit int, missing ...string) error {
	if n := len(args); n < len(missing) {
		return Missing(missing[n])
	}
	if limit >= 0 && len(args) > limit {
		return TooMany()
	}
	return nil
}
