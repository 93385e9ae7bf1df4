package service

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError carries a message safe to show to the caller.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Msg: err.Error()}
}
