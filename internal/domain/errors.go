package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("phone number already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingField    = fmt.Errorf("%w: missing 'phoneNumber' or 'response'", ErrInvalidInput)
	ErrInvalidResponse = fmt.Errorf("%w: invalid response status", ErrInvalidInput)
	ErrNotConfirmed    = errors.New("operation not confirmed")
	ErrSourceNotFound  = errors.New("source file not found")
)

// GuestNotFoundError is returned when an RSVP update matches no guest row.
type GuestNotFoundError struct {
	PhoneNumber string
}

func (e *GuestNotFoundError) Error() string {
	return fmt.Sprintf("no guest with phone number %q", e.PhoneNumber)
}

// Unwrap lets errors.Is(err, ErrNotFound) match.
func (e *GuestNotFoundError) Unwrap() error { return ErrNotFound }
