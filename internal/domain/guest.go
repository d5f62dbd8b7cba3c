package domain

import (
	"context"
	"fmt"
)

// RSVPStatus is the response a guest has given to the invitation.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "Pending"
	RSVPAttending RSVPStatus = "Attending"
	RSVPDeclined  RSVPStatus = "Declined"
)

// Defaults applied when a guest is created without the corresponding field.
const (
	DefaultGuestName      = "N/A"
	DefaultMaxGuests      = "1"
	DefaultAttendingCount = 0
)

// Valid reports whether s is one of the three stored statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPAttending, RSVPDeclined:
		return true
	}
	return false
}

// Answerable reports whether a guest may submit s as their answer.
// Pending is a stored state only.
func (s RSVPStatus) Answerable() bool {
	return s == RSVPAttending || s == RSVPDeclined
}

// ParseRSVPStatus returns the status for s, which must match exactly.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	st := RSVPStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: response %q", ErrInvalidInput, s)
	}
	return st, nil
}

// Guest is one invitation unit keyed by phone number. A single row may stand
// for a whole family, with MaxGuests seats.
// swagger:model Guest
type Guest struct {
	Name           string     `json:"name"`
	PhoneNumber    string     `json:"phoneNumber"`
	MaxGuests      string     `json:"maxGuests"`
	Response       RSVPStatus `json:"response"`
	AttendingCount int        `json:"attending_count"`
}

// NewGuest returns a Guest in the initial Pending state with defaults filled in.
func NewGuest(name, phoneNumber, maxGuests string) *Guest {
	if name == "" {
		name = DefaultGuestName
	}
	if maxGuests == "" {
		maxGuests = DefaultMaxGuests
	}
	return &Guest{
		Name:           name,
		PhoneNumber:    phoneNumber,
		MaxGuests:      maxGuests,
		Response:       RSVPPending,
		AttendingCount: DefaultAttendingCount,
	}
}

// GuestRepository defines the storage operations for guests.
type GuestRepository interface {
	GetAll(ctx context.Context) ([]*Guest, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*Guest, error)
	Exists(ctx context.Context, phoneNumber string) (bool, error)
	// UpdateRSVP sets response and attending_count on every row matching
	// phoneNumber in one statement and returns the number of rows touched.
	UpdateRSVP(ctx context.Context, phoneNumber string, response RSVPStatus, attendingCount int) (int64, error)
	Create(ctx context.Context, g *Guest) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	// ResetAll puts every row back to Pending with a zero count.
	ResetAll(ctx context.Context) (int64, error)
}

// GuestStore is a GuestRepository that can also run work in a transaction.
// fn receives a repository bound to the transaction; a non-nil error from fn
// rolls back everything fn did.
type GuestStore interface {
	Guests() GuestRepository
	WithTx(ctx context.Context, fn func(repo GuestRepository) error) error
}

// UpdateRSVPInput is the payload accepted by GuestService.UpdateRSVP.
// A nil AttendingCount is stored as zero.
type UpdateRSVPInput struct {
	PhoneNumber    string
	Response       string
	AttendingCount *int
}

// RSVPUpdateResult echoes the applied change.
type RSVPUpdateResult struct {
	UpdatedCount   int64      `json:"updated_count"`
	Response       RSVPStatus `json:"response"`
	AttendingCount int        `json:"attending_count"`
}

// GuestService is the public RSVP API.
type GuestService interface {
	ListGuests(ctx context.Context) ([]*Guest, error)
	UpdateRSVP(ctx context.Context, in UpdateRSVPInput) (*RSVPUpdateResult, error)
}
