package domain

import "context"

// RSVPSummary aggregates the guest list for the organisers.
type RSVPSummary struct {
	TotalGuests    int
	Pending        int
	Attending      int
	Declined       int
	HeadCount      int // sum of attending_count over Attending rows
	InvitedSeats   int // sum of numeric maxGuests
	NonNumericSeat int // rows whose maxGuests is not an integer
}

// Answered is the number of invitations that are no longer Pending.
func (s *RSVPSummary) Answered() int {
	return s.Attending + s.Declined
}

// RSVPSummaryEmailData holds data for the rsvp_summary email template.
type RSVPSummaryEmailData struct {
	Email   string
	Summary *RSVPSummary
}

// ReportService builds and delivers the RSVP summary.
type ReportService interface {
	Summary(ctx context.Context) (*RSVPSummary, error)
	SendSummary(ctx context.Context, to string) (*RSVPSummary, error)
}
