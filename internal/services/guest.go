package services

import (
	"context"
	"fmt"

	"rsvptracker/internal/domain"
)

type guestService struct {
	repo domain.GuestRepository
}

// NewGuestService creates a GuestService over the given repository.
func NewGuestService(repo domain.GuestRepository) domain.GuestService {
	return &guestService{repo: repo}
}

func (s *guestService) ListGuests(ctx context.Context) ([]*domain.Guest, error) {
	guests, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}

// UpdateRSVP validates the answer and applies it with a single update
// statement. The affected-row count decides between success and not found,
// so there is no separate existence check to race with.
//
// attending_count is not checked against maxGuests.
func (s *guestService) UpdateRSVP(ctx context.Context, in domain.UpdateRSVPInput) (*domain.RSVPUpdateResult, error) {
	if in.PhoneNumber == "" || in.Response == "" {
		return nil, domain.ErrMissingField
	}
	status := domain.RSVPStatus(in.Response)
	if !status.Answerable() {
		return nil, domain.ErrInvalidResponse
	}
	count := 0
	if in.AttendingCount != nil {
		count = *in.AttendingCount
	}

	updated, err := s.repo.UpdateRSVP(ctx, in.PhoneNumber, status, count)
	if err != nil {
		return nil, fmt.Errorf("update rsvp: %w", err)
	}
	if updated == 0 {
		return nil, &domain.GuestNotFoundError{PhoneNumber: in.PhoneNumber}
	}
	return &domain.RSVPUpdateResult{
		UpdatedCount:   updated,
		Response:       status,
		AttendingCount: count,
	}, nil
}
