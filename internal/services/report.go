package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rsvptracker/internal/domain"
)

type reportService struct {
	repo     domain.GuestRepository
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewReportService returns a ReportService that reads from repo and mails
// through mailer using renderer's "rsvp_summary" template.
func NewReportService(repo domain.GuestRepository, mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.ReportService {
	return &reportService{repo: repo, mailer: mailer, renderer: renderer}
}

func (s *reportService) Summary(ctx context.Context) (*domain.RSVPSummary, error) {
	guests, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	sum := &domain.RSVPSummary{TotalGuests: len(guests)}
	for _, g := range guests {
		switch g.Response {
		case domain.RSVPAttending:
			sum.Attending++
			sum.HeadCount += g.AttendingCount
		case domain.RSVPDeclined:
			sum.Declined++
		default:
			sum.Pending++
		}
		// maxGuests is free text in the store
		if n, err := strconv.Atoi(strings.TrimSpace(g.MaxGuests)); err == nil {
			sum.InvitedSeats += n
		} else {
			sum.NonNumericSeat++
		}
	}
	return sum, nil
}

func (s *reportService) SendSummary(ctx context.Context, to string) (*domain.RSVPSummary, error) {
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("%w: recipient is required", domain.ErrInvalidInput)
	}
	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	data := &domain.RSVPSummaryEmailData{Email: to, Summary: sum}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_summary", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render rsvp_summary template: %w", err)
	}
	report := domain.Report{To: to, Subject: subject, HTML: htmlBody, Text: textBody}
	if err := s.mailer.SendReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to send rsvp summary: %w", err)
	}
	return sum, nil
}
