package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rsvptracker/internal/domain"
)

const uniqueViolation = "23505"

type guestRepository struct {
	DB dbtx
}

// NewGuestRepository returns a domain.GuestRepository implemented with Postgres.
func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) GetAll(ctx context.Context) ([]*domain.Guest, error) {
	query := `
		SELECT name, phone_number, max_guests, response, attending_count
		FROM guests
		ORDER BY name, phone_number
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		if err := rows.Scan(&g.Name, &g.PhoneNumber, &g.MaxGuests, &g.Response, &g.AttendingCount); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Guest, error) {
	query := `
		SELECT name, phone_number, max_guests, response, attending_count
		FROM guests
		WHERE phone_number = $1
	`
	g := &domain.Guest{}
	err := r.DB.QueryRowContext(ctx, query, phoneNumber).
		Scan(&g.Name, &g.PhoneNumber, &g.MaxGuests, &g.Response, &g.AttendingCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *guestRepository) Exists(ctx context.Context, phoneNumber string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM guests WHERE phone_number = $1)`, phoneNumber).Scan(&exists)
	return exists, err
}

func (r *guestRepository) UpdateRSVP(ctx context.Context, phoneNumber string, response domain.RSVPStatus, attendingCount int) (int64, error) {
	query := `
		UPDATE guests SET response = $1, attending_count = $2
		WHERE phone_number = $3
	`
	result, err := r.DB.ExecContext(ctx, query, string(response), attendingCount, phoneNumber)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (name, phone_number, max_guests, response, attending_count)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, g.Name, g.PhoneNumber, g.MaxGuests, string(g.Response), g.AttendingCount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *guestRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM guests`).Scan(&n)
	return n, err
}

func (r *guestRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM guests`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *guestRepository) ResetAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE guests SET response = $1, attending_count = $2`,
		string(domain.RSVPPending), domain.DefaultAttendingCount)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
