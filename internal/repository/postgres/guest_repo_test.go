package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"rsvptracker/internal/domain"
)

var guestColumns = []string{"name", "phone_number", "max_guests", "response", "attending_count"}

func TestGuestRepository_GetAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Guest
		wantErr bool
	}{
		{
			name: "returns every row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT name, phone_number, max_guests, response, attending_count\s+FROM guests\s+ORDER BY name`).
					WillReturnRows(sqlmock.NewRows(guestColumns).
						AddRow("Alice", "+1-555-0100", "2", "Pending", 0).
						AddRow("Bob", "+1-555-0101", "4", "Attending", 3))
			},
			want: []*domain.Guest{
				{Name: "Alice", PhoneNumber: "+1-555-0100", MaxGuests: "2", Response: domain.RSVPPending},
				{Name: "Bob", PhoneNumber: "+1-555-0101", MaxGuests: "4", Response: domain.RSVPAttending, AttendingCount: 3},
			},
		},
		{
			name: "empty table returns empty slice",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM guests`).
					WillReturnRows(sqlmock.NewRows(guestColumns))
			},
			want: []*domain.Guest{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM guests`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewGuestRepository(db)
			got, err := repo.GetAll(ctx)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGuestRepository_GetByPhoneNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM guests\s+WHERE phone_number = \$1`).
			WithArgs("+1-555-0100").
			WillReturnRows(sqlmock.NewRows(guestColumns).AddRow("Alice", "+1-555-0100", "2", "Declined", 0))

		g, err := NewGuestRepository(db).GetByPhoneNumber(ctx, "+1-555-0100")
		require.NoError(t, err)
		require.Equal(t, "Alice", g.Name)
		require.Equal(t, domain.RSVPDeclined, g.Response)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM guests\s+WHERE phone_number = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err = NewGuestRepository(db).GetByPhoneNumber(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGuestRepository_UpdateRSVP(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		phone     string
		response  domain.RSVPStatus
		count     int
		mock      func(mock sqlmock.Sqlmock)
		wantRows  int64
		wantErr   bool
	}{
		{
			name:     "one row updated",
			phone:    "+1-555-0100",
			response: domain.RSVPAttending,
			count:    2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE guests SET response = \$1, attending_count = \$2\s+WHERE phone_number = \$3`).
					WithArgs("Attending", 2, "+1-555-0100").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantRows: 1,
		},
		{
			name:     "no match reports zero rows",
			phone:    "nobody",
			response: domain.RSVPDeclined,
			count:    0,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE guests`).
					WithArgs("Declined", 0, "nobody").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantRows: 0,
		},
		{
			name:     "db error",
			phone:    "+1-555-0100",
			response: domain.RSVPAttending,
			count:    1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE guests`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewGuestRepository(db).UpdateRSVP(ctx, tt.phone, tt.response, tt.count)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantRows, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGuestRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO guests`).
					WithArgs("Alice", "+1-555-0100", "2", "Pending", 0).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unique violation returns ErrDuplicateKey",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO guests`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateKey,
		},
		{
			name: "other db error passes through",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO guests`).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewGuestRepository(db).Create(ctx, domain.NewGuest("Alice", "+1-555-0100", "2"))
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGuestRepository_BulkOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("reset all sets pending and zero", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE guests SET response = \$1, attending_count = \$2$`).
			WithArgs("Pending", 0).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := NewGuestRepository(db).ResetAll(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete all", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM guests`).WillReturnResult(sqlmock.NewResult(0, 5))

		n, err := NewGuestRepository(db).DeleteAll(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(5), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count and exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM guests`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("+1-555-0100").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		repo := NewGuestRepository(db)
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(7), n)

		ok, err := repo.Exists(ctx, "+1-555-0100")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
