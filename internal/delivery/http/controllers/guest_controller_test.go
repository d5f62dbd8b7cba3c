package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rsvptracker/internal/delivery/http/helpers"
	"rsvptracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeGuestService implements domain.GuestService for handler tests.
type fakeGuestService struct {
	guests      []*domain.Guest
	listErr     error
	updateErr   error
	updateRes   *domain.RSVPUpdateResult
	updateCalls int
	lastUpdate  domain.UpdateRSVPInput
}

func (f *fakeGuestService) ListGuests(_ context.Context) ([]*domain.Guest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.guests == nil {
		return []*domain.Guest{}, nil
	}
	return f.guests, nil
}

func (f *fakeGuestService) UpdateRSVP(_ context.Context, in domain.UpdateRSVPInput) (*domain.RSVPUpdateResult, error) {
	f.updateCalls++
	f.lastUpdate = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateRes != nil {
		return f.updateRes, nil
	}
	count := 0
	if in.AttendingCount != nil {
		count = *in.AttendingCount
	}
	return &domain.RSVPUpdateResult{UpdatedCount: 1, Response: domain.RSVPStatus(in.Response), AttendingCount: count}, nil
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Detail
}

func TestGuestController_ListGuests(t *testing.T) {
	t.Run("returns every guest with the five fields", func(t *testing.T) {
		svc := &fakeGuestService{guests: []*domain.Guest{{
			Name: "Alice", PhoneNumber: "+1-555-0100", MaxGuests: "2",
			Response: domain.RSVPPending, AttendingCount: 0,
		}}}
		ctrl := NewGuestController(testLogger, svc)
		rr := httptest.NewRecorder()

		ctrl.ListGuests(rr, httptest.NewRequest(http.MethodGet, "/api/guests/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"name":"Alice","phoneNumber":"+1-555-0100","maxGuests":"2","response":"Pending","attending_count":0}]`, rr.Body.String())
	})

	t.Run("empty store is an empty array", func(t *testing.T) {
		ctrl := NewGuestController(testLogger, &fakeGuestService{})
		rr := httptest.NewRecorder()

		ctrl.ListGuests(rr, httptest.NewRequest(http.MethodGet, "/api/guests/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("store failure is 500 with the error text", func(t *testing.T) {
		ctrl := NewGuestController(testLogger, &fakeGuestService{listErr: errors.New("connection refused")})
		rr := httptest.NewRecorder()

		ctrl.ListGuests(rr, httptest.NewRequest(http.MethodGet, "/api/guests/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "An unexpected error occurred: connection refused", decodeDetail(t, rr.Body))
	})
}

func TestGuestController_UpdateRSVP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		svcErr     error
		wantStatus int
		wantDetail string
		wantCalled bool
	}{
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			body:       `{"phoneNumber":"+1-555-0100","response":"Attending"}`,
			wantStatus: http.StatusMethodNotAllowed,
			wantDetail: "Method Not Allowed",
		},
		{
			name:       "malformed json",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid JSON in request body.",
		},
		{
			name:       "read-only field rejected",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0100","response":"Attending","maxGuests":"9"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: `Unknown field in request body: "maxGuests"`,
		},
		{
			name:       "missing phone number",
			method:     http.MethodPatch,
			body:       `{"response":"Attending"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Missing 'phoneNumber' or 'response' in payload.",
		},
		{
			name:       "empty response",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0100","response":""}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Missing 'phoneNumber' or 'response' in payload.",
		},
		{
			name:       "service reports missing field",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0100","response":"Attending"}`,
			svcErr:     domain.ErrMissingField,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Missing 'phoneNumber' or 'response' in payload.",
			wantCalled: true,
		},
		{
			name:       "trailing json value",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0100","response":"Attending"} {"phoneNumber":"+1-555-0101","response":"Declined"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid JSON in request body.",
		},
		{
			name:       "invalid response",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0100","response":"Maybe"}`,
			svcErr:     domain.ErrInvalidResponse,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid response status provided.",
			wantCalled: true,
		},
		{
			name:       "unknown guest",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0199","response":"Declined"}`,
			svcErr:     &domain.GuestNotFoundError{PhoneNumber: "+1-555-0199"},
			wantStatus: http.StatusNotFound,
			wantDetail: "No guest was found with the provided Phone Number. Phone Number = +1-555-0199",
			wantCalled: true,
		},
		{
			name:       "store failure",
			method:     http.MethodPatch,
			body:       `{"phoneNumber":"+1-555-0100","response":"Declined"}`,
			svcErr:     errors.New("update guest rsvp: driver: bad connection"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "An unexpected error occurred: update guest rsvp: driver: bad connection",
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeGuestService{updateErr: tt.svcErr}
			ctrl := NewGuestController(testLogger, svc)
			req := httptest.NewRequest(tt.method, "/api/rsvp/update/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.UpdateRSVP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rr.Body))
			assert.Equal(t, tt.wantCalled, svc.updateCalls == 1)
		})
	}
}

func TestGuestController_UpdateRSVP_Success(t *testing.T) {
	svc := &fakeGuestService{}
	ctrl := NewGuestController(testLogger, svc)
	body := `{"phoneNumber":"+1-555-0100","response":"Attending","attending_count":2}`
	req := httptest.NewRequest(http.MethodPatch, "/api/rsvp/update/", strings.NewReader(body))
	rr := httptest.NewRecorder()

	ctrl.UpdateRSVP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"RSVP updated successfully.","updated_count":1,"response":"Attending","attending_count":2}`, rr.Body.String())
	assert.Equal(t, "+1-555-0100", svc.lastUpdate.PhoneNumber)
	assert.Equal(t, "Attending", svc.lastUpdate.Response)
	require.NotNil(t, svc.lastUpdate.AttendingCount)
	assert.Equal(t, 2, *svc.lastUpdate.AttendingCount)
}

func TestGuestController_UpdateRSVP_NullCount(t *testing.T) {
	svc := &fakeGuestService{}
	ctrl := NewGuestController(testLogger, svc)
	body := `{"phoneNumber":"+1-555-0100","response":"Declined","attending_count":null}`
	req := httptest.NewRequest(http.MethodPatch, "/api/rsvp/update/", strings.NewReader(body))
	rr := httptest.NewRecorder()

	ctrl.UpdateRSVP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, svc.lastUpdate.AttendingCount)
	assert.JSONEq(t, `{"message":"RSVP updated successfully.","updated_count":1,"response":"Declined","attending_count":0}`, rr.Body.String())
}
