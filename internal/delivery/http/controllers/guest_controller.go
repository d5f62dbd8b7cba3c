package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"rsvptracker/internal/delivery/http/helpers"
	"rsvptracker/internal/domain"
)

// Client-facing messages for the RSVP endpoints.
const (
	msgMethodNotAllowed = "Method Not Allowed"
	msgRSVPUpdated      = "RSVP updated successfully."
	msgMissingField     = "Missing 'phoneNumber' or 'response' in payload."
	msgInvalidResponse  = "Invalid response status provided."
	msgGuestNotFound    = "No guest was found with the provided Phone Number. Phone Number = %s"
	msgUnexpected       = "An unexpected error occurred: %s"
)

// UpdateRSVPRequest is the request body for PATCH /api/rsvp/update/.
// Only these three fields are accepted; name and maxGuests are read-only.
type UpdateRSVPRequest struct {
	PhoneNumber    string `json:"phoneNumber" example:"+1-555-0100"`
	Response       string `json:"response" example:"Attending" enums:"Attending,Declined"`
	AttendingCount *int   `json:"attending_count" example:"2"`
}

// Validate reports a missing phoneNumber or response before the service is
// called.
func (r UpdateRSVPRequest) Validate() []string {
	if r.PhoneNumber == "" || r.Response == "" {
		return []string{msgMissingField}
	}
	return nil
}

// UpdateRSVPResponse is the 200 body for PATCH /api/rsvp/update/.
type UpdateRSVPResponse struct {
	Message        string            `json:"message" example:"RSVP updated successfully."`
	UpdatedCount   int64             `json:"updated_count" example:"1"`
	Response       domain.RSVPStatus `json:"response" example:"Attending"`
	AttendingCount int               `json:"attending_count" example:"2"`
}

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// ListGuests godoc
// @Summary List all guests
// @Description Returns every guest with its current RSVP state. No filtering or pagination.
// @Tags guests
// @Produce json
// @Success 200 {array} domain.Guest
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/guests/ [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := c.Service.ListGuests(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, guests)
}

// UpdateRSVP godoc
// @Summary Record an RSVP
// @Description Sets response and attending_count for the guest identified by phoneNumber. Only Attending and Declined are accepted; attending_count is not checked against maxGuests.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param rsvp body UpdateRSVPRequest true "RSVP answer"
// @Success 200 {object} controllers.UpdateRSVPResponse
// @Failure 400 {object} helpers.ErrorResponse "missing field, invalid response or malformed body"
// @Failure 404 {object} helpers.ErrorResponse "no guest with that phone number"
// @Failure 405 {object} helpers.ErrorResponse "method other than PATCH"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/rsvp/update/ [patch]
func (c *GuestController) UpdateRSVP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.Header().Set("Allow", http.MethodPatch)
		helpers.WriteDetail(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	var req UpdateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.UpdateRSVP(r.Context(), domain.UpdateRSVPInput{
		PhoneNumber:    req.PhoneNumber,
		Response:       req.Response,
		AttendingCount: req.AttendingCount,
	})
	if err != nil {
		var notFound *domain.GuestNotFoundError
		switch {
		case errors.Is(err, domain.ErrMissingField):
			helpers.WriteDetail(w, http.StatusBadRequest, msgMissingField)
		case errors.Is(err, domain.ErrInvalidResponse):
			helpers.WriteDetail(w, http.StatusBadRequest, msgInvalidResponse)
		case errors.As(err, &notFound):
			helpers.WriteDetail(w, http.StatusNotFound, fmt.Sprintf(msgGuestNotFound, notFound.PhoneNumber))
		default:
			c.internalError(w, r, err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, UpdateRSVPResponse{
		Message:        msgRSVPUpdated,
		UpdatedCount:   res.UpdatedCount,
		Response:       res.Response,
		AttendingCount: res.AttendingCount,
	})
}

func (c *GuestController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteDetail(w, http.StatusInternalServerError, fmt.Sprintf(msgUnexpected, err.Error()))
}
