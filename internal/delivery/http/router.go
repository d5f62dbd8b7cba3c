package http

import (
	"log/slog"
	"net/http"

	"rsvptracker/internal/delivery/http/controllers"
	"rsvptracker/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
// Maintenance operations are deliberately absent.
func NewRouter(guestController *controllers.GuestController, healthController *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /api/guests/{$}", guestController.ListGuests)
	// Every method is routed here; the controller answers non-PATCH with a JSON 405.
	mux.HandleFunc("/api/rsvp/update/{$}", guestController.UpdateRSVP)

	mux.HandleFunc("GET /healthz", healthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request-id, logging and CORS middleware.
func NewHandler(logger *slog.Logger, allowedOrigins []string, mux http.Handler) http.Handler {
	return middleware.RequestID(
		middleware.LoggingMiddleware(logger,
			middleware.CORS(allowedOrigins, mux),
		),
	)
}
