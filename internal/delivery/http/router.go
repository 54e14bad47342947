package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Search and capacity are public; search annotates per-viewer fields when a
// valid token is present. Everything else requires authentication.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	discoveryController *controllers.DiscoveryController,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.LogIn)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/capacity", eventController.Capacity)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/register", requireAuth(eventController.Register))
	mux.HandleFunc("DELETE /events/{eventID}/register", requireAuth(eventController.Unregister))

	// Discovery
	mux.HandleFunc("GET /events/search", optionalAuth(discoveryController.Search))
	mux.HandleFunc("GET /categories", discoveryController.Categories)
	mux.HandleFunc("GET /dashboard", requireAuth(discoveryController.Dashboard))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
