package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

type DiscoveryController struct {
	Logger  *slog.Logger
	Service domain.DiscoveryService
}

func NewDiscoveryController(logger *slog.Logger, svc domain.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{Logger: logger, Service: svc}
}

// viewerID returns the authenticated user id, or AnonymousViewer when the
// request carries no valid token.
func viewerID(r *http.Request) int64 {
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		return id
	}
	return domain.AnonymousViewer
}

// SearchSuccessResponse is the success response envelope for GET /events/search (200).
type SearchSuccessResponse struct {
	Data  *domain.SearchResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Search godoc
// @Summary Search discoverable events
// @Description Returns future events matching the filters, annotated for the viewer. All filters are optional and combine with AND. Anonymous viewers get results with the per-viewer fields false.
// @Tags discovery
// @Produce json
// @Param q query string false "Free-text search over title and description"
// @Param categories query string false "Comma-separated category list"
// @Param location query string false "Location substring"
// @Param date_filter query string false "One of: today, tomorrow, this_week, this_weekend, next_week"
// @Param price query string false "Price bucket (reserved; currently ignored)"
// @Success 200 {object} controllers.SearchSuccessResponse "data contains events and total_count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (per-field messages in error.fields)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/search [get]
func (c *DiscoveryController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.SearchFilter{
		Query:       q.Get("q"),
		Location:    q.Get("location"),
		DateBucket:  q.Get("date_filter"),
		PriceBucket: q.Get("price"),
	}
	if raw := q.Get("categories"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				f.Categories = append(f.Categories, cat)
			}
		}
	}
	result, err := c.Service.Search(r.Context(), f, viewerID(r))
	if err != nil {
		if verrs, ok := domain.AsValidationErrors(err); ok {
			helpers.WriteValidationError(w, verrs)
			return
		}
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// DashboardSuccessResponse is the success response envelope for GET /dashboard (200).
type DashboardSuccessResponse struct {
	Data  *domain.DashboardView `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// Dashboard godoc
// @Summary Get the viewer's dashboard
// @Description Returns the viewer's own events, the discoverable upcoming events, and the upcoming count. Requires authentication.
// @Tags discovery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.DashboardSuccessResponse "data contains own_events, all_events, upcoming_count"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard [get]
func (c *DiscoveryController) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	view, err := c.Service.Dashboard(r.Context(), userID)
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// CategoriesSuccessResponse is the success response envelope for GET /categories (200).
type CategoriesSuccessResponse struct {
	Data  []string          `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Categories godoc
// @Summary List event categories
// @Description Returns the distinct categories of existing events, sorted alphabetically. Used to build search filter choices.
// @Tags discovery
// @Produce json
// @Success 200 {object} controllers.CategoriesSuccessResponse "data contains category names"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *DiscoveryController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.Categories(r.Context())
	if err != nil {
		serverError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}
