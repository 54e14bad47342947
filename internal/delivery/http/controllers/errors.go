package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// Generic messages for unexpected failures. The wrapped cause goes to the
// log only; clients never see storage or wiring detail.
const (
	msgUnavailable   = "service temporarily unavailable, please try again"
	msgInternalError = "an unexpected error occurred, please try again later"
)

// serverError logs the failure and writes the generic response for it.
// Transient storage errors map to 503 so clients know a retry can succeed;
// everything else is a 500.
func serverError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	if errors.Is(err, domain.ErrTransient) {
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, msgUnavailable)
		return
	}
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, msgInternalError)
}
