package http

import (
	"net/http"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/utils"
)

// writeJSON writes data as a JSON response, logging serialization failures.
func writeJSON(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	if _, err := utils.WriteJSON(w, data, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing json response")
	}
}

// handleServiceError maps a service-layer error to its HTTP status via the
// sentinel table and writes it out.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Int("status", status).Send()
	http.Error(w, err.Error(), status)
}

// identity extracts the authenticated user and session IDs stored in the
// request context by the auth middleware. A missing identity means the route
// was wired outside the auth group, which is a programming error; the
// request is rejected with 401.
func identity(w http.ResponseWriter, r *http.Request) (userID int64, sessionID string, ok bool) {
	ctx := r.Context()

	userID, ok = utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, "", false
	}

	sessionID, ok = utils.GetSessionIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, "", false
	}

	return userID, sessionID, true
}
