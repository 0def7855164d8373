package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CyberSaikat/task-management-soft/logging"
	"github.com/CyberSaikat/task-management-soft/middleware"
	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/services"
)

// envelope is the JSON response shape: a message plus any extra data.
type envelope map[string]interface{}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError is the single place domain errors become HTTP status codes.
// Unexpected errors get a generic message so internals never leak to
// clients; the real error is logged.
func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: UNEXPECTED_ERROR, Description: %v", err)
		message = "An unexpected error occurred"
	}
	respondJSON(w, status, envelope{"message": message, "status": status})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// actorFromRequest resolves the authenticated caller from the session claims
// the middleware stored in the request context.
func actorFromRequest(r *http.Request, users *services.UserService) (models.User, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return models.User{}, models.Unauthorized("unauthorized")
	}

	actor, err := users.FindByEmail(r.Context(), claims.Email)
	if err != nil {
		return models.User{}, models.Unauthorized("unauthorized")
	}
	return actor, nil
}
