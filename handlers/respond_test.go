package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CyberSaikat/task-management-soft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.Validation("title and due date are required"), http.StatusBadRequest},
		{"conflict", models.Conflict("email already exists"), http.StatusBadRequest},
		{"unauthorized", models.Unauthorized("unauthorized"), http.StatusUnauthorized},
		{"forbidden", models.Forbidden("access forbidden"), http.StatusForbidden},
		{"not found", models.NotFound("task not found"), http.StatusNotFound},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, models.NotFound("task not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "task not found", body["message"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

func TestRespondErrorHidesInternals(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, errors.New("mongo: connection refused at 10.0.0.3:27017"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}
