package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"synapse_server/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the service error taxonomy onto HTTP statuses. Oracle
// failures never reach here; services degrade those internally.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrSelfMessage), errors.Is(err, models.ErrInvalidStatus):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
