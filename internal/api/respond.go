package api

import (
	"encoding/json"
	"net/http"

	"parkwise/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps engine errors to their HTTP status. Internal failures
// are masked with a generic message so storage detail never reaches callers.
func respondError(w http.ResponseWriter, err error) {
	status := errors.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondJSON(w, status, map[string]string{"error": message})
}
