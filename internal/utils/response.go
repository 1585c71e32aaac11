package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kvinchris/GymManagement/internal/repositories"
)

func JSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RepositoryError maps repository sentinel errors to HTTP statuses.
// Unclassified errors answer with a fixed message; their detail never
// reaches the response body.
func RepositoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrValidation):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	default:
		JSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
