package server

import (
	"encoding/json"
	"net/http"

	"github.com/atomview/atomview/dataset"
	"github.com/atomview/atomview/errors"
	"github.com/atomview/atomview/physics"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// requireMethod checks if the request method matches the expected method
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// statusForError maps engine errors to HTTP status codes. Invalid
// quantum numbers are the client's fault; a missing dataset is a
// not-found; everything else is internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, physics.ErrInvalidQuantumState):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrUnsupportedState):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
