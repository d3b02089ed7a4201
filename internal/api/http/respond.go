package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentnest-backend/internal/domain"
)

// writeJSON serialises v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps a domain error to its HTTP status and structured code.
func writeError(w http.ResponseWriter, err error) {
	code, status := errorCode(err)
	writeJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}

func errorCode(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "NotFound", http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Unauthenticated", http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidTransition):
		return "InvalidTransition", http.StatusConflict
	case errors.Is(err, domain.ErrMissingField):
		return "MissingField", http.StatusBadRequest
	case errors.Is(err, domain.ErrValidation):
		return "ValidationError", http.StatusBadRequest
	default:
		return "Internal", http.StatusInternalServerError
	}
}
