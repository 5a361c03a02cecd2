package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-shop/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrTokenInvalid),
		errors.Is(err, services.ErrTokenRevoked),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrProductMissing):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNothingToUpdate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
