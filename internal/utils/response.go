package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"airport-booking/internal/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps domain errors onto the HTTP error contract: field-keyed
// 400 bodies for validation, 409 for conflicts, 404 for missing
// references, opaque 403, 500 for everything else.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		WriteJSON(w, http.StatusBadRequest, validationErr.Fields)
		return
	}

	var conflictErr *apperr.ConflictError
	if errors.As(err, &conflictErr) {
		WriteJSON(w, http.StatusConflict, map[string]string{"detail": conflictErr.Error()})
		return
	}

	var notFoundErr *apperr.NotFoundError
	if errors.As(err, &notFoundErr) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"detail": notFoundErr.Error()})
		return
	}

	var authzErr *apperr.AuthzError
	if errors.As(err, &authzErr) {
		WriteJSON(w, http.StatusForbidden, map[string]string{"detail": "forbidden"})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
}
