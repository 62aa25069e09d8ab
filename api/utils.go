package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"monetrix/database"
)

// writeJSON encodes v as the JSON response body
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithMessage sends a JSON {"message": ...} body, matching what the
// frontend expects on every non-2xx response
func respondWithMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// respondWithError logs the error and sends a JSON error response.
// Use this to avoid exposing internal errors while still logging them.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("API Error [%d]: %s - %v", code, message, err)
	} else {
		log.Printf("API Error [%d]: %s", code, message)
	}
	respondWithMessage(w, code, message)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation failures are 400 with the reason, not-found is 404 with the
// given message, anything else is an opaque 500.
func respondServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	var ve *database.ValidationError
	if errors.As(err, &ve) {
		respondWithMessage(w, http.StatusBadRequest, ve.Error())
		return
	}
	if database.IsNotFound(err) {
		respondWithMessage(w, http.StatusNotFound, notFoundMessage)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Internal server error", err)
}
