package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/diazmg/phone-store/internal/repository"
	"github.com/diazmg/phone-store/internal/service"
)

// envelope is the response convention shared by every endpoint: success
// responses carry a payload or a message, error responses a message plus
// optional field-level details.
type envelope struct {
	Status  string   `json:"status"`
	Payload any      `json:"payload,omitempty"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondPayload(w http.ResponseWriter, status int, payload any) {
	respondJSON(w, status, envelope{Status: "success", Payload: payload})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Status: "success", Message: message})
}

func respondError(w http.ResponseWriter, status int, message string, details ...string) {
	respondJSON(w, status, envelope{Status: "error", Message: message, Details: details})
}

// respondServiceError translates the service error taxonomy to HTTP. The
// notFoundMessage lets each handler keep its entity-specific 404 wording.
func respondServiceError(w http.ResponseWriter, err error, notFoundMessage func(error) string) {
	var vErr *service.ValidationError

	switch {
	case errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		message := err.Error()
		if notFoundMessage != nil {
			message = notFoundMessage(err)
		}
		respondError(w, http.StatusNotFound, message)
	case errors.Is(err, service.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "invalid identifier")
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, "validation failed", vErr.Details...)
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "an internal error occurred while processing the request")
	}
}
