package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ignite/newsletter-api/internal/domain"
	"github.com/ignite/newsletter-api/internal/pkg/logger"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}

// respondWorkflowError is the boundary classifier: it maps a workflow
// failure onto the external taxonomy, logs the full cause chain for
// operators, and makes sure internal causes are never rendered to the
// caller. Validation messages are about the caller's own input and are safe
// to return; everything else gets a generic message.
func respondWorkflowError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		logger.Info("rejected invalid input", "cause", domain.CauseChain(err))
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		logger.Error("persistence failure", "cause", domain.CauseChain(err))
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
		return
	}

	var derr *domain.DispatchError
	if errors.As(err, &derr) {
		logger.Error("email dispatch failure", "cause", domain.CauseChain(err))
		respondError(w, http.StatusInternalServerError, "an internal error occurred")
		return
	}

	logger.Error("unclassified failure", "cause", domain.CauseChain(err))
	respondError(w, http.StatusInternalServerError, "an internal error occurred")
}
