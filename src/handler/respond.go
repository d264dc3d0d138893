package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"orderdesk/src/connectors"
	"orderdesk/src/lookup"
	"orderdesk/src/pipeline"
	"orderdesk/src/templates"
	"orderdesk/src/validator"
)

type errorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, validator.ErrInvalidDraft):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrSubmissionInProgress),
		errors.Is(err, pipeline.ErrNoPriorRequest),
		errors.Is(err, pipeline.ErrNotAwaitingConfirmation),
		errors.Is(err, lookup.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, templates.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, templates.ErrTemplateNameRequired):
		return http.StatusBadRequest
	case connectors.IsTransportError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Message: err.Error()}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		body.Field = ve.Field
	}
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
		body.Message = "Internal Server Error"
	}
	writeJSON(w, status, body)
}
