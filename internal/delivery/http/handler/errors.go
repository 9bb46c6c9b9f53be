package handler

import (
	"errors"
	"net/http"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/infrastructure/speech"
	"ai-calling-agent/pkg/response"
)

// writeError maps domain errors onto status codes. Anything unrecognised is
// reported as fallback with a 500.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *apperr.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.Error(w, http.StatusBadRequest, validationErr.Error(), map[string]string{validationErr.Field: validationErr.Reason})
	case errors.Is(err, apperr.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, apperr.ErrDuplicate):
		response.Conflict(w, err.Error())
	case errors.Is(err, speech.ErrNotConfigured):
		response.Error(w, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, apperr.ErrRemoteService):
		response.BadGateway(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// queryBool parses an optional boolean query parameter. ok is false when the
// value is present but not a boolean.
func queryBool(r *http.Request, name string) (value *bool, ok bool) {
	switch r.URL.Query().Get(name) {
	case "":
		return nil, true
	case "true", "1":
		v := true
		return &v, true
	case "false", "0":
		v := false
		return &v, true
	}
	return nil, false
}
