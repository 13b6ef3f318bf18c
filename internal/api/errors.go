package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shareit/internal/dto"
	"shareit/internal/service"
)

// unsupportedStateMessage is the body of every rejected state token.
const unsupportedStateMessage = "Unknown state: UNSUPPORTED_STATUS"

// StatusFor classifies err into an HTTP status and the message returned to the client.
// Ownership and visibility failures are reported as 404 so callers cannot probe
// for records they have no access to.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnsupportedStatus):
		return http.StatusBadRequest, unsupportedStateMessage

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrAccessDenied),
		errors.Is(err, service.ErrUpdateNotAvailable),
		errors.Is(err, service.ErrBookingByOwnerNotAvailable):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, dto.ErrInvalid),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrBookingNotAvailable),
		errors.Is(err, service.ErrStatusChangeNotAvailable),
		errors.Is(err, service.ErrCommentNotAvailable):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, service.ErrEmailNotUnique):
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, dto.ErrorResponse{Error: message})
}

// fail writes the classified error. Server-side failures are logged with the cause.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", RequestIDFrom(r.Context())).
			Msg("request failed")
	} else {
		s.logger.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	}
	WriteError(w, status, message)
}
