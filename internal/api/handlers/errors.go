package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/pnl-dashboard/internal/api/response"
	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/validation"
)

// statusFor maps a service error to an HTTP status and a client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyInput):
		return http.StatusNotFound, "no entries available"
	case errors.Is(err, apperrors.ErrEmptyRange):
		return http.StatusNotFound, "no entries in selected range"
	case errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidDate):
		return http.StatusBadRequest, "invalid date range"
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrNegativeAmount):
		return http.StatusBadRequest, "invalid amount"
	case errors.Is(err, apperrors.ErrFailedToLoad),
		errors.Is(err, apperrors.ErrSourceUnavailable),
		errors.Is(err, apperrors.ErrMissingColumns):
		return http.StatusBadGateway, "failed to load entries"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondServiceError writes err as a JSON error. Validation failures
// carry their per-field messages as details.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)

	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, status, message, verr.Fields)
		return
	}
	response.RespondError(w, status, message, err.Error())
}
