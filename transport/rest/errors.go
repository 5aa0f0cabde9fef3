package rest

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, apperror.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, apperror.ErrNothingToReport):
		return http.StatusNoContent
	case errors.Is(err, apperror.ErrGameOver), errors.Is(err, apperror.ErrColumnFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Client errors get an empty body, the
// cause stays in the log.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	w.WriteHeader(status)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
