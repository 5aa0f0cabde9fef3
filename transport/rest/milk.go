package rest

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/service"
)

type milkBucket interface {
	Withdraw() error
	Refill()
}

type milkHandlers struct {
	logger zerolog.Logger
	bucket milkBucket
}

func (that *milkHandlers) withdraw(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "withdraw").Logger()

	if err := that.bucket.Withdraw(); err != nil {
		if errors.Is(err, apperror.ErrRateLimited) {
			writeText(w, http.StatusTooManyRequests, "No milk available\n")
			return
		}

		writeError(w, log, err)
		return
	}

	if !isJSON(r) {
		writeText(w, http.StatusOK, "Milk withdrawn\n")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, log, apperror.ErrInvalidInput)
		return
	}

	converted, err := service.ConvertMilk(body)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, converted)
}

func (that *milkHandlers) refill(w http.ResponseWriter, _ *http.Request) {
	that.bucket.Refill()
	w.WriteHeader(http.StatusOK)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == service.MediaTypeJSON
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
