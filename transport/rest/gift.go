package rest

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/service"
)

const giftCookie = "gift"

type giftHandlers struct {
	logger zerolog.Logger
	gift   service.GiftService
}

func (that *giftHandlers) wrap(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "wrap").Logger()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, log, apperror.ErrInvalidInput)
		return
	}

	token, err := that.gift.Wrap(body)
	if err != nil {
		writeError(w, log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  giftCookie,
		Value: token,
		Path:  "/",
	})
	w.WriteHeader(http.StatusOK)
}

func (that *giftHandlers) unwrap(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "unwrap").Logger()

	cookie, err := r.Cookie(giftCookie)
	if err != nil {
		writeError(w, log, apperror.ErrInvalidInput)
		return
	}

	payload, err := that.gift.Unwrap(cookie.Value)
	if err != nil {
		writeError(w, log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
