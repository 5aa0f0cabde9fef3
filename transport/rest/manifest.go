package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/service"
)

const maxBodyBytes = 1 << 20

type manifestHandlers struct {
	logger   zerolog.Logger
	manifest service.ManifestService
}

func (that *manifestHandlers) orders(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "orders").Logger()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeText(w, http.StatusBadRequest, "Invalid manifest")
		return
	}

	orders, err := that.manifest.Orders(r.Header.Get("Content-Type"), body)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrInvalidInput):
		log.Debug().Err(err).Msg("invalid manifest")
		writeText(w, http.StatusBadRequest, "Invalid manifest")
		return
	default:
		writeError(w, log, err)
		return
	}

	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, order.String())
	}

	writeText(w, http.StatusOK, strings.Join(lines, "\n"))
}
