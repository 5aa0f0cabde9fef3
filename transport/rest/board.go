package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/entity"
)

type boardKeeper interface {
	View() string
	Reset() string
	TryPlace(tile entity.Tile, column int) (string, error)
}

type boardHandlers struct {
	logger zerolog.Logger
	board  boardKeeper
}

func (that *boardHandlers) view(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, that.board.View())
}

func (that *boardHandlers) reset(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, that.board.Reset())
}

// place accepts a 1-indexed column. Rule rejections answer 503 with the unchanged board.
func (that *boardHandlers) place(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "place").Logger()

	tile, err := entity.ParseTeam(chi.URLParam(r, "team"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	column, err := parseColumn(chi.URLParam(r, "column"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	rendered, err := that.board.TryPlace(tile, column)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, rendered)
	case errors.Is(err, apperror.ErrGameOver), errors.Is(err, apperror.ErrColumnFull):
		writeText(w, http.StatusServiceUnavailable, rendered)
	default:
		writeError(w, log, err)
	}
}

func parseColumn(raw string) (int, error) {
	column, err := strconv.Atoi(raw)
	if err != nil || column < 1 || column > entity.BoardWidth {
		return 0, fmt.Errorf("%w: column %q", apperror.ErrInvalidInput, raw)
	}

	return column - 1, nil
}
