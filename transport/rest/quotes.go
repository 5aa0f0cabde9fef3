package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/entity"
	"github.com/rocketscienceinc/puzzlebox/internal/service"
)

type quoteHandlers struct {
	logger zerolog.Logger
	quotes service.QuoteService
}

func (that *quoteHandlers) reset(w http.ResponseWriter, r *http.Request) {
	if err := that.quotes.Reset(r.Context()); err != nil {
		writeError(w, that.logger.With().Str("method", "reset").Logger(), err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (that *quoteHandlers) cite(w http.ResponseWriter, r *http.Request) {
	quote, err := that.quotes.Cite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With().Str("method", "cite").Logger(), err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (that *quoteHandlers) remove(w http.ResponseWriter, r *http.Request) {
	quote, err := that.quotes.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With().Str("method", "remove").Logger(), err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (that *quoteHandlers) undo(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "undo").Logger()

	draft, err := decodeDraft(w, r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	quote, err := that.quotes.Undo(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (that *quoteHandlers) draft(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "draft").Logger()

	draft, err := decodeDraft(w, r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	quote, err := that.quotes.Draft(r.Context(), draft)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, quote)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (entity.QuoteDraft, error) {
	var draft entity.QuoteDraft

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&draft); err != nil {
		return entity.QuoteDraft{}, apperror.ErrInvalidInput
	}

	return draft, nil
}
