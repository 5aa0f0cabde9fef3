package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/entity"
)

type QuoteService interface {
	Draft(ctx context.Context, draft entity.QuoteDraft) (*entity.Quote, error)
	Cite(ctx context.Context, id string) (*entity.Quote, error)
	Undo(ctx context.Context, id string, draft entity.QuoteDraft) (*entity.Quote, error)
	Remove(ctx context.Context, id string) (*entity.Quote, error)
	Reset(ctx context.Context) error
}

type quoteRepo interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Update(ctx context.Context, id uuid.UUID, draft entity.QuoteDraft) (*entity.Quote, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Truncate(ctx context.Context) error
}

type quoteService struct {
	logger    zerolog.Logger
	quoteRepo quoteRepo
	now       func() time.Time
}

func NewQuoteService(logger zerolog.Logger, quoteRepo quoteRepo) QuoteService {
	return &quoteService{
		logger:    logger.With().Str("component", "quotes").Logger(),
		quoteRepo: quoteRepo,
		now:       time.Now,
	}
}

func (that *quoteService) Draft(ctx context.Context, draft entity.QuoteDraft) (*entity.Quote, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		ID:        uuid.New(),
		Author:    draft.Author,
		Quote:     draft.Quote,
		CreatedAt: that.now().UTC(),
		Version:   1,
	}

	if err := that.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	that.logger.Info().Str("method", "Draft").Stringer("id", quote.ID).Msg("quote drafted")

	return quote, nil
}

func (that *quoteService) Cite(ctx context.Context, id string) (*entity.Quote, error) {
	quoteID, err := parseQuoteID(id)
	if err != nil {
		return nil, err
	}

	quote, err := that.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote by id: %w", err)
	}

	return quote, nil
}

func (that *quoteService) Undo(ctx context.Context, id string, draft entity.QuoteDraft) (*entity.Quote, error) {
	quoteID, err := parseQuoteID(id)
	if err != nil {
		return nil, err
	}

	if err = draft.Validate(); err != nil {
		return nil, err
	}

	quote, err := that.quoteRepo.Update(ctx, quoteID, draft)
	if err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}

	that.logger.Info().Str("method", "Undo").Stringer("id", quoteID).Int("version", quote.Version).Msg("quote updated")

	return quote, nil
}

func (that *quoteService) Remove(ctx context.Context, id string) (*entity.Quote, error) {
	quoteID, err := parseQuoteID(id)
	if err != nil {
		return nil, err
	}

	quote, err := that.quoteRepo.DeleteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("delete quote: %w", err)
	}

	that.logger.Info().Str("method", "Remove").Stringer("id", quoteID).Msg("quote removed")

	return quote, nil
}

func (that *quoteService) Reset(ctx context.Context) error {
	if err := that.quoteRepo.Truncate(ctx); err != nil {
		return fmt.Errorf("reset quotes: %w", err)
	}

	that.logger.Info().Str("method", "Reset").Msg("quotes reset")

	return nil
}

func parseQuoteID(id string) (uuid.UUID, error) {
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: quote id %q", apperror.ErrInvalidInput, id)
	}

	return quoteID, nil
}
