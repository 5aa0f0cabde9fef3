package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/entity"
)

var ErrQuoteNotFound = fmt.Errorf("quote %w", apperror.ErrNotFound)

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// Update replaces author and text and bumps the version in one step.
	Update(ctx context.Context, id uuid.UUID, draft entity.QuoteDraft) (*entity.Quote, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Truncate(ctx context.Context) error
}
