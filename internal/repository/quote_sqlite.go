package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/puzzlebox/internal/entity"
)

const quoteColumns = `id, author, quote, created_at, version`

type sqliteQuote struct {
	db *sql.DB
}

func NewSQLiteQuoteRepository(db *sql.DB) QuoteRepository {
	return &sqliteQuote{
		db: db,
	}
}

func (that *sqliteQuote) Create(ctx context.Context, quote *entity.Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err := that.db.ExecContext(ctx, query, quote.ID, quote.Author, quote.Quote, quote.CreatedAt, quote.Version)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	return nil
}

func (that *sqliteQuote) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = ?`

	return that.scanOne(that.db.QueryRowContext(ctx, query, id))
}

func (that *sqliteQuote) Update(ctx context.Context, id uuid.UUID, draft entity.QuoteDraft) (*entity.Quote, error) {
	query := `UPDATE quotes SET author = ?, quote = ?, version = version + 1 WHERE id = ? RETURNING ` + quoteColumns

	return that.scanOne(that.db.QueryRowContext(ctx, query, draft.Author, draft.Quote, id))
}

func (that *sqliteQuote) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	query := `DELETE FROM quotes WHERE id = ? RETURNING ` + quoteColumns

	return that.scanOne(that.db.QueryRowContext(ctx, query, id))
}

func (that *sqliteQuote) Truncate(ctx context.Context) error {
	if _, err := that.db.ExecContext(ctx, `DELETE FROM quotes`); err != nil {
		return fmt.Errorf("failed to truncate quotes: %w", err)
	}

	return nil
}

func (that *sqliteQuote) scanOne(row *sql.Row) (*entity.Quote, error) {
	var quote entity.Quote

	err := row.Scan(&quote.ID, &quote.Author, &quote.Quote, &quote.CreatedAt, &quote.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to scan quote: %w", err)
	}

	quote.CreatedAt = quote.CreatedAt.UTC()

	return &quote, nil
}
