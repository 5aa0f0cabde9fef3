package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/puzzlebox/internal/entity"
)

const (
	quoteKeyPrefix = "quote:"
	scanBatch      = 100
	maxTxRetries   = 10
)

var errTooManyRetries = errors.New("quote update kept conflicting")

type redisQuote struct {
	client *redis.Client
}

func NewRedisQuoteRepository(client *redis.Client) QuoteRepository {
	return &redisQuote{
		client: client,
	}
}

func quoteKey(id uuid.UUID) string {
	return quoteKeyPrefix + id.String()
}

func (that *redisQuote) Create(ctx context.Context, quote *entity.Quote) error {
	quoteJSON, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("could not marshal quote: %w", err)
	}

	created, err := that.client.SetNX(ctx, quoteKey(quote.ID), quoteJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set quote: %w", err)
	}

	if !created {
		return fmt.Errorf("quote %s already exists", quote.ID)
	}

	return nil
}

func (that *redisQuote) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	response, err := that.client.Get(ctx, quoteKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQuoteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get quote by id: %w", err)
	}

	return decodeQuote(response)
}

func (that *redisQuote) Update(ctx context.Context, id uuid.UUID, draft entity.QuoteDraft) (*entity.Quote, error) {
	key := quoteKey(id)

	var updated *entity.Quote
	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrQuoteNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to get quote by id: %w", err)
		}

		quote, err := decodeQuote(response)
		if err != nil {
			return err
		}

		quote.Author = draft.Author
		quote.Quote = draft.Quote
		quote.Version++

		quoteJSON, err := json.Marshal(quote)
		if err != nil {
			return fmt.Errorf("could not marshal quote: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, quoteJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = quote

		return nil
	}

	for range maxTxRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, errTooManyRetries
}

func (that *redisQuote) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	response, err := that.client.GetDel(ctx, quoteKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQuoteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to delete quote by id: %w", err)
	}

	return decodeQuote(response)
}

func (that *redisQuote) Truncate(ctx context.Context) error {
	iter := that.client.Scan(ctx, 0, quoteKeyPrefix+"*", scanBatch).Iterator()

	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())

		if len(keys) == scanBatch {
			if err := that.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to truncate quotes: %w", err)
			}
			keys = keys[:0]
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan quotes: %w", err)
	}

	if len(keys) > 0 {
		if err := that.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to truncate quotes: %w", err)
		}
	}

	return nil
}

func decodeQuote(raw string) (*entity.Quote, error) {
	var quote entity.Quote
	if err := json.Unmarshal([]byte(raw), &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}

	return &quote, nil
}
