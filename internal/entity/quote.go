package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

type Quote struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
	Version   int       `json:"version"`
}

// QuoteDraft is the client-supplied part of a quote.
type QuoteDraft struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

func (that QuoteDraft) Validate() error {
	if strings.TrimSpace(that.Author) == "" {
		return fmt.Errorf("%w: author is required", apperror.ErrInvalidInput)
	}

	if strings.TrimSpace(that.Quote) == "" {
		return fmt.Errorf("%w: quote is required", apperror.ErrInvalidInput)
	}

	return nil
}
