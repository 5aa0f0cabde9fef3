package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

const (
	litersPerGallon = 3.785411784
	litresPerPint   = 0.56826125
)

// milkUnits maps every accepted unit to its counterpart and the factor that converts into it.
var milkUnits = map[string]struct {
	target string
	factor float64
}{
	"liters":  {target: "gallons", factor: 1 / litersPerGallon},
	"gallons": {target: "liters", factor: litersPerGallon},
	"litres":  {target: "pints", factor: 1 / litresPerPint},
	"pints":   {target: "litres", factor: litresPerPint},
}

// MilkBucket is a token bucket that starts full and refills one unit per interval.
type MilkBucket struct {
	logger   zerolog.Logger
	capacity int
	every    time.Duration
	now      func() time.Time

	mu      sync.Mutex
	limiter *rate.Limiter
}

func NewMilkBucket(logger zerolog.Logger, capacity int, every time.Duration) *MilkBucket {
	return newMilkBucket(logger, capacity, every, time.Now)
}

func newMilkBucket(logger zerolog.Logger, capacity int, every time.Duration, now func() time.Time) *MilkBucket {
	bucket := &MilkBucket{
		logger:   logger.With().Str("component", "milk").Logger(),
		capacity: capacity,
		every:    every,
		now:      now,
	}
	bucket.limiter = bucket.fullLimiter()

	return bucket
}

func (that *MilkBucket) fullLimiter() *rate.Limiter {
	limiter := rate.NewLimiter(rate.Every(that.every), that.capacity)
	// Anchor the limiter to the injected clock while it is still full.
	limiter.AllowN(that.now(), 0)

	return limiter
}

// Withdraw takes one unit or returns ErrRateLimited.
func (that *MilkBucket) Withdraw() error {
	that.mu.Lock()
	limiter := that.limiter
	that.mu.Unlock()

	if !limiter.AllowN(that.now(), 1) {
		that.logger.Debug().Str("method", "Withdraw").Msg("bucket is empty")
		return apperror.ErrRateLimited
	}

	return nil
}

// Refill makes the bucket full again.
func (that *MilkBucket) Refill() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.limiter = that.fullLimiter()
	that.logger.Info().Str("method", "Refill").Msg("bucket refilled")
}

// ConvertMilk reads an object holding exactly one known unit and returns the converted amount.
func ConvertMilk(body []byte) (map[string]float64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	if len(fields) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one unit, got %d fields", apperror.ErrInvalidInput, len(fields))
	}

	for unit, raw := range fields {
		conversion, ok := milkUnits[unit]
		if !ok {
			return nil, fmt.Errorf("%w: unknown unit %q", apperror.ErrInvalidInput, unit)
		}

		var amount *float64
		if err := json.Unmarshal(raw, &amount); err != nil || amount == nil {
			return nil, fmt.Errorf("%w: %s must be a number", apperror.ErrInvalidInput, unit)
		}

		converted := *amount * conversion.factor
		if math.IsInf(converted, 0) {
			return nil, fmt.Errorf("%w: %s is out of range", apperror.ErrInvalidInput, unit)
		}

		return map[string]float64{conversion.target: converted}, nil
	}

	return nil, fmt.Errorf("%w: empty body", apperror.ErrInvalidInput)
}
