package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
	"github.com/rocketscienceinc/puzzlebox/internal/entity"
)

const watcherBuffer = 8

type watcher struct {
	ch        chan string
	closeOnce sync.Once
}

func (that *watcher) close() { that.closeOnce.Do(func() { close(that.ch) }) }

// BoardKeeper owns the single shared board. Every access goes through its lock.
type BoardKeeper struct {
	logger zerolog.Logger

	mu    sync.RWMutex
	board *entity.Board

	watchersMu sync.Mutex
	watchers   map[*watcher]struct{}
}

func NewBoardKeeper(logger zerolog.Logger) *BoardKeeper {
	return &BoardKeeper{
		logger:   logger.With().Str("component", "board").Logger(),
		board:    entity.NewBoard(),
		watchers: make(map[*watcher]struct{}),
	}
}

// View renders the board under a read lock.
func (that *BoardKeeper) View() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.board.String()
}

// Reset empties the board and returns its render.
func (that *BoardKeeper) Reset() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board.Reset()
	rendered := that.board.String()
	that.publish(rendered)

	that.logger.Info().Str("method", "Reset").Msg("board reset")

	return rendered
}

// TryPlace checks the outcome and drops the tile under a single write lock.
// Game-rule rejections still return the current render.
func (that *BoardKeeper) TryPlace(tile entity.Tile, column int) (string, error) {
	log := that.logger.With().Str("method", "TryPlace").Stringer("tile", tile).Int("column", column).Logger()

	if !tile.IsColor() || column < 0 || column >= entity.BoardWidth {
		return "", fmt.Errorf("%w: tile %d column %d", apperror.ErrInvalidInput, tile, column)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.board.CheckWinner().IsTerminal() {
		log.Debug().Msg("placement rejected, game over")
		return that.board.String(), apperror.ErrGameOver
	}

	if err := that.board.Place(tile, column); err != nil {
		log.Debug().Err(err).Msg("placement rejected")
		return that.board.String(), fmt.Errorf("failed to place tile: %w", err)
	}

	rendered := that.board.String()
	that.publish(rendered)

	log.Debug().Msg("tile placed")

	return rendered, nil
}

// Watch registers a subscriber that receives the current render and then every
// render produced by Reset or TryPlace. A subscriber that falls behind is dropped
// and its channel closed.
func (that *BoardKeeper) Watch(ctx context.Context) (<-chan string, func()) {
	w := &watcher{ch: make(chan string, watcherBuffer)}

	that.mu.RLock()
	w.ch <- that.board.String()
	that.watchersMu.Lock()
	that.watchers[w] = struct{}{}
	that.watchersMu.Unlock()
	that.mu.RUnlock()

	var once sync.Once
	done := make(chan struct{})
	unwatch := func() {
		once.Do(func() {
			that.watchersMu.Lock()
			delete(that.watchers, w)
			that.watchersMu.Unlock()
			w.close()
			close(done)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unwatch()
		case <-done:
		}
	}()

	return w.ch, unwatch
}

// publish must be called with the board write lock held so renders reach
// watchers in mutation order.
func (that *BoardKeeper) publish(rendered string) {
	that.watchersMu.Lock()
	defer that.watchersMu.Unlock()

	for w := range that.watchers {
		select {
		case w.ch <- rendered:
		default:
			delete(that.watchers, w)
			w.close()
			that.logger.Warn().Str("method", "publish").Msg("dropped slow board watcher")
		}
	}
}
