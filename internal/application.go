package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/config"
	"github.com/rocketscienceinc/puzzlebox/internal/repository"
	"github.com/rocketscienceinc/puzzlebox/internal/repository/storage"
	"github.com/rocketscienceinc/puzzlebox/internal/service"
	"github.com/rocketscienceinc/puzzlebox/internal/usecase"
	"github.com/rocketscienceinc/puzzlebox/transport/rest"
	"github.com/rocketscienceinc/puzzlebox/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger zerolog.Logger, conf *config.Config) error {
	log := logger.With().Str("component", "app").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info().Stringer("signal", sig).Msg("Received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	quoteRepo, closeStore, err := openQuoteRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	board := usecase.NewBoardKeeper(logger)

	router := rest.NewRouter(logger, rest.Dependencies{
		Board:      board,
		Quotes:     service.NewQuoteService(logger, quoteRepo),
		Gift:       service.NewGiftService(conf.Gift.JWTSecret),
		Manifest:   service.NewManifestService(logger),
		Milk:       service.NewMilkBucket(logger, conf.Milk.Capacity, conf.Milk.RefillEvery),
		BoardWatch: websocket.New(logger, board),
	})
	server := rest.NewServer(conf.HTTPPort, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", conf.HTTPPort).Msg("Starting HTTP server")
		if httpErr := server.Start(); httpErr != nil {
			log.Error().Err(httpErr).Msg("HTTP server error")
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return nil
}

func openQuoteRepository(ctx context.Context, log zerolog.Logger, conf *config.Config) (repository.QuoteRepository, func(), error) {
	switch conf.Quotes.Driver {
	case config.QuotesDriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error().Err(err).Msg("could not close redis storage")
			}
		}

		log.Info().Str("addr", redisAddrString).Msg("quotes stored in redis")

		return repository.NewRedisQuoteRepository(redisStorage.Connection), closeFn, nil
	default:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Quotes.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		closeFn := func() {
			if err := sqliteStorage.Close(); err != nil {
				log.Error().Err(err).Msg("could not close sqlite storage")
			}
		}

		log.Info().Str("path", conf.Quotes.SQLitePath).Msg("quotes stored in sqlite")

		return repository.NewSQLiteQuoteRepository(sqliteStorage.Connection), closeFn, nil
	}
}
