package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/service"
)

const handlerTimeout = 10 * time.Second

type Dependencies struct {
	Board    boardKeeper
	Quotes   service.QuoteService
	Gift     service.GiftService
	Manifest service.ManifestService
	Milk     milkBucket
	// BoardWatch streams board renders. It is mounted outside the handler timeout.
	BoardWatch http.Handler
}

// NewRouter wires every route behind the shared middleware stack.
func NewRouter(logger zerolog.Logger, deps Dependencies) http.Handler {
	log := logger.With().Str("component", "http").Logger()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(accessLog(log))
	r.Use(chimw.Recoverer)

	if deps.BoardWatch != nil {
		r.Get("/12/board/watch", deps.BoardWatch.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(handlerTimeout))

		r.Get("/", helloBird)
		r.Get("/-1/seek", seek)
		r.Get("/ping", ping)

		mountIPRouter(r, log)

		manifest := &manifestHandlers{logger: log.With().Str("component", "manifest").Logger(), manifest: deps.Manifest}
		r.Post("/5/manifest", manifest.orders)

		milk := &milkHandlers{logger: log.With().Str("component", "milk").Logger(), bucket: deps.Milk}
		r.Post("/9/milk", milk.withdraw)
		r.Post("/9/refill", milk.refill)

		board := &boardHandlers{logger: log.With().Str("component", "board").Logger(), board: deps.Board}
		r.Get("/12/board", board.view)
		r.Post("/12/reset", board.reset)
		r.Post("/12/place/{team}/{column}", board.place)

		gift := &giftHandlers{logger: log.With().Str("component", "gift").Logger(), gift: deps.Gift}
		r.Post("/16/wrap", gift.wrap)
		r.Get("/16/unwrap", gift.unwrap)

		quotes := &quoteHandlers{logger: log.With().Str("component", "quotes").Logger(), quotes: deps.Quotes}
		r.Post("/19/reset", quotes.reset)
		r.Get("/19/cite/{id}", quotes.cite)
		r.Delete("/19/remove/{id}", quotes.remove)
		r.Put("/19/undo/{id}", quotes.undo)
		r.Post("/19/draft", quotes.draft)

		r.Get("/23/star", star)
		r.Get("/23/present/{color}", present)
		r.Get("/23/ornament/{state}/{n}", ornament)
	})

	return r
}
