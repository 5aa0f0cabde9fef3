package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/puzzlebox/internal/service"
)

// ipRoute adapts one of the address puzzles to a pair of query parameters.
func ipRoute(logger zerolog.Logger, left, right string, solve func(a, b string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		answer, err := solve(query.Get(left), query.Get(right))
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeText(w, http.StatusOK, answer)
	}
}

func mountIPRouter(r chi.Router, logger zerolog.Logger) {
	log := logger.With().Str("component", "iprouter").Logger()

	r.Get("/2/dest", ipRoute(log, "from", "key", service.Dest4))
	r.Get("/2/key", ipRoute(log, "from", "to", service.Key4))
	r.Get("/2/v6/dest", ipRoute(log, "from", "key", service.Xor6))
	r.Get("/2/v6/key", ipRoute(log, "from", "to", service.Xor6))
}
