package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/puzzlebox/internal/entity"
	"github.com/rocketscienceinc/puzzlebox/internal/repository"
	"github.com/rocketscienceinc/puzzlebox/internal/service"
	"github.com/rocketscienceinc/puzzlebox/internal/usecase"
	"github.com/rocketscienceinc/puzzlebox/testing/suite"
)

const emptyBoard = "" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬜⬜⬜⬜⬜\n"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	_, sqliteStorage := suite.NewSQLite(t)

	return NewRouter(logger, Dependencies{
		Board:    usecase.NewBoardKeeper(logger),
		Quotes:   service.NewQuoteService(logger, repository.NewSQLiteQuoteRepository(sqliteStorage.Connection)),
		Gift:     service.NewGiftService("secret"),
		Manifest: service.NewManifestService(logger),
		Milk:     service.NewMilkBucket(logger, 2, time.Hour),
	})
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestBoardRoutes(t *testing.T) {
	t.Run("Empty board and reset", func(t *testing.T) {
		h := newTestRouter(t)

		rr := do(t, h, http.MethodGet, "/12/board", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, emptyBoard, rr.Body.String())

		rr = do(t, h, http.MethodPost, "/12/reset", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, emptyBoard, rr.Body.String())
	})

	t.Run("Winning game then 503 with the final board", func(t *testing.T) {
		// Given: cookies filling the bottom row
		h := newTestRouter(t)
		var last *httptest.ResponseRecorder
		for col := 1; col <= entity.BoardWidth; col++ {
			last = do(t, h, http.MethodPost, "/12/place/cookie/"+string(rune('0'+col)), "", "")
			require.Equal(t, http.StatusOK, last.Code)
		}

		won := last.Body.String()
		assert.True(t, strings.HasSuffix(won, "⬜🍪🍪🍪🍪⬜\n⬜⬜⬜⬜⬜⬜\n🍪 wins!\n"), won)

		// When: milk tries to play on
		rr := do(t, h, http.MethodPost, "/12/place/milk/1", "", "")

		// Then: 503 with the unchanged board
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, won, rr.Body.String())
	})

	t.Run("Full column answers 503", func(t *testing.T) {
		h := newTestRouter(t)
		for _, team := range []string{"cookie", "milk", "cookie", "milk"} {
			require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/12/place/"+team+"/4", "", "").Code)
		}
		before := do(t, h, http.MethodGet, "/12/board", "", "").Body.String()

		rr := do(t, h, http.MethodPost, "/12/place/cookie/4", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, before, rr.Body.String())
	})

	t.Run("Bad team or column answers 400", func(t *testing.T) {
		h := newTestRouter(t)

		for _, target := range []string{
			"/12/place/chocolate/1",
			"/12/place/Cookie/1",
			"/12/place/cookie/0",
			"/12/place/cookie/5",
			"/12/place/milk/one",
		} {
			rr := do(t, h, http.MethodPost, target, "", "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		}

		assert.Equal(t, emptyBoard, do(t, h, http.MethodGet, "/12/board", "", "").Body.String())
	})

	t.Run("Concurrent placements never corrupt the board", func(t *testing.T) {
		h := newTestRouter(t)

		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				team := "cookie"
				if i%2 == 0 {
					team = "milk"
				}
				rr := do(t, h, http.MethodPost, "/12/place/"+team+"/"+string(rune('1'+i%4)), "", "")
				assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, rr.Code)
			}(i)
		}
		wg.Wait()

		board := do(t, h, http.MethodGet, "/12/board", "", "").Body.String()
		assert.True(t, strings.HasPrefix(board, "⬜"), board)
		assert.Contains(t, board, "⬜⬜⬜⬜⬜⬜\n")
	})
}

func TestGreetingRoutes(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello, bird!", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/-1/seek", "", "")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, seekURL, rr.Header().Get("Location"))

	rr = do(t, h, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestIPRouterRoutes(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/2/dest?from=10.0.0.0&key=1.2.3.255", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "11.2.3.255", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/2/key?from=10.0.0.0&to=11.2.3.255", "", "")
	assert.Equal(t, "1.2.3.255", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/2/v6/dest?from=fe80::1&key=5:6:7::3333", "", "")
	assert.Equal(t, "fe85:6:7::3332", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/2/v6/key?from=fe80::1&to=fe85:6:7::3332", "", "")
	assert.Equal(t, "5:6:7::3333", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/2/dest?from=10.0.0.0", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestManifestRoute(t *testing.T) {
	h := newTestRouter(t)
	body := "[package]\nname = \"gifts\"\n\n[[package.metadata.orders]]\nitem = \"Toy car\"\nquantity = 2\n\n" +
		"[[package.metadata.orders]]\nitem = \"Lego brick\"\nquantity = 230\n"

	rr := do(t, h, http.MethodPost, "/5/manifest", "application/toml", body)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Toy car: 2\nLego brick: 230", rr.Body.String())

	rr = do(t, h, http.MethodPost, "/5/manifest", "application/toml", "[package]\nname = \"gifts\"\n")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodPost, "/5/manifest", "application/toml", "[package\n")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid manifest", rr.Body.String())

	rr = do(t, h, http.MethodPost, "/5/manifest", "text/plain", body)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestMilkRoutes(t *testing.T) {
	h := newTestRouter(t)

	// Given: a bucket holding two units
	rr := do(t, h, http.MethodPost, "/9/milk", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Milk withdrawn\n", rr.Body.String())

	rr = do(t, h, http.MethodPost, "/9/milk", "application/json", `{"gallons": 1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var converted map[string]float64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &converted))
	assert.InDelta(t, 3.785411784, converted["liters"], 1e-9)

	// When: the bucket is empty
	rr = do(t, h, http.MethodPost, "/9/milk", "", "")

	// Then: milk is refused until a refill
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "No milk available\n", rr.Body.String())

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/9/refill", "", "").Code)

	rr = do(t, h, http.MethodPost, "/9/milk", "application/json", `{"liters": 1, "gallons": 1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGiftRoutes(t *testing.T) {
	h := newTestRouter(t)

	// Given: a wrapped gift
	rr := do(t, h, http.MethodPost, "/16/wrap", "application/json", `{"cookie": "chocolate chip", "count": 3}`)
	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, giftCookie, cookies[0].Name)

	// When: it is unwrapped with the cookie
	req := httptest.NewRequest(http.MethodGet, "/16/unwrap", nil)
	req.AddCookie(cookies[0])
	unwrapped := httptest.NewRecorder()
	h.ServeHTTP(unwrapped, req)

	// Then: the original document comes back
	assert.Equal(t, http.StatusOK, unwrapped.Code)
	assert.JSONEq(t, `{"cookie": "chocolate chip", "count": 3}`, unwrapped.Body.String())

	// And: missing or forged cookies are rejected
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/16/unwrap", "", "").Code)

	req = httptest.NewRequest(http.MethodGet, "/16/unwrap", nil)
	req.AddCookie(&http.Cookie{Name: giftCookie, Value: "eyJhbGciOiJIUzI1NiJ9.e30.forged"})
	forged := httptest.NewRecorder()
	h.ServeHTTP(forged, req)
	assert.Equal(t, http.StatusUnauthorized, forged.Code)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/16/wrap", "application/json", `{"a":`).Code)
}

func TestQuoteRoutes(t *testing.T) {
	h := newTestRouter(t)

	// Given: a drafted quote
	rr := do(t, h, http.MethodPost, "/19/draft", "application/json", `{"author":"Santa","quote":"Ho ho ho"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var drafted entity.Quote
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &drafted))
	assert.Equal(t, 1, drafted.Version)
	id := drafted.ID.String()

	// When: it is cited and updated
	rr = do(t, h, http.MethodGet, "/19/cite/"+id, "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPut, "/19/undo/"+id, "application/json", `{"author":"Elf","quote":"Cookies!"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated entity.Quote
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))

	// Then: the version went up and the text changed
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Elf", updated.Author)

	// When: it is removed
	rr = do(t, h, http.MethodDelete, "/19/remove/"+id, "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Then: it is gone
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/19/cite/"+id, "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/19/remove/"+id, "", "").Code)

	// And: bad ids and bodies are rejected
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/19/cite/nope", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/19/draft", "application/json", `{"author":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/19/draft", "application/json", `nope`).Code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/19/reset", "", "").Code)
}

func TestOrnamentRoutes(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/23/star", "", "")
	assert.Equal(t, `<div id="star" class="lit"></div>`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/23/present/purple", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `class="present purple" hx-get="/23/present/red"`)

	rr = do(t, h, http.MethodGet, "/23/present/green", "", "")
	assert.Equal(t, http.StatusTeapot, rr.Code)

	rr = do(t, h, http.MethodGet, "/23/ornament/on/1", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t,
		`<div class="ornament on" id="ornament1" hx-trigger="load delay:2s once" hx-get="/23/ornament/off/1" hx-swap="outerHTML"></div>`,
		rr.Body.String())

	rr = do(t, h, http.MethodGet, "/23/ornament/off/%3Cb%3E", "", "")
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `id="ornament&lt;b&gt;"`)

	assert.Equal(t, http.StatusTeapot, do(t, h, http.MethodGet, "/23/ornament/dim/1", "", "").Code)
}
