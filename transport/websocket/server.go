package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type boardWatcher interface {
	Watch(ctx context.Context) (<-chan string, func())
}

// Server streams board renders to websocket clients. It is read-only: client
// messages are discarded.
type Server struct {
	logger     zerolog.Logger
	board      boardWatcher
	upgrader   websocket.Upgrader
	pingPeriod time.Duration
}

func New(logger zerolog.Logger, board boardWatcher) *Server {
	return &Server{
		logger: logger.With().Str("component", "board-watch").Logger(),
		board:  board,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		pingPeriod: pingPeriod,
	}
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With().Str("method", "ServeHTTP").Str("remote", r.RemoteAddr).Logger()

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, unwatch := that.board.Watch(ctx)
	defer unwatch()

	log.Info().Msg("watcher connected")
	defer log.Info().Msg("watcher disconnected")

	go that.readLoop(conn, cancel)

	ticker := time.NewTicker(that.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case rendered, ok := <-updates:
			if !ok {
				that.closeConn(conn, websocket.CloseTryAgainLater, "too slow")
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.TextMessage, []byte(rendered)); err != nil {
				log.Debug().Err(err).Msg("failed to send board")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Msg("ping failed")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// readLoop keeps control frames flowing and cancels the stream once the client goes away.
func (that *Server) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(that.pingPeriod + writeWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(that.pingPeriod + writeWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (that *Server) closeConn(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
