package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/1broseidon/floatwm/internal/manager"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// writeTimeout bounds a single event write to a slow reader.
const writeTimeout = 5 * time.Second

type wsHandler func(ctx context.Context, r *http.Request, c *websocket.Conn)

func makeWSHandler(logger *slog.Logger, handler wsHandler) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept failed", "error", err)
			return
		}
		logger.Debug("websocket connected", "path", r.URL.Path, "remote", r.RemoteAddr)
		defer logger.Debug("websocket disconnected", "remote", r.RemoteAddr)
		defer c.Close(websocket.StatusInternalError, "")
		handler(r.Context(), r, c)
	}
}

// streamEvents writes every hub event as a JSON message until the peer
// goes away. ?type= limits the stream to the given event types.
func (s *Server) streamEvents(ctx context.Context, r *http.Request, c *websocket.Conn) {
	filter := eventFilter(r.URL.Query()["type"])

	events, unsubscribe := s.source.Subscribe(manager.DefaultSubscriberBuffer)
	defer unsubscribe()

	// The stream is write-only; reading handles pings and the close frame.
	ctx = c.CloseRead(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				c.Close(websocket.StatusGoingAway, "manager stopped")
				return
			}
			if !filter(ev.Type) {
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c, ev)
			cancel()
			if err != nil {
				s.logger.Debug("event stream write failed", "error", err)
				return
			}
		}
	}
}

func eventFilter(types []string) func(manager.EventType) bool {
	if len(types) == 0 {
		return func(manager.EventType) bool { return true }
	}
	want := make(map[manager.EventType]bool, len(types))
	for _, t := range types {
		want[manager.EventType(t)] = true
	}
	return func(t manager.EventType) bool { return want[t] }
}
