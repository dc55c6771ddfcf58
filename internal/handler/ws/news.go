// Package ws provides the websocket endpoint for the live news feed.
package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"newswire/internal/broadcast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the feed is public read, any origin may join
	},
}

// Feed replays the article backlog to one member and relays text to all.
type Feed interface {
	ReplayBacklog(ctx context.Context, handle broadcast.Handle) error
	RelayText(text string)
}

// NewsHandler upgrades clients to a websocket connection, replays the stored
// backlog, then relays any text the client sends to every connected member.
// Joining requires no credential; only article creation is gated.
type NewsHandler struct {
	Registry *broadcast.Registry
	Feed     Feed
	Logger   *slog.Logger
}

func (h NewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response
		h.Logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	handle := h.Registry.Join(conn)
	logger := h.Logger.With(slog.String("handle", handle.String()))
	logger.Info("feed client connected")

	if err := h.Feed.ReplayBacklog(r.Context(), handle); err != nil {
		logger.Warn("backlog replay aborted", slog.String("error", err.Error()))
		h.Registry.Leave(handle)
		return
	}
	// release broadcasts parked during the replay
	if err := h.Registry.Activate(handle); err != nil {
		logger.Warn("feed client lost during replay")
		return
	}

	// read pump, blocks until the connection closes
	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType == websocket.TextMessage {
			h.Feed.RelayText(string(payload))
		}
	}

	h.Registry.Leave(handle)
	logger.Info("feed client disconnected")
}
