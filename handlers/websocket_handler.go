package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fnitalia/community-hub/live"
	"github.com/gorilla/websocket"
)

type WebsocketHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewWebsocketHandler(hub *live.Hub, logger *slog.Logger) *WebsocketHandler {
	return &WebsocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origin checks are handled by the CORS layer; the
			// socket carries no privileged data.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Subscribe upgrades the connection and pins it to the room named in the
// query string. Only known rooms are accepted.
func (h *WebsocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	switch room {
	case live.RoomTournaments, live.RoomPredictions:
	default:
		badRequestResponse(w, r, fmt.Errorf("unknown room: %q", room))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, room)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
