package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soccerhub/backend/fixtures"
	"github.com/soccerhub/backend/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin before exposing publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub             *fixtures.Hub
	divisionService services.DivisionService
	logger          *slog.Logger
}

func NewWebSocketHandler(hub *fixtures.Hub, ds services.DivisionService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, divisionService: ds, logger: logger}
}

// ServeDivision subscribes the client to live updates for one division.
func (h *WebSocketHandler) ServeDivision(w http.ResponseWriter, r *http.Request) {
	divisionID, err := getIDFromURL(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.divisionService.GetDivisionByID(r.Context(), divisionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("division_id", divisionID),
			slog.Any("error", err))
		return
	}

	h.hub.NewClient(conn, fixtures.DivisionRoom(divisionID))
}
