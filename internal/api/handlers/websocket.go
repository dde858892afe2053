package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/nba-gm-sim/matchengine/internal/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleGameReplay upgrades the connection, registers the client with the
// hub and sends a welcome naming the game's replay topic; it does not
// subscribe the client, which receives frames only after sending its own
// subscribe message for that topic. Auth is optional: anonymous viewers may
// watch a replay, but only authenticated roles can trigger a simulation.
func (h *WebSocketHandler) HandleGameReplay(c *gin.Context) {
	gameID := c.Param("game_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to upgrade websocket connection")
		return
	}

	client := live.NewClient(h.hub, conn)
	h.hub.Register(client)

	welcome := map[string]interface{}{
		"type":    "welcome",
		"game_id": gameID,
		"topic":   live.GameTopic(gameID),
	}
	if err := conn.WriteJSON(welcome); err != nil {
		logrus.WithError(err).Error("failed to send websocket welcome message")
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
