// Package live broadcasts possession-by-possession replay events to
// websocket subscribers of a single game_id topic. Grounded on
// backend.deprecated/internal/services/websocket.go's topic-subscription
// hub, retargeted from user-keyed DFS updates to game_id-keyed replay
// frames.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan topicMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *logrus.Logger
}

type topicMessage struct {
	topic string
	bytes []byte
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
	mu     sync.Mutex
}

// ReplayFrame is one possession's worth of replay data pushed to
// subscribers of game_id:<id>.
type ReplayFrame struct {
	Type      string                 `json:"type"`
	GameID    string                 `json:"game_id"`
	Sequence  int                    `json:"sequence"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan topicMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.IsSubscribedTo(msg.topic) {
					continue
				}
				select {
				case client.send <- msg.bytes:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func GameTopic(gameID string) string { return "game_id:" + gameID }

// BroadcastFrame pushes one possession's replay frame to game_id:<id>
// subscribers. Safe to call from the possession loop's goroutine.
func (h *Hub) BroadcastFrame(frame ReplayFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	h.broadcast <- topicMessage{topic: GameTopic(frame.GameID), bytes: data}
	return nil
}

func (h *Hub) Register(client *Client) { h.register <- client }

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{hub: hub, conn: conn, send: make(chan []byte, 256), topics: make(map[string]bool)}
}

type subscription struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var sub subscription
		if err := c.conn.ReadJSON(&sub); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Warn("websocket read error")
			}
			break
		}
		c.mu.Lock()
		switch sub.Action {
		case "subscribe":
			for _, t := range sub.Topics {
				c.topics[t] = true
			}
		case "unsubscribe":
			for _, t := range sub.Topics {
				delete(c.topics, t)
			}
		}
		c.mu.Unlock()
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) IsSubscribedTo(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topics[topic] || c.topics["*"]
}
