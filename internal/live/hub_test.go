package live

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func waitUntilRegistered(h *Hub, c *Client) {
	for i := 0; i < 100; i++ {
		h.mu.RLock()
		ok := h.clients[c]
		h.mu.RUnlock()
		if ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func TestIsSubscribedToMatchesExactAndWildcard(t *testing.T) {
	c := &Client{topics: map[string]bool{"game_id:g1": true}, mu: sync.Mutex{}}
	if !c.IsSubscribedTo("game_id:g1") {
		t.Fatal("expected subscribed to game_id:g1")
	}
	if c.IsSubscribedTo("game_id:g2") {
		t.Fatal("expected not subscribed to game_id:g2")
	}

	wildcard := &Client{topics: map[string]bool{"*": true}}
	if !wildcard.IsSubscribedTo("game_id:anything") {
		t.Fatal("expected wildcard subscription to match any topic")
	}
}

func TestHubBroadcastFrameOnlyReachesSubscribedClient(t *testing.T) {
	h := NewHub(logrus.New())
	go h.Run()

	subscribed := &Client{hub: h, send: make(chan []byte, 4), topics: map[string]bool{"game_id:g1": true}}
	unsubscribed := &Client{hub: h, send: make(chan []byte, 4), topics: map[string]bool{"game_id:g2": true}}
	h.Register(subscribed)
	h.Register(unsubscribed)
	waitUntilRegistered(h, subscribed)
	waitUntilRegistered(h, unsubscribed)

	if err := h.BroadcastFrame(ReplayFrame{Type: "possession", GameID: "g1", Sequence: 1, Data: map[string]interface{}{"end_reason": "SCORE"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	select {
	case <-subscribed.send:
	default:
		t.Fatal("expected subscribed client to receive the frame")
	}
	select {
	case <-unsubscribed.send:
		t.Fatal("expected unsubscribed client to receive nothing")
	default:
	}
}
