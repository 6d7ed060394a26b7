package navigation

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub delivers session-scoped events to the single live connection per
// user. Events for absent or slow consumers are dropped; the next location
// update re-derives state.
type Hub struct {
	redis   *redis.Client
	clients map[string]*Client
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]*Client{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

// Register attaches a new live connection for the user, replacing and
// closing any previous one.
func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	old := h.clients[userID]
	h.clients[userID] = client
	h.mu.Unlock()

	if old != nil {
		close(old.Send)
	}
	return client
}

// Unregister detaches the connection. A client already replaced by a newer
// connection is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	current := h.clients[client.UserID]
	if current == client {
		delete(h.clients, client.UserID)
	}
	h.mu.Unlock()

	if current == client {
		close(client.Send)
	}
}

// Connected reports whether the user has a live connection on this instance.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[userID] != nil
}

// Send delivers an event to the user's live connection. When the user is
// not connected locally the event is published to redis so another
// instance can deliver it; with no redis it is dropped.
func (h *Hub) Send(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}

	if h.deliverLocal(userID, payload) {
		return
	}

	if h.redis != nil {
		if err := h.redis.Publish(context.Background(), navChannel(userID), payload).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

// Broadcast sends an event to each of the given users.
func (h *Hub) Broadcast(event Event, userIDs []string) {
	for _, userID := range userIDs {
		h.Send(userID, event)
	}
}

func (h *Hub) deliverLocal(userID string, payload []byte) bool {
	h.mu.RLock()
	client := h.clients[userID]
	h.mu.RUnlock()

	if client == nil {
		return false
	}
	select {
	case client.Send <- payload:
	default:
	}
	return true
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "nav:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal(userIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func navChannel(userID string) string {
	return "nav:" + userID + ":events"
}

func userIDFromChannel(ch string) string {
	// nav:{user}:events
	const prefix = "nav:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) || !strings.HasPrefix(ch, prefix) || !strings.HasSuffix(ch, suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
