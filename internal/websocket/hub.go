package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "pdf_assistant_session_frames"

type Hub struct {
	// Registered clients keyed by connection id
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Closed when Run returns; pending register/unregister sends give up.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil runs single-instance.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run owns registration until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info(constant.LogModuleHub, "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join hands the client to Run. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave asks Run to drop the client; a stopped hub has nobody to tell.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
		h.logger.Info(constant.LogModuleHub, "Client unregistered", map[string]interface{}{"client_id": client.ID})
	}
}

// Broadcast sends a session frame to every local page and, when Redis is
// configured, to the pages of other instances.
func (h *Hub) Broadcast(frame []byte) {
	h.deliverLocal(frame)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterFrame{Origin: h.instanceID, Frame: frame})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn(constant.LogModuleHub, "Redis publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// ClientCount is the number of open pages on this instance.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) deliverLocal(frame []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- frame:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// A page that cannot keep up is dropped; it reconnects and gets a fresh snapshot.
	for _, client := range slow {
		h.logger.Warn(constant.LogModuleHub, "Client Send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
		h.remove(client)
	}
}

type clusterFrame struct {
	Origin string          `json:"origin"`
	Frame  json.RawMessage `json:"frame"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterFrame
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn(constant.LogModuleHub, "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliverLocal(payload.Frame)
		}
	}
}
