// Package stream implements the broadcast side of the relay: long-lived
// event-stream clients grouped into named pools with best-effort fan-out.
// The relay runs two independent hubs, one for dashboard viewers and one
// for device command listeners.
package stream

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of open clients in one pool and broadcasts
// messages to them.
type Hub struct {
	name    string
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub creates an empty hub. The name only appears in logs.
func NewHub(name string) *Hub {
	return &Hub{
		name:    name,
		clients: make(map[*Client]struct{}),
	}
}

// Join adds a client to the pool.
func (h *Hub) Join(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Info().Str("pool", h.name).Str("client_id", client.ID()).Int("total_clients", total).Msg("Client connected")
}

// Leave removes a client from the pool. Removing a client that already left
// is a no-op.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	_, present := h.clients[client]
	delete(h.clients, client)
	total := len(h.clients)
	h.mu.Unlock()

	if present {
		log.Info().Str("pool", h.name).Str("client_id", client.ID()).Int("total_clients", total).Msg("Client disconnected")
	}
}

// Count returns the current pool size.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast writes payload to every client in the pool and returns the
// number of successful writes. Membership is snapshotted up front: clients
// joining mid-broadcast are not served and clients leaving cannot break the
// iteration. A failed write skips that client only; eviction is the stream
// handler's job, driven by disconnect detection, not the broadcaster's.
func (h *Hub) Broadcast(payload any) int {
	h.mu.RLock()
	snapshot := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		snapshot = append(snapshot, client)
	}
	h.mu.RUnlock()

	sent := 0
	for _, client := range snapshot {
		if err := client.Send(payload); err != nil {
			log.Warn().Err(err).Str("pool", h.name).Str("client_id", client.ID()).Msg("Broadcast write failed")
			continue
		}
		sent++
	}
	return sent
}
