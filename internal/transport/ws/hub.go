// Package ws streams published snapshots to connected viewers.
package ws

import (
	"context"
	"sync/atomic"

	"sysglance/internal/logger"
)

type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients map[*Client]bool
	count   atomic.Int64

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	log logger.Logger
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients: make(map[*Client]bool),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			if !h.clients[client] {
				continue
			}

			delete(h.clients, client)
			h.count.Store(int64(len(h.clients)))
			close(client.send)
			h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))

		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer; drop this update rather than
					// stall the hub.
					h.log.Warn("ws: client send buffer full, dropping update", "id", client.ID)
				}
			}
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Broadcast queues a payload for every connected client. Never blocks
// past hub shutdown.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.ctx.Done():
	}
}

// ClientCount reports how many viewers are connected. Safe from any
// goroutine.
func (h *Hub) ClientCount() int64 {
	return h.count.Load()
}
