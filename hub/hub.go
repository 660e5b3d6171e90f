// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/danielhkuo/classpulse/models"
)

// Hub fans the public state projection out to every connected WebSocket
// client. It implements poll.Broadcaster.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	clients map[*Client]struct{}

	// onDisconnect is invoked (on its own goroutine) with the participant
	// token of every client that drops, so the poll session can unregister
	// them. Set before Run.
	onDisconnect func(token string)

	done      chan struct{}
	closeOnce sync.Once
}

func New() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// SetDisconnectHandler wires the hub back to the poll session. Must be
// called before Run; the hub and the manager are constructed in a cycle,
// so this cannot be a constructor argument.
func (h *Hub) SetDisconnectHandler(fn func(token string)) {
	h.onDisconnect = fn
}

// Broadcast implements poll.Broadcaster. Called with the manager mutex
// held, so it must never block on client I/O; it only hands the encoded
// state to the run loop.
func (h *Hub) Broadcast(state models.PublicState) {
	data, err := json.Marshal(state)
	if err != nil {
		slog.Error("failed to encode broadcast state", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// Run owns the client set. All registration, removal, and fan-out happens
// on this single goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			slog.Info("client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			h.drop(c)

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: dropping the client beats stalling
					// the broadcast for the whole classroom.
					h.drop(c)
				}
			}

		case <-h.done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		}
	}
}

// drop removes a client and reports its token as disconnected. The
// callback runs on its own goroutine: it takes the manager mutex, and the
// manager may be mid-broadcast into this loop.
func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	slog.Info("client disconnected", "clients", len(h.clients))
	if h.onDisconnect != nil && c.token != "" {
		go h.onDisconnect(c.token)
	}
}

// Close stops the run loop and closes every client send channel.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}
