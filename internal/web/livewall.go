package web

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/ppc-youthlead/chapter-web/internal/forum"
)

// wallUpdate is the frame pushed to browsers when a new wall post lands.
type wallUpdate struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type wallPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWallPeer(encoder *json.Encoder) *wallPeer {
	return &wallPeer{encoder: encoder}
}

func (p *wallPeer) writeUpdate(update wallUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(update)
}

// wallHub fans live wall posts out to every connected browser.
type wallHub struct {
	mu          sync.Mutex
	subscribers map[*wallPeer]struct{}
}

func newWallHub() *wallHub {
	return &wallHub{subscribers: make(map[*wallPeer]struct{})}
}

func (h *wallHub) join(peer *wallPeer) {
	h.mu.Lock()
	h.subscribers[peer] = struct{}{}
	h.mu.Unlock()
}

func (h *wallHub) leave(peer *wallPeer) {
	h.mu.Lock()
	delete(h.subscribers, peer)
	h.mu.Unlock()
}

func (h *wallHub) broadcast(update wallUpdate) {
	h.mu.Lock()
	subscribers := make([]*wallPeer, 0, len(h.subscribers))
	for subscriber := range h.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	h.mu.Unlock()

	for _, subscriber := range subscribers {
		if err := subscriber.writeUpdate(update); err != nil {
			h.leave(subscriber)
		}
	}
}

// handleWallSocket upgrades the request and parks the peer until the client
// disconnects. Browsers only listen on this socket; posts go through the form.
func (h *wallHub) handler() websocket.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		peer := newWallPeer(json.NewEncoder(conn))
		h.join(peer)
		defer h.leave(peer)

		// Drain until the client goes away.
		var discard string
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	})
}

// runWallFeed keeps a backend realtime subscription alive and rebroadcasts
// each new post to connected browsers. Reconnects with backoff because the
// upstream socket drops whenever the backend restarts.
func (s *Server) runWallFeed(ctx context.Context) {
	const retryDelay = 5 * time.Second

	for {
		err := s.forum.Subscribe(ctx, "", func(post forum.AuthoredPost) {
			s.wall.broadcast(wallUpdate{
				Author:    post.AuthorName(),
				Content:   post.Content,
				CreatedAt: post.CreatedAt,
			})
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("wall feed disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}
