package web

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
	"github.com/ppc-youthlead/chapter-web/internal/web/routepath"
)

func TestWallHubBroadcastsToConnectedBrowsers(t *testing.T) {
	t.Parallel()

	server := NewServer(Config{HTTPAddr: ":0"}, backend.New(backend.Config{}))
	site := httptest.NewServer(server.Handler())
	t.Cleanup(site.Close)

	wsURL := "ws" + strings.TrimPrefix(site.URL, "http") + routepath.CommunityWallLive
	conn, err := websocket.Dial(wsURL, "", site.URL)
	if err != nil {
		t.Fatalf("dial wall socket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// The hub registers the peer during the handshake goroutine; give it a
	// beat before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for {
		server.wall.mu.Lock()
		subscribed := len(server.wall.subscribers) > 0
		server.wall.mu.Unlock()
		if subscribed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("peer never joined the hub")
		}
		time.Sleep(10 * time.Millisecond)
	}

	server.wall.broadcast(wallUpdate{Author: "Bea", Content: "New cleanup date!"})

	var got wallUpdate
	if err := websocket.JSON.Receive(conn, &got); err != nil {
		t.Fatalf("receive update: %v", err)
	}
	if got.Author != "Bea" || got.Content != "New cleanup date!" {
		t.Fatalf("update = %+v", got)
	}
}

func TestWallHubDropsDisconnectedPeers(t *testing.T) {
	t.Parallel()

	hub := newWallHub()
	peer := newWallPeer(nil)
	hub.join(peer)
	hub.leave(peer)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if len(hub.subscribers) != 0 {
		t.Fatalf("subscribers = %d, want 0", len(hub.subscribers))
	}
}
