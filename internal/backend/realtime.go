package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/websocket"
)

const heartbeatInterval = 30 * time.Second

// realtimeFrame is one phoenix-channel message on the realtime socket.
type realtimeFrame struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type insertPayload struct {
	Record json.RawMessage `json:"record"`
}

// SubscribeInserts joins the change-notification channel for table and calls
// handle with the raw row of every insert event until ctx ends or the socket
// fails. There is no automatic reconnect; a broken feed stays broken until
// the process restarts.
func (c *Client) SubscribeInserts(ctx context.Context, table string, handle func(record json.RawMessage)) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/realtime/v1/websocket?apikey=" + c.anonKey + "&vsn=1.0.0"
	cfg, err := websocket.NewConfig(wsURL, c.baseURL)
	if err != nil {
		return fmt.Errorf("realtime config: %w", err)
	}
	conn, err := websocket.DialConfig(cfg)
	if err != nil {
		return fmt.Errorf("realtime dial: %w", err)
	}
	defer conn.Close()

	topic := "realtime:public:" + table
	join := realtimeFrame{Topic: topic, Event: "phx_join", Payload: json.RawMessage(`{}`), Ref: "1"}
	if err := websocket.JSON.Send(conn, join); err != nil {
		return fmt.Errorf("realtime join %s: %w", topic, err)
	}

	// Unblock the read loop when the caller goes away.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	// Single writer after the join frame.
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		ref := 2
		for {
			select {
			case <-ticker.C:
				beat := realtimeFrame{Topic: "phoenix", Event: "heartbeat", Payload: json.RawMessage(`{}`), Ref: strconv.Itoa(ref)}
				ref++
				if err := websocket.JSON.Send(conn, beat); err != nil {
					return
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var frame realtimeFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("realtime receive: %w", err)
		}
		if frame.Topic != topic || frame.Event != "INSERT" {
			continue
		}
		var payload insertPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			log.Printf("backend: malformed insert payload on %s: %v", topic, err)
			continue
		}
		handle(payload.Record)
	}
}
