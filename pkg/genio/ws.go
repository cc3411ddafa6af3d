package genio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var _ Session = (*WSSession)(nil)

// WSSession speaks a realtime generation endpoint over a WebSocket. The
// server streams JSON events per turn:
//
//	{"type": "delta", "delta": "...", "text": "..."}
//	{"type": "complete", "text": "..."}
//	{"type": "idle"}
//	{"type": "error", "message": "..."}
//
// Server errors and connection loss both end the turn with idle, matching
// the other adapters.
type WSSession struct {
	hub

	conn      *websocket.Conn
	writeMu   sync.Mutex
	readOnce  sync.Once
	closeOnce sync.Once
}

// DialWS connects to a realtime generation endpoint.
func DialWS(ctx context.Context, url string, header http.Header) (*WSSession, error) {
	dialer := websocket.Dialer{}
	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("genio: connect %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("genio: connect %s: %w", url, err)
	}
	return &WSSession{conn: conn}, nil
}

type wsClientEvent struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
}

type wsServerEvent struct {
	Type    string `json:"type"`
	Delta   string `json:"delta,omitempty"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *WSSession) Send(ctx context.Context, text string) error {
	ev := wsClientEvent{
		EventID: "evt_" + uuid.New().String()[:12],
		Type:    "message",
		Text:    text,
	}

	s.writeMu.Lock()
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetWriteDeadline(deadline)
	}
	err := s.conn.WriteJSON(ev)
	s.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("genio: websocket send: %w", err)
	}

	s.readOnce.Do(func() { go s.readLoop() })
	return nil
}

func (s *WSSession) readLoop() {
	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("genio: websocket read ended", "err", err)
			}
			s.emitIdle()
			return
		}

		var ev wsServerEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			slog.Warn("genio: malformed websocket event", "err", err)
			continue
		}

		switch ev.Type {
		case "delta":
			s.emitDelta(ev.Delta, ev.Text)
		case "complete":
			s.emitComplete(ev.Text)
		case "idle":
			s.emitIdle()
		case "error":
			slog.Warn("genio: server reported error", "message", ev.Message)
			s.emitIdle()
		default:
			slog.Debug("genio: ignoring websocket event", "type", ev.Type)
		}
	}
}

// Close tears down the connection. Any in-flight turn ends with idle from
// the read loop.
func (s *WSSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = s.conn.Close()
	})
	return err
}
