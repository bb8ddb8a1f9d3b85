package network

import (
	"context"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Session is one connected observer/commander. Frames go out, orders
// come in; there is no per-session world state
type Session struct {
	ID   string
	conn *websocket.Conn

	closed atomic.Bool
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{
		ID:   uuid.NewString(),
		conn: conn,
	}
}

func (s *Session) read(ctx context.Context) ([]byte, error) {
	_, data, err := s.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Session) write(ctx context.Context, data []byte) error {
	return s.conn.Write(ctx, websocket.MessageText, data)
}

func (s *Session) close(code websocket.StatusCode, reason string) {
	if s.closed.CompareAndSwap(false, true) {
		s.conn.Close(code, reason)
	}
}
