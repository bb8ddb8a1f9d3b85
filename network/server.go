// Package network exposes the simulation over websockets: sessions send
// JSON orders through the command dispatcher and receive per-tick frame
// snapshots. The simulation never blocks on a slow client; a session
// that cannot keep up is dropped
package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/command"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/snapshot"
	"github.com/ohade/strategy-game/status"
)

const sessionWriteTimeout = 2 * time.Second

// Server accepts observer/commander connections and fans frames out
type Server struct {
	game       *engine.Game
	dispatcher *command.Dispatcher
	log        zerolog.Logger

	http       *http.Server
	snapshotHz int

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewServer(game *engine.Game, dispatcher *command.Dispatcher, addr string, snapshotHz int, log zerolog.Logger) *Server {
	s := &Server{
		game:       game,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "network").Logger(),
		snapshotHz: snapshotHz,
		sessions:   make(map[string]*Session),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.accept)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/statusz", s.statusz)
	s.http = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// Run serves until the context is cancelled, then drains sessions
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("listening")
		errCh <- s.http.ListenAndServe()
	}()

	go s.broadcastLoop(ctx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeSessions()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// statusz dumps the simulation telemetry registry as JSON for operators
func (s *Server) statusz(w http.ResponseWriter, r *http.Request) {
	reg := s.game.World.Resources.Status
	body := struct {
		Tick    int64              `json:"tick"`
		Metrics int                `json:"metrics"`
		Ints    map[string]int64   `json:"ints"`
		Floats  map[string]float64 `json:"floats"`
	}{
		Tick:    s.game.FrameNumber(),
		Metrics: reg.TotalCount(),
		Ints:    make(map[string]int64),
		Floats:  make(map[string]float64),
	}
	reg.Ints.Range(func(key string, v *atomic.Int64) {
		body.Ints[key] = v.Load()
	})
	reg.Floats.Range(func(key string, v *status.AtomicFloat) {
		body.Floats[key] = v.Get()
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("status encode failed")
	}
}

func (s *Server) accept(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // local tooling, no origin allowlist
	})
	if err != nil {
		s.log.Error().Err(err).Msg("accept failed")
		return
	}

	session := newSession(conn)
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Debug().Str("session", session.ID).Msg("session opened")
	go s.readLoop(r.Context(), session)
}

// readLoop decodes orders off one session and feeds the dispatcher,
// acking each result
func (s *Server) readLoop(ctx context.Context, session *Session) {
	defer s.drop(session, websocket.StatusNormalClosure, "bye")

	for {
		data, err := session.read(ctx)
		if err != nil {
			return
		}

		var order Order
		if err := json.Unmarshal(data, &order); err != nil {
			s.ack(ctx, session, order.Kind, err)
			continue
		}
		s.ack(ctx, session, order.Kind, s.apply(&order))
	}
}

func (s *Server) apply(order *Order) error {
	switch order.Kind {
	case OrderMove:
		return s.dispatcher.MoveTo(order.Units, order.X, order.Y)
	case OrderAttack:
		return s.dispatcher.AttackTarget(order.Units, order.Target)
	case OrderLaunch:
		return s.dispatcher.LaunchFighters(order.Carrier, order.Count)
	case OrderRecall:
		return s.dispatcher.RecallFighters(order.Carrier, order.Units)
	case OrderEmergencyMove:
		return s.dispatcher.EmergencyMove(order.Carrier, order.X, order.Y)
	default:
		return errors.New("unknown order kind")
	}
}

func (s *Server) ack(ctx context.Context, session *Session, kind string, err error) {
	ack := Ack{Kind: kind, OK: err == nil}
	if err != nil {
		ack.Error = err.Error()
	}
	data, marshalErr := json.Marshal(ack)
	if marshalErr != nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, sessionWriteTimeout)
	defer cancel()
	if err := session.write(writeCtx, data); err != nil {
		s.drop(session, websocket.StatusPolicyViolation, "write stalled")
	}
}

// broadcastLoop captures frames at the configured rate and fans them out
func (s *Server) broadcastLoop(ctx context.Context) {
	if s.snapshotHz <= 0 {
		return
	}
	ticker := time.NewTicker(time.Second / time.Duration(s.snapshotHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		n := len(s.sessions)
		s.mu.Unlock()
		if n == 0 {
			continue
		}

		frame := snapshot.Capture(s.game.World, s.game.FrameNumber())
		data, err := json.Marshal(frame)
		if err != nil {
			s.log.Error().Err(err).Msg("frame encode failed")
			continue
		}

		s.mu.Lock()
		targets := make([]*Session, 0, len(s.sessions))
		for _, session := range s.sessions {
			targets = append(targets, session)
		}
		s.mu.Unlock()

		for _, session := range targets {
			writeCtx, cancel := context.WithTimeout(ctx, sessionWriteTimeout)
			err := session.write(writeCtx, data)
			cancel()
			if err != nil {
				s.drop(session, websocket.StatusPolicyViolation, "write stalled")
			}
		}
	}
}

func (s *Server) drop(session *Session, code websocket.StatusCode, reason string) {
	s.mu.Lock()
	_, present := s.sessions[session.ID]
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	session.close(code, reason)
	if present {
		s.log.Debug().Str("session", session.ID).Msg("session closed")
	}
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	targets := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		targets = append(targets, session)
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range targets {
		session.close(websocket.StatusGoingAway, "shutdown")
	}
}
