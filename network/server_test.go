package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/command"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/system"
)

func newTestServer() (*Server, *engine.Game) {
	game := engine.NewGame(zerolog.Nop(), time.Second/60)
	game.AddSystem(system.NewOrderSystem(game.World))
	dispatcher := command.NewDispatcher(game.World, zerolog.Nop())
	return NewServer(game, dispatcher, "localhost:0", 0, zerolog.Nop()), game
}

func TestStatuszReportsRegistry(t *testing.T) {
	srv, game := newTestServer()
	game.Step(time.Second / 60)

	ts := httptest.NewServer(srv.http.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/statusz")
	if err != nil {
		t.Fatalf("statusz request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("statusz status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Tick    int64              `json:"tick"`
		Metrics int                `json:"metrics"`
		Ints    map[string]int64   `json:"ints"`
		Floats  map[string]float64 `json:"floats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("statusz decode failed: %v", err)
	}

	if body.Tick != 1 {
		t.Errorf("tick = %d, want 1", body.Tick)
	}
	if body.Metrics == 0 {
		t.Error("registry reported no metrics")
	}
	if _, ok := body.Ints["orders.move"]; !ok {
		t.Errorf("ints = %v, want orders.move present", body.Ints)
	}
	if _, ok := body.Floats["engine.stepSeconds"]; !ok {
		t.Errorf("floats = %v, want engine.stepSeconds present", body.Floats)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()

	ts := httptest.NewServer(srv.http.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", resp.StatusCode)
	}
}
