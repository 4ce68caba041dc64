package service

import (
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/martianchess-backend/internal/model"
	"github.com/google/uuid"
)

func newService() (*GameService, *GameManager) {
	gm := NewGameManager(model.DefaultRules(), nil)
	return NewGameService(gm, nil), gm
}

func TestCreateGameReturnsUUID(t *testing.T) {
	gs, gm := newService()

	id := gs.CreateGame()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("game id %q is not a uuid: %v", id, err)
	}
	if gm.Count() != 1 {
		t.Fatalf("count = %d, want 1", gm.Count())
	}

	state, err := gs.GetGameState(id)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Status != "ongoing" || state.ToMove != 1 || state.Clock != -1 {
		t.Fatalf("unexpected fresh state: %+v", state)
	}
	if state.Board[0] != "QQD." {
		t.Fatalf("row 1 = %q", state.Board[0])
	}
}

func TestHandleMove(t *testing.T) {
	gs, _ := newService()
	id := gs.CreateGame()

	res, err := gs.HandleMove(id, "b3a4")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if res.Outcome.Kind != model.OutcomeMoved {
		t.Fatalf("kind = %s", res.Outcome.Kind)
	}
	if res.State.Turn != 1 || res.State.ToMove != 2 {
		t.Fatalf("state after move: %+v", res.State)
	}
	if res.State.LastMove == nil || *res.State.LastMove != "B3A4" {
		t.Fatalf("last move = %v", res.State.LastMove)
	}
}

func TestHandleMoveErrors(t *testing.T) {
	gs, _ := newService()
	id := gs.CreateGame()

	tests := []struct {
		name   string
		gameID string
		move   string
		kind   ErrorKind
	}{
		{"unknown game", "nope", "B3A4", KindNotFound},
		{"garbage", id, "hello", KindBadInput},
		{"rule violation", id, "A4A5", KindRuleViolation},
		{"wrong zone", id, "B6A5", KindRuleViolation},
	}
	for _, tt := range tests {
		_, err := gs.HandleMove(tt.gameID, tt.move)
		if err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if got := Classify(err); got != tt.kind {
			t.Fatalf("%s: kind = %d, want %d (%v)", tt.name, got, tt.kind, err)
		}
	}
}

func TestStartClockTwice(t *testing.T) {
	gs, _ := newService()
	id := gs.CreateGame()

	res, err := gs.StartClock(id)
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if !res.State.ClockRunning || res.State.Clock != model.DefaultClockStart {
		t.Fatalf("clock state: %+v", res.State)
	}
	if _, err := gs.StartClock(id); !errors.Is(err, model.ErrClockStarted) {
		t.Fatalf("second start err = %v", err)
	}
}

func TestMoveAfterGameOver(t *testing.T) {
	gm := NewGameManager(model.Rules{ClockStart: 1}, nil)
	gs := NewGameService(gm, nil)
	id := gs.CreateGame()

	if _, err := gs.StartClock(id); err != nil {
		t.Fatalf("clock: %v", err)
	}
	res, err := gs.HandleMove(id, "B3A4")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if res.State.Status != "over" || res.State.Reason == nil || *res.State.Reason != string(model.ReasonClockExpired) {
		t.Fatalf("expected clock expiry, got %+v", res.State)
	}
	// Scores tied at turn 1: Player 1 made the last move, so Player 1 wins.
	if res.State.Winner == nil || *res.State.Winner != 1 {
		t.Fatalf("winner = %v", res.State.Winner)
	}

	_, err = gs.HandleMove(id, "B6A5")
	if Classify(err) != KindGameOver {
		t.Fatalf("err = %v, want game over", err)
	}
}

func TestPruneDropsIdleGames(t *testing.T) {
	gs, gm := newService()
	stale := gs.CreateGame()
	fresh := gs.CreateGame()
	if _, err := gs.HandleMove(fresh, "B3A4"); err != nil {
		t.Fatalf("move: %v", err)
	}

	game, _ := gm.GetGame(fresh)
	cutoff := game.LastActive().Add(time.Minute)
	if n := gm.Prune(cutoff, 2*time.Minute); n != 0 {
		t.Fatalf("pruned %d games that were active", n)
	}
	if n := gm.Prune(cutoff.Add(time.Hour), 2*time.Minute); n != 2 {
		t.Fatalf("pruned %d, want 2", n)
	}
	if _, err := gm.GetGame(stale); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("stale game still present")
	}
}

func TestAddGameRejectsDuplicates(t *testing.T) {
	_, gm := newService()
	g := model.NewGame("fixed", model.DefaultRules(), nil)
	if err := gm.AddGame(g); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := gm.AddGame(g); !errors.Is(err, ErrGameExists) {
		t.Fatalf("err = %v, want ErrGameExists", err)
	}
}

func TestPruneDropsFinishedGamesSooner(t *testing.T) {
	gm := NewGameManager(model.Rules{ClockStart: 1}, nil)
	gs := NewGameService(gm, nil)
	finished := gs.CreateGame()
	running := gs.CreateGame()
	for _, m := range []string{"clk", "B3A4"} {
		if _, err := gs.HandleMove(finished, m); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
	}
	if _, err := gs.HandleMove(running, "B3A4"); err != nil {
		t.Fatalf("move: %v", err)
	}

	game, _ := gm.GetGame(running)
	now := game.LastActive().Add(30 * time.Minute)
	if n := gm.Prune(now, time.Hour); n != 1 {
		t.Fatalf("pruned %d, want only the finished game", n)
	}
	if _, err := gm.GetGame(finished); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("finished game still present")
	}
	if gm.Count() != 1 {
		t.Fatalf("count = %d, want 1", gm.Count())
	}
}
