package console

import (
	"strings"
	"testing"

	"github.com/benbeisheim/martianchess-backend/internal/model"
)

func run(t *testing.T, rules model.Rules, input string, interactive bool) (model.GameState, string) {
	t.Helper()
	var out strings.Builder
	s, err := New(strings.NewReader(input), &out, interactive, nil).Run(rules)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return s, out.String()
}

func TestPrompt(t *testing.T) {
	s := model.NewGameState(model.DefaultRules())
	if got := Prompt(&s); got != "Player 1> " {
		t.Fatalf("prompt = %q", got)
	}
	if _, err := s.Play(model.ClockMove()); err != nil {
		t.Fatal(err)
	}
	if got := Prompt(&s); got != "Player 1 (8)> " {
		t.Fatalf("prompt = %q", got)
	}
	if _, err := s.Play(model.Move{Src: model.Position{Row: 2, Col: 1}, Dst: model.Position{Row: 3, Col: 0}}); err != nil {
		t.Fatal(err)
	}
	if got := Prompt(&s); got != "Player 2 (7)> " {
		t.Fatalf("prompt = %q", got)
	}
}

func TestRunUntilClockExpires(t *testing.T) {
	s, out := run(t, model.Rules{ClockStart: 1}, "clk\nB3A4\n", false)

	if _, over := s.GameOver(); !over {
		t.Fatalf("game should be over")
	}
	for _, want := range []string{
		" |ABCD\n",
		"Game Over: clock expired\n",
		"Player 1: 0, Player 2: 0\n",
		"Player 1 wins!!!\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "> ") {
		t.Fatalf("prompt printed for non-interactive input:\n%s", out)
	}
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	s, out := run(t, model.DefaultRules(), "hello\n\nA4A5\nB3A4\n", false)

	if !strings.Contains(out, model.ErrUnparsable.Error()) {
		t.Fatalf("missing parse error:\n%s", out)
	}
	if !strings.Contains(out, model.ErrNoPieceAtSource.Error()) {
		t.Fatalf("missing rule error:\n%s", out)
	}
	if s.Turn != 1 {
		t.Fatalf("turn = %d, want 1 after one accepted move", s.Turn)
	}
	// input ran out before the end
	if strings.Contains(out, "Game Over") || strings.Contains(out, "wins") {
		t.Fatalf("unfinished game reported as over:\n%s", out)
	}
	if !strings.Contains(out, "Player 1: 0, Player 2: 0\n") {
		t.Fatalf("missing score line:\n%s", out)
	}
}

func TestRunInteractivePrompts(t *testing.T) {
	_, out := run(t, model.DefaultRules(), "clk\n", true)
	if !strings.Contains(out, "Player 1> ") || !strings.Contains(out, "Player 1 (8)> ") {
		t.Fatalf("prompts missing:\n%s", out)
	}
}

func TestSummaryCaptureWin(t *testing.T) {
	s := model.NewGameState(model.DefaultRules())
	s.Board = model.NewBoard()
	s.Board.Set(model.Position{Row: 3, Col: 0}, model.Pawn)
	s.Board.Set(model.Position{Row: 4, Col: 1}, model.Queen)

	if _, err := s.Play(model.Move{Src: model.Position{Row: 3, Col: 0}, Dst: model.Position{Row: 4, Col: 1}}); err != nil {
		t.Fatalf("capture: %v", err)
	}

	var out strings.Builder
	if err := Summary(&out, &s); err != nil {
		t.Fatal(err)
	}
	want := "Game Over: no pieces in zone 1\nPlayer 1: 3, Player 2: 0\nPlayer 1 wins!!!\n"
	if out.String() != want {
		t.Fatalf("summary = %q, want %q", out.String(), want)
	}
}
