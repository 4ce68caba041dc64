// Package console runs a hot-seat game over a line-oriented terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/martianchess-backend/internal/model"
	"go.uber.org/zap"
)

type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	logger      *zap.Logger
}

// New reads moves from in and writes the board to out. Prompts are only
// printed when interactive is set.
func New(in io.Reader, out io.Writer, interactive bool, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
		logger:      logger,
	}
}

// Prompt names the player on move and, once started, the moves left.
func Prompt(s *model.GameState) string {
	if s.Clock.Idle() {
		return fmt.Sprintf("%s> ", s.ActivePlayer())
	}
	return fmt.Sprintf("%s (%d)> ", s.ActivePlayer(), s.Clock)
}

// Play runs the loop until the game ends or input runs out. It reports
// whether the game reached an end.
func (c *Console) Play(s *model.GameState) (bool, error) {
	for {
		if _, over := s.GameOver(); over {
			return true, nil
		}
		if err := model.Render(c.out, &s.Board); err != nil {
			return false, err
		}
		if c.interactive {
			fmt.Fprint(c.out, Prompt(s))
		}

		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return false, fmt.Errorf("read move: %w", err)
			}
			c.logger.Debug("input closed", zap.Uint32("turn", s.Turn))
			fmt.Fprintln(c.out)
			return false, nil
		}
		line := c.in.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := c.step(s, line); err != nil {
			fmt.Fprintln(c.out, err)
		}
		fmt.Fprintln(c.out)
	}
}

func (c *Console) step(s *model.GameState, line string) error {
	m, err := model.ParseMove(line)
	if err != nil {
		return err
	}
	out, err := s.Play(m)
	if err != nil {
		c.logger.Debug("move rejected", zap.String("move", m.String()), zap.Error(err))
		return err
	}
	c.logger.Debug("move accepted",
		zap.String("move", m.String()),
		zap.String("kind", string(out.Kind)),
		zap.Uint8("points", out.Points),
	)
	return nil
}

// Summary writes the end of game report. The winner is only named when the
// game actually ended.
func Summary(w io.Writer, s *model.GameState) error {
	var b strings.Builder
	reason, over := s.GameOver()
	if over {
		fmt.Fprintf(&b, "Game Over: %s\n", reason)
	}
	fmt.Fprintf(&b, "%s: %d, %s: %d\n", model.PlayerOne, s.Score[model.PlayerOne], model.PlayerTwo, s.Score[model.PlayerTwo])
	if over {
		fmt.Fprintf(&b, "%s wins!!!\n", s.Winner())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Run plays a fresh game and prints the summary.
func (c *Console) Run(rules model.Rules) (model.GameState, error) {
	s := model.NewGameState(rules)
	if _, err := c.Play(&s); err != nil {
		return s, err
	}
	return s, Summary(c.out, &s)
}
