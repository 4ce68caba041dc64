package model

import (
	"regexp"
	"strings"
)

type Move struct {
	Src Position `json:"src"`
	Dst Position `json:"dst"`
}

// ClockMove is the pseudo-move that starts the countdown.
func ClockMove() Move {
	return Move{Src: ClockSentinel, Dst: ClockSentinel}
}

func (m Move) IsClock() bool {
	return m.Src == ClockSentinel
}

// Reverses reports whether m undoes prev.
func (m Move) Reverses(prev Move) bool {
	return m.Src == prev.Dst && m.Dst == prev.Src
}

func (m Move) String() string {
	if m.IsClock() {
		return "clk"
	}
	return m.Src.String() + m.Dst.String()
}

var (
	clockPattern = regexp.MustCompile(`^\s*clk\s*$`)
	movePattern  = regexp.MustCompile(`([a-dA-D])([1-8])([a-dA-D])([1-8])`)
)

// ParseMove reads "A1B2" style squares in either case, or the lowercase token "clk".
func ParseMove(s string) (Move, error) {
	if clockPattern.MatchString(s) {
		return ClockMove(), nil
	}
	caps := movePattern.FindStringSubmatch(s)
	if caps == nil {
		return Move{}, ErrUnparsable
	}
	return Move{
		Src: parseSquare(caps[1], caps[2]),
		Dst: parseSquare(caps[3], caps[4]),
	}, nil
}

func parseSquare(col, row string) Position {
	return Position{
		Row: int(row[0] - '1'),
		Col: int(strings.ToLower(col)[0] - 'a'),
	}
}
