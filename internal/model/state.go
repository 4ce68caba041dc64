package model

import "fmt"

// GameState is everything the rules need between moves. Methods mutate it in
// place; a rejected move leaves it untouched.
type GameState struct {
	Board       Board
	Turn        uint32
	Score       [2]uint8
	LastMove    Move
	HasLastMove bool
	Clock       MoveClock
	Rules       Rules
}

type OutcomeKind string

const (
	OutcomeClockStarted OutcomeKind = "clock"
	OutcomeMoved        OutcomeKind = "move"
	OutcomeCaptured     OutcomeKind = "capture"
	OutcomePromoted     OutcomeKind = "promotion"
)

// Outcome describes what an accepted move did.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Move     Move        `json:"move"`
	Player   Player      `json:"player"`
	Captured Piece       `json:"captured,omitempty"`
	Points   uint8       `json:"points,omitempty"`
	Result   Piece       `json:"result,omitempty"`
}

type Reason string

const (
	ReasonZoneOneEmpty Reason = "no pieces in zone 1"
	ReasonZoneTwoEmpty Reason = "no pieces in zone 2"
	ReasonClockExpired Reason = "clock expired"
)

func NewGameState(rules Rules) GameState {
	return GameState{
		Board: NewInitialBoard(),
		Clock: ClockIdle,
		Rules: rules,
	}
}

// ActivePlayer is selected by turn parity.
func (s *GameState) ActivePlayer() Player {
	return Player(s.Turn % 2)
}

// SubmitMove validates m against the rules in a fixed order and applies it.
func (s *GameState) SubmitMove(m Move) (Outcome, error) {
	mover := s.ActivePlayer()

	if m.IsClock() {
		if err := s.Clock.Start(s.Rules.clockStart()); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeClockStarted, Move: m, Player: mover}, nil
	}

	if !m.Src.OnBoard() || !m.Dst.OnBoard() {
		return Outcome{}, fmt.Errorf("%w: %d,%d -> %d,%d", ErrOffBoard, m.Src.Row, m.Src.Col, m.Dst.Row, m.Dst.Col)
	}

	src := s.Board.Get(m.Src)
	if src == NoPiece {
		return Outcome{}, fmt.Errorf("%w %s", ErrNoPieceAtSource, m.Src)
	}
	if ZoneOf(m.Src) != int(mover) {
		return Outcome{}, fmt.Errorf("%w: %s is not in %s zone", ErrSourceNotInZone, m.Src, mover)
	}
	if m.Src == m.Dst {
		return Outcome{}, ErrNullMove
	}
	if s.HasLastMove && m.Reverses(s.LastMove) {
		return Outcome{}, ErrUndoRejected
	}
	if err := ValidateShape(src, m.Src, m.Dst); err != nil {
		return Outcome{}, err
	}
	if err := s.checkPath(m); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Kind: OutcomeMoved, Move: m, Player: mover, Result: src}
	dst := s.Board.Get(m.Dst)

	if ZoneOf(m.Dst) != int(mover) {
		if dst != NoPiece {
			out.Kind = OutcomeCaptured
			out.Captured = dst
			out.Points = dst.Points()
			s.Score[mover] += out.Points
			s.Clock.Renew(s.Rules.clockStart())
		}
		s.Board.Set(m.Dst, src)
	} else if dst == NoPiece {
		s.Board.Set(m.Dst, src)
	} else {
		promoted, err := s.promotion(mover, src, dst)
		if err != nil {
			return Outcome{}, err
		}
		out.Kind = OutcomePromoted
		out.Result = promoted
		s.Board.Set(m.Dst, promoted)
	}

	s.Board.Set(m.Src, NoPiece)
	s.Turn++
	s.LastMove = m
	s.HasLastMove = true
	return out, nil
}

// checkPath walks the cells strictly between source and destination.
func (s *GameState) checkPath(m Move) error {
	dr := sign(m.Dst.Row - m.Src.Row)
	dc := sign(m.Dst.Col - m.Src.Col)

	for p := (Position{Row: m.Src.Row + dr, Col: m.Src.Col + dc}); p != m.Dst; p = (Position{Row: p.Row + dr, Col: p.Col + dc}) {
		if s.Board.Get(p) != NoPiece {
			return fmt.Errorf("%w by %s", ErrPathBlocked, p)
		}
	}
	return nil
}

// promotion resolves a merge inside the mover's zone. The limits are counted
// before the new piece is placed.
func (s *GameState) promotion(mover Player, src, dst Piece) (Piece, error) {
	promoted, err := Promote(src, dst)
	if err != nil {
		return NoPiece, err
	}
	if s.Board.CountByRank(promoted, 0, Rows) >= 6 {
		return NoPiece, fmt.Errorf("%w (%s)", ErrPromotionLimit, promoted)
	}
	from, to := mover.Zone()
	if s.Board.CountByRank(promoted, from, to) >= 1 {
		return NoPiece, fmt.Errorf("%w (%s)", ErrDuplicateInZone, promoted)
	}
	return promoted, nil
}

// AfterMove ticks a running clock once an accepted board move is done.
func (s *GameState) AfterMove() {
	s.Clock.Tick()
}

// Play is SubmitMove followed by AfterMove for board moves.
func (s *GameState) Play(m Move) (Outcome, error) {
	out, err := s.SubmitMove(m)
	if err != nil {
		return out, err
	}
	if out.Kind != OutcomeClockStarted {
		s.AfterMove()
	}
	return out, nil
}

// GameOver reports whether the game has ended and why.
func (s *GameState) GameOver() (Reason, bool) {
	if s.Board.Occupied(PlayerOne.Zone()) == 0 {
		return ReasonZoneOneEmpty, true
	}
	if s.Board.Occupied(PlayerTwo.Zone()) == 0 {
		return ReasonZoneTwoEmpty, true
	}
	if s.Clock.Expired() {
		return ReasonClockExpired, true
	}
	return "", false
}

// Winner compares scores. A tie goes to the player who is not on move.
func (s *GameState) Winner() Player {
	switch {
	case s.Score[PlayerOne] > s.Score[PlayerTwo]:
		return PlayerOne
	case s.Score[PlayerOne] < s.Score[PlayerTwo]:
		return PlayerTwo
	}
	return s.ActivePlayer().Opponent()
}
