package model

import "fmt"

// Piece is the occupant of a cell. Its value doubles as its point value.
type Piece int8

const (
	NoPiece Piece = iota
	Pawn
	Drone
	Queen
)

func (p Piece) Points() uint8 {
	switch p {
	case Pawn, Drone, Queen:
		return uint8(p)
	}
	return 0
}

func (p Piece) Letter() byte {
	switch p {
	case Pawn:
		return 'P'
	case Drone:
		return 'D'
	case Queen:
		return 'Q'
	}
	return '.'
}

func (p Piece) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Drone:
		return "drone"
	case Queen:
		return "queen"
	}
	return "none"
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ValidateShape checks the geometry of a move for the given piece. It does not
// look at the board.
func ValidateShape(p Piece, src, dst Position) error {
	dr := abs(dst.Row - src.Row)
	dc := abs(dst.Col - src.Col)

	switch p {
	case Pawn:
		if dr != 1 || dc != 1 {
			return fmt.Errorf("%w: pawns must move exactly one square diagonally", ErrInvalidShape)
		}
	case Drone:
		orthogonal := (dr == 0) != (dc == 0)
		if !orthogonal || dr+dc > 2 {
			return fmt.Errorf("%w: drones may move only 1 or 2 squares orthogonally", ErrInvalidShape)
		}
	case Queen:
		if !(dr == 0 || dc == 0 || dr == dc) {
			return fmt.Errorf("%w: queens may only move along a straight line", ErrInvalidShape)
		}
	default:
		return fmt.Errorf("%w: no piece to move", ErrInvalidShape)
	}
	return nil
}

type pairing [2]Piece

func pairOf(a, b Piece) pairing {
	if a > b {
		a, b = b, a
	}
	return pairing{a, b}
}

var promotions = map[pairing]Piece{
	{Pawn, Pawn}:  Drone,
	{Pawn, Drone}: Queen,
}

// Promote merges two pieces into the next rank. The order of the operands does
// not matter.
func Promote(a, b Piece) (Piece, error) {
	if a == Queen || b == Queen {
		return NoPiece, ErrPromoteQueen
	}
	if a == Drone && b == Drone {
		return NoPiece, ErrPromoteDrones
	}
	if res, ok := promotions[pairOf(a, b)]; ok {
		return res, nil
	}
	return NoPiece, fmt.Errorf("%w: %s with %s", ErrCannotPromote, a, b)
}
