package model

import (
	"fmt"
	"io"
	"strings"
)

const (
	Rows     = 8
	Cols     = 4
	NumCells = Rows * Cols

	// ZoneRows is the height of each player's half of the board.
	ZoneRows = Rows / 2
)

// ClockSentinel is never a board cell; a move from it starts the clock.
var ClockSentinel = Position{Row: 32, Col: 32}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

func (p Position) index() int {
	return p.Row*Cols + p.Col
}

// String returns the square in notation form, e.g. "A1".
func (p Position) String() string {
	if p == ClockSentinel {
		return "clk"
	}
	return fmt.Sprintf("%c%d", 'A'+p.Col, p.Row+1)
}

// Board is a dense row-major grid. The zero value is an empty board.
type Board struct {
	cells [NumCells]Piece
}

func NewBoard() Board {
	return Board{}
}

func NewInitialBoard() Board {
	b := NewBoard()
	for _, sq := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {6, 3}, {7, 2}, {7, 3}} {
		b.Set(Position{Row: sq[0], Col: sq[1]}, Queen)
	}
	for _, sq := range [][2]int{{0, 2}, {1, 1}, {2, 0}, {5, 3}, {6, 2}, {7, 1}} {
		b.Set(Position{Row: sq[0], Col: sq[1]}, Drone)
	}
	for _, sq := range [][2]int{{1, 2}, {2, 1}, {2, 2}, {5, 1}, {5, 2}, {6, 1}} {
		b.Set(Position{Row: sq[0], Col: sq[1]}, Pawn)
	}
	return b
}

// Get panics for positions off the board.
func (b *Board) Get(p Position) Piece {
	if !p.OnBoard() {
		panic(fmt.Sprintf("model: position %d,%d is off the board", p.Row, p.Col))
	}
	return b.cells[p.index()]
}

func (b *Board) Set(p Position, pc Piece) {
	if !p.OnBoard() {
		panic(fmt.Sprintf("model: position %d,%d is off the board", p.Row, p.Col))
	}
	b.cells[p.index()] = pc
}

// CountByRank tallies cells holding pc in rows [fromRow, toRow).
func (b *Board) CountByRank(pc Piece, fromRow, toRow int) int {
	n := 0
	for i := fromRow * Cols; i < toRow*Cols; i++ {
		if b.cells[i] == pc {
			n++
		}
	}
	return n
}

// Occupied counts non-empty cells in rows [fromRow, toRow).
func (b *Board) Occupied(fromRow, toRow int) int {
	n := 0
	for i := fromRow * Cols; i < toRow*Cols; i++ {
		if b.cells[i] != NoPiece {
			n++
		}
	}
	return n
}

func (b *Board) Pieces() int {
	return b.Occupied(0, Rows)
}

// Rows returns the board as one string of piece letters per row.
func (b *Board) Rows() []string {
	out := make([]string, 0, Rows)
	for r := 0; r < Rows; r++ {
		var sb strings.Builder
		for c := 0; c < Cols; c++ {
			sb.WriteByte(b.Get(Position{Row: r, Col: c}).Letter())
		}
		out = append(out, sb.String())
	}
	return out
}

// Render writes the ASCII grid with a separator on the zone boundary.
func Render(w io.Writer, b *Board) error {
	var sb strings.Builder
	sb.WriteString(" |ABCD\n")
	sb.WriteString("-+----\n")
	for r, row := range b.Rows() {
		fmt.Fprintf(&sb, "%d:%s\n", r+1, row)
		if r == ZoneRows-1 {
			sb.WriteString("-+----\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (b *Board) String() string {
	var sb strings.Builder
	_ = Render(&sb, b)
	return sb.String()
}
