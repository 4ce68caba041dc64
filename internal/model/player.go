package model

import "fmt"

// Player is 0 for the player owning rows 1-4 and 1 for the other.
type Player int

const (
	PlayerOne Player = 0
	PlayerTwo Player = 1
)

// Number is the 1-based seat number shown to humans.
func (p Player) Number() int {
	return int(p) + 1
}

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	return fmt.Sprintf("Player %d", p.Number())
}

// Zone returns the half-open row range a player controls.
func (p Player) Zone() (fromRow, toRow int) {
	if p == PlayerOne {
		return 0, ZoneRows
	}
	return ZoneRows, Rows
}

// ZoneOf returns the zone index of a cell: 0 for rows 0-3, 1 otherwise.
func ZoneOf(p Position) int {
	if p.Row <= ZoneRows-1 {
		return 0
	}
	return 1
}
