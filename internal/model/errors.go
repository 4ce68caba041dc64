package model

import (
	"errors"
	"fmt"
)

var (
	ErrClockStarted    = errors.New("clock already started")
	ErrNoPieceAtSource = errors.New("no piece at source position")
	ErrSourceNotInZone = errors.New("source position is not in player zone of control")
	ErrNullMove        = errors.New("must move piece to location different from starting location")
	ErrUndoRejected    = errors.New("cannot use your move to undo previous move")
	ErrInvalidShape    = errors.New("invalid move shape")
	ErrPathBlocked     = errors.New("move blocked")
	ErrPromotionLimit  = errors.New("cannot have more than 6 of one piece on the board")
	ErrDuplicateInZone = errors.New("cannot promote if piece type already in your zone")
	ErrCannotPromote   = errors.New("cannot promote")
	ErrUnparsable      = errors.New("could not parse move")
	ErrGameOver        = errors.New("game is over")
	ErrOffBoard        = errors.New("position is off the board")
)

var (
	ErrPromoteQueen  = fmt.Errorf("%w: queen", ErrCannotPromote)
	ErrPromoteDrones = fmt.Errorf("%w: drone with a drone", ErrCannotPromote)
)

// IsRuleViolation reports whether err is a rejection the player caused, as
// opposed to a malformed request or a finished game.
func IsRuleViolation(err error) bool {
	for _, target := range []error{
		ErrClockStarted, ErrNoPieceAtSource, ErrSourceNotInZone, ErrNullMove,
		ErrUndoRejected, ErrInvalidShape, ErrPathBlocked, ErrPromotionLimit,
		ErrDuplicateInZone, ErrCannotPromote, ErrOffBoard,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
