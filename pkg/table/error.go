package table

import "errors"

// UserError is an error that is safe to return to the player
// A UserError never changes the state of the table
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// rejected actions
const (
	ErrFoldNotAllowed   = UserError("folding is not allowed")
	ErrCheckNotAllowed  = UserError("checking is not allowed")
	ErrCallNotAllowed   = UserError("calling is not allowed")
	ErrAllInNotAllowed  = UserError("going all-in is not allowed")
	ErrRaiseNotAllowed  = UserError("raising is not allowed")
	ErrBetTooLarge      = UserError("bet is too large, go all-in instead")
	ErrBetTooSmall      = UserError("bet is too small")
	ErrNotYourTurn      = UserError("it is not your turn")
	ErrGameStarted      = UserError("the game has already started")
	ErrGameNotStarted   = UserError("the game has not started yet")
	ErrAlreadySeated    = UserError("you are already seated at the table")
	ErrNotSeated        = UserError("you are not seated at the table")
	ErrTableFull        = UserError("the table is full")
	ErrNotEnoughPlayers = UserError("at least two players are required")
	ErrGameOver         = UserError("the game is over")
)

// ErrNoEligibleSeat happens when every seat has folded or lost
// This can only happen if the table was driven into an invalid state
var ErrNoEligibleSeat = errors.New("no eligible seat")

// ErrSeatNotFound happens when a seat index or identity does not exist at the table
var ErrSeatNotFound = errors.New("seat not found")

// ErrSnapshotNotFound is returned by a Store when the table has not been persisted
var ErrSnapshotNotFound = errors.New("table snapshot not found")
