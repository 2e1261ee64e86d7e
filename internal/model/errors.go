package model

import "errors"

var (
	ErrGameOver      = errors.New("game is over")
	ErrPaused        = errors.New("game is paused")
	ErrOutOfBounds   = errors.New("invalid move, out of bounds")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrKingInCheck   = errors.New("invalid move, king would be in check")
	ErrNothingToUndo = errors.New("no moves to undo")
	ErrInvalidColor  = errors.New("invalid color")

	ErrDuplicateConnection = errors.New("connection already exists")
	ErrNotConnected        = errors.New("client is not connected")
)
