package game

import "errors"

var (
	ErrInvalidColumn   = errors.New("invalid column")
	ErrColumnFull      = errors.New("column full")
	ErrGameOver        = errors.New("game is over")
	ErrOfferPending    = errors.New("wildcard offer pending")
	ErrNoOfferPending  = errors.New("no wildcard offer pending")
	ErrNoHistory       = errors.New("no moves to undo")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
