package apperror

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNoAvailableMoves = errors.New("no available moves")
)
