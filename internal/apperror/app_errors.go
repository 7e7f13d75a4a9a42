package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameIsFull        = errors.New("game is already full")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameAlreadyExists = errors.New("you already have an open game")
	ErrInvalidMove       = errors.New("invalid move")
	ErrOwnGame           = errors.New("cannot join your own game")
	ErrNotCreator        = errors.New("only the creator can cancel the game")
	ErrGameStarted       = errors.New("game has already started")
)
