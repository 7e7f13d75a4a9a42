package entity

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Reasons a finished game ended with.
const (
	ReasonWin        = "win"
	ReasonDraw       = "draw"
	ReasonForfeit    = "forfeit"
	ReasonTimeout    = "timeout"
	ReasonDisconnect = "disconnect"
)

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Game is one match: the board, the ordered player list and the lifecycle
// state. It is a pure state machine; callers serialize access to it.
type Game struct {
	ID         string
	Board      *gomoku.Board
	Players    []*Player
	CurrentIdx int
	LastMove   *Move
	Winner     *Player
	Status     string
	EndReason  string
}

// NewGame creates a waiting session with the creator as black.
func NewGame(id, creatorName string) *Game {
	return &Game{
		ID:      id,
		Board:   gomoku.NewBoard(),
		Players: []*Player{NewPlayer(creatorName, ColorBlack)},
		Status:  StatusWaiting,
	}
}

// AddPlayer appends the joiner as white and activates the session.
// Black moves first.
func (that *Game) AddPlayer(name string) (*Player, error) {
	if len(that.Players) >= 2 {
		return nil, apperror.ErrGameIsFull
	}

	player := NewPlayer(name, ColorWhite)
	that.Players = append(that.Players, player)
	that.CurrentIdx = 0
	that.Status = StatusActive

	return player, nil
}

// PlayMove places a stone for the current player and advances the state
// machine: win, draw, or turn switch.
func (that *Game) PlayMove(row, col int) error {
	if that.Status == StatusWaiting {
		return apperror.ErrGameIsNotStarted
	}

	if that.Status == StatusFinished {
		return apperror.ErrGameFinished
	}

	current := that.CurrentPlayer()
	if !that.Board.PlacePiece(current.Stone(), row, col) {
		return apperror.ErrInvalidMove
	}

	that.LastMove = &Move{Row: row, Col: col}

	switch {
	case that.Board.CheckWin(row, col):
		that.Winner = current
		that.Status = StatusFinished
		that.EndReason = ReasonWin
	case that.Board.IsFull():
		that.Status = StatusFinished
		that.EndReason = ReasonDraw
	default:
		that.CurrentIdx = (that.CurrentIdx + 1) % len(that.Players)
	}

	return nil
}

// Forfeit ends the game crediting the opponent, when there is one.
func (that *Game) Forfeit(name string) {
	that.Winner = that.Opponent(name)
	that.Status = StatusFinished
	that.EndReason = ReasonForfeit
}

// Timeout ends the game crediting the player who was not on the clock.
func (that *Game) Timeout() {
	if len(that.Players) == 2 {
		that.Winner = that.Players[(that.CurrentIdx+1)%len(that.Players)]
	}

	that.Status = StatusFinished
	that.EndReason = ReasonTimeout
}

// Disconnect ends the game without a winner: the match simply ends.
func (that *Game) Disconnect() {
	that.Status = StatusFinished
	that.EndReason = ReasonDisconnect
}

func (that *Game) CurrentPlayer() *Player {
	return that.Players[that.CurrentIdx]
}

// Creator is the first registrant, always black.
func (that *Game) Creator() *Player {
	return that.Players[0]
}

// Opponent returns the other player, or nil while the game is waiting.
func (that *Game) Opponent(name string) *Player {
	for _, player := range that.Players {
		if player.Name != name {
			return player
		}
	}

	return nil
}

func (that *Game) HasPlayer(name string) bool {
	for _, player := range that.Players {
		if player.Name == name {
			return true
		}
	}

	return false
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// GameState is the wire projection of a session.
type GameState struct {
	ID            string    `json:"id"`
	Board         [][]int   `json:"board"`
	CurrentPlayer *Player   `json:"currentPlayer"`
	Players       []*Player `json:"players"`
	IsGameOver    bool      `json:"isGameOver"`
	Winner        *Player   `json:"winner"`
	LastMove      *Move     `json:"lastMove"`
}

// State snapshots the session for notifications. The board copy is
// independent of the live grid.
func (that *Game) State() *GameState {
	return &GameState{
		ID:            that.ID,
		Board:         that.Board.State(),
		CurrentPlayer: that.CurrentPlayer(),
		Players:       that.Players,
		IsGameOver:    that.IsFinished() || that.Winner != nil || that.Board.IsFull(),
		Winner:        that.Winner,
		LastMove:      that.LastMove,
	}
}
