package usecase

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/registry"
)

// Outbound event names.
const (
	EventUserRegistered     = "userRegistered"
	EventOnlineUsers        = "onlineUsers"
	EventGameCreated        = "gameCreated"
	EventWaitingGames       = "waitingGames"
	EventGameJoined         = "gameJoined"
	EventGameStarted        = "gameStarted"
	EventTimerUpdate        = "timerUpdate"
	EventGameUpdated        = "gameUpdated"
	EventGameOver           = "gameOver"
	EventInvalidMove        = "invalidMove"
	EventPlayerForfeit      = "playerForfeit"
	EventGameCancelled      = "gameCancelled"
	EventReturnedToLobby    = "returnedToLobby"
	EventPlayerDisconnected = "playerDisconnected"
	EventError              = "error"
)

// Notifier delivers outbound events to connections. The transport implements
// it; delivery failures are the transport's concern.
type Notifier interface {
	ToConnection(connID, event string, payload any)
	ToAll(event string, payload any)
}

type UserRegisteredPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OnlineUsersPayload struct {
	Users []entity.User `json:"users"`
}

type GameCreatedPayload struct {
	GameID  string         `json:"gameId"`
	Player  *entity.Player `json:"player"`
	Message string         `json:"message"`
}

type GameJoinedPayload struct {
	GameID  string         `json:"gameId"`
	Player  *entity.Player `json:"player"`
	Message string         `json:"message"`
}

type WaitingGamesPayload struct {
	Games []registry.Entry `json:"games"`
}

type TimerUpdatePayload struct {
	TimeRemaining int    `json:"timeRemaining"`
	PlayerName    string `json:"playerName"`
}

type GameOverPayload struct {
	Winner    string            `json:"winner"`
	Reason    string            `json:"reason,omitempty"`
	Message   string            `json:"message,omitempty"`
	GameState *entity.GameState `json:"gameState"`
}

type InvalidMovePayload struct {
	Message string `json:"message"`
}

type PlayerForfeitPayload struct {
	Message   string            `json:"message"`
	Winner    string            `json:"winner,omitempty"`
	GameState *entity.GameState `json:"gameState"`
}

type GameCancelledPayload struct {
	Message string `json:"message"`
}

type PlayerDisconnectedPayload struct {
	Message   string            `json:"message"`
	GameState *entity.GameState `json:"gameState"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
