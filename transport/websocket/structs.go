package websocket

import "encoding/json"

// Message is the wire envelope: an action name and its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RegisterUserPayload struct {
	Name string `json:"name"`
}

type CreateGamePayload struct {
	PlayerName string `json:"playerName"`
}

type JoinGamePayload struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

type MovePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MakeMovePayload struct {
	GameID string      `json:"gameId"`
	Move   MovePayload `json:"move"`
}

type ForfeitGamePayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type CancelGamePayload struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

type ReturnToLobbyPayload struct {
	PlayerName string `json:"playerName"`
	GameID     string `json:"gameId,omitempty"`
}
