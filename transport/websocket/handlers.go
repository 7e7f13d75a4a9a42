package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleRegisterUser(ctx context.Context, connID string, msg *Message) error {
	var payload RegisterUserPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.RegisterUser(ctx, connID, payload.Name)

	return nil
}

func (that *Server) handleCreateGame(_ context.Context, connID string, msg *Message) error {
	var payload CreateGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.CreateGame(connID, payload.PlayerName)

	return nil
}

func (that *Server) handleJoinGame(_ context.Context, connID string, msg *Message) error {
	var payload JoinGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.JoinGame(connID, payload.GameID, payload.PlayerName)

	return nil
}

func (that *Server) handleGetWaitingGames(_ context.Context, connID string, _ *Message) error {
	that.manager.WaitingGames(connID)

	return nil
}

func (that *Server) handleMakeMove(_ context.Context, connID string, msg *Message) error {
	var payload MakeMovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.MakeMove(connID, payload.GameID, payload.Move.Row, payload.Move.Col)

	return nil
}

func (that *Server) handleForfeitGame(_ context.Context, connID string, msg *Message) error {
	var payload ForfeitGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.ForfeitGame(connID, payload.GameID, payload.PlayerID)

	return nil
}

func (that *Server) handleCancelGame(_ context.Context, connID string, msg *Message) error {
	var payload CancelGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.CancelGame(connID, payload.GameID, payload.PlayerName)

	return nil
}

func (that *Server) handleReturnToLobby(_ context.Context, connID string, msg *Message) error {
	var payload ReturnToLobbyPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.ReturnToLobby(connID, payload.PlayerName, payload.GameID)

	return nil
}
