package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/metrics"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/registry"
	"github.com/rocketscienceinc/gomoku-backend/internal/timer"
)

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	DeleteByID(ctx context.Context, id string) error
}

// session wraps a game with its critical section. Every operation that
// touches the game, including its notifications, runs under mu so a move and
// the session's own timeout can never both apply.
type session struct {
	mu   sync.Mutex
	game *entity.Game
}

// GameManager is the session coordinator: it routes inbound intents to the
// sessions and registries, and emits the outbound notifications.
type GameManager struct {
	logger   *slog.Logger
	notifier Notifier
	userRepo userRepo

	turnTimeout time.Duration
	scheduler   *timer.Scheduler

	mu          sync.RWMutex
	sessions    map[string]*session
	lobby       *registry.Lobby
	connections *registry.Connections
}

func NewGameManager(logger *slog.Logger, notifier Notifier, userRepo userRepo, turnTimeout time.Duration) *GameManager {
	manager := &GameManager{
		logger:   logger,
		notifier: notifier,
		userRepo: userRepo,

		turnTimeout: turnTimeout,

		sessions:    make(map[string]*session),
		lobby:       registry.NewLobby(),
		connections: registry.NewConnections(),
	}

	manager.scheduler = timer.NewScheduler(turnTimeout, manager.handleTimeout)

	return manager
}

// RegisterUser binds the connection to a display name and announces the
// refreshed online list to everyone.
func (that *GameManager) RegisterUser(ctx context.Context, connID, name string) {
	log := that.logger.With("method", "RegisterUser")

	that.connections.Register(connID, name)

	if err := that.userRepo.Save(ctx, &entity.User{ID: connID, Name: name}); err != nil {
		log.Error("failed to save user record", "error", err)
	}

	that.notifier.ToConnection(connID, EventUserRegistered, UserRegisteredPayload{ID: connID, Name: name})
	that.broadcastOnlineUsers()

	log.Info("user registered", "name", name)
}

// CreateGame opens a new waiting session with the player as black.
func (that *GameManager) CreateGame(connID, playerName string) {
	log := that.logger.With("method", "CreateGame", "player", playerName)

	that.mu.Lock()

	if _, ok := that.lobby.GameByCreator(playerName); ok {
		that.mu.Unlock()
		that.notifyError(connID, apperror.ErrGameAlreadyExists)
		return
	}

	gameID := pkg.NewGameID()
	game := entity.NewGame(gameID, playerName)
	that.sessions[gameID] = &session{game: game}

	if err := that.lobby.Publish(gameID, playerName); err != nil {
		delete(that.sessions, gameID)
		that.mu.Unlock()
		that.notifyError(connID, err)
		return
	}

	metrics.ActiveSessions.Set(float64(len(that.sessions)))
	that.mu.Unlock()

	that.notifier.ToConnection(connID, EventGameCreated, GameCreatedPayload{
		GameID:  gameID,
		Player:  game.Creator(),
		Message: "Game created. Waiting for an opponent.",
	})
	that.broadcastWaitingGames()

	log.Info("game created", "gameID", gameID)
}

// JoinGame adds the player as white, withdraws the lobby entry and starts
// the first turn timer.
func (that *GameManager) JoinGame(connID, gameID, playerName string) {
	log := that.logger.With("method", "JoinGame", "gameID", gameID, "player", playerName)

	sess := that.session(gameID)
	if sess == nil {
		that.notifyError(connID, apperror.ErrGameNotFound)
		return
	}

	sess.mu.Lock()
	game := sess.game

	if !game.IsWaiting() {
		sess.mu.Unlock()
		that.notifyError(connID, apperror.ErrGameIsFull)
		return
	}

	if game.Creator().Name == playerName {
		sess.mu.Unlock()
		that.notifyError(connID, apperror.ErrOwnGame)
		return
	}

	player, err := game.AddPlayer(playerName)
	if err != nil {
		sess.mu.Unlock()
		that.notifyError(connID, err)
		return
	}

	// The entry leaves the lobby the instant the session leaves Waiting, so
	// a second joiner racing on the same session observes it already taken.
	that.lobby.Withdraw(gameID)
	that.scheduler.Arm(gameID)

	that.notifier.ToConnection(connID, EventGameJoined, GameJoinedPayload{
		GameID:  gameID,
		Player:  player,
		Message: "Joined the game.",
	})

	state := game.State()
	that.broadcastToGame(game, EventGameStarted, state)
	that.broadcastToGame(game, EventTimerUpdate, TimerUpdatePayload{
		TimeRemaining: int(that.turnTimeout.Seconds()),
		PlayerName:    game.CurrentPlayer().Name,
	})
	sess.mu.Unlock()

	that.broadcastWaitingGames()

	log.Info("player joined game")
}

// WaitingGames answers the requester with the current lobby snapshot.
func (that *GameManager) WaitingGames(connID string) {
	that.notifier.ToConnection(connID, EventWaitingGames, WaitingGamesPayload{Games: that.lobby.List()})
}

// MakeMove applies a move for the session's current player and advances or
// finishes the match.
func (that *GameManager) MakeMove(connID, gameID string, row, col int) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID)

	sess := that.session(gameID)
	if sess == nil {
		that.notifyError(connID, apperror.ErrGameNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	game := sess.game

	if game.IsFinished() {
		// Raced with a timeout, forfeit or disconnect: silent no-op.
		return
	}

	err := game.PlayMove(row, col)

	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		that.notifier.ToConnection(connID, EventInvalidMove, InvalidMovePayload{Message: err.Error()})
		return
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		that.notifyError(connID, err)
		return
	case err != nil:
		log.Error("failed to play move", "error", err)
		that.notifyError(connID, err)
		return
	}

	metrics.MovesTotal.Inc()
	state := game.State()
	that.broadcastToGame(game, EventGameUpdated, state)

	switch game.EndReason {
	case entity.ReasonWin:
		that.scheduler.Cancel(gameID)
		that.broadcastToGame(game, EventGameOver, GameOverPayload{
			Winner:    game.Winner.Name,
			Reason:    entity.ReasonWin,
			GameState: state,
		})
		that.finishSession(gameID, entity.ReasonWin)
		that.broadcastWaitingGames()
	case entity.ReasonDraw:
		that.scheduler.Cancel(gameID)
		that.broadcastToGame(game, EventGameOver, GameOverPayload{
			Reason:    entity.ReasonDraw,
			Message:   "The board is full. The game is a draw.",
			GameState: state,
		})
		that.finishSession(gameID, entity.ReasonDraw)
		that.broadcastWaitingGames()
	default:
		that.scheduler.Arm(gameID)
		that.broadcastToGame(game, EventTimerUpdate, TimerUpdatePayload{
			TimeRemaining: int(that.turnTimeout.Seconds()),
			PlayerName:    game.CurrentPlayer().Name,
		})
	}
}

// ForfeitGame concedes the match in favor of the opponent. A forfeit on a
// session that is already gone is a silent no-op.
func (that *GameManager) ForfeitGame(connID, gameID, playerName string) {
	log := that.logger.With("method", "ForfeitGame", "gameID", gameID, "player", playerName)

	sess := that.session(gameID)
	if sess == nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	game := sess.game

	if game.IsFinished() {
		return
	}

	that.scheduler.Cancel(gameID)
	game.Forfeit(playerName)

	payload := PlayerForfeitPayload{
		Message:   fmt.Sprintf("%s forfeited the game.", playerName),
		GameState: game.State(),
	}
	if game.Winner != nil {
		payload.Winner = game.Winner.Name
		payload.Message = fmt.Sprintf("%s forfeited the game. %s wins!", playerName, game.Winner.Name)
	}

	that.broadcastToGame(game, EventPlayerForfeit, payload)
	that.finishSession(gameID, entity.ReasonForfeit)
	that.broadcastWaitingGames()

	log.Info("player forfeited")
}

// CancelGame removes a waiting session. Only the creator may cancel, and
// only before a second player has joined.
func (that *GameManager) CancelGame(connID, gameID, playerName string) {
	log := that.logger.With("method", "CancelGame", "gameID", gameID, "player", playerName)

	sess := that.session(gameID)
	if sess == nil {
		that.notifyError(connID, apperror.ErrGameNotFound)
		return
	}

	sess.mu.Lock()
	game := sess.game

	if game.Creator().Name != playerName {
		sess.mu.Unlock()
		that.notifyError(connID, apperror.ErrNotCreator)
		return
	}

	if !game.IsWaiting() {
		sess.mu.Unlock()
		that.notifyError(connID, apperror.ErrGameStarted)
		return
	}

	that.notifier.ToConnection(connID, EventGameCancelled, GameCancelledPayload{Message: "Game cancelled."})
	that.removeSession(gameID)
	sess.mu.Unlock()

	that.broadcastWaitingGames()

	log.Info("game cancelled")
}

// ReturnToLobby acknowledges the request and hands the player a fresh lobby
// snapshot. Session teardown already happened when the game ended.
func (that *GameManager) ReturnToLobby(connID, playerName, gameID string) {
	that.notifier.ToConnection(connID, EventReturnedToLobby, struct{}{})
	that.WaitingGames(connID)
}

// Disconnect tears down everything the connection's user was involved in: a
// waiting session they created vanishes silently, an active match ends with
// a notification to the remaining player.
func (that *GameManager) Disconnect(ctx context.Context, connID string) {
	log := that.logger.With("method", "Disconnect", "connID", connID)

	name, registered := that.connections.Unregister(connID)

	if err := that.userRepo.DeleteByID(ctx, connID); err != nil {
		log.Error("failed to delete user record", "error", err)
	}

	if !registered {
		return
	}

	for gameID, sess := range that.sessionsSnapshot() {
		sess.mu.Lock()
		game := sess.game

		if game.IsFinished() || !game.HasPlayer(name) {
			sess.mu.Unlock()
			continue
		}

		that.scheduler.Cancel(gameID)

		if game.IsWaiting() {
			// The match never started: drop it without an outcome.
			that.removeSession(gameID)
			sess.mu.Unlock()
			continue
		}

		game.Disconnect()
		that.broadcastToGame(game, EventPlayerDisconnected, PlayerDisconnectedPayload{
			Message:   fmt.Sprintf("%s disconnected. The game has ended.", name),
			GameState: game.State(),
		})
		that.finishSession(gameID, entity.ReasonDisconnect)
		sess.mu.Unlock()
	}

	that.broadcastOnlineUsers()
	that.broadcastWaitingGames()

	log.Info("user disconnected", "name", name)
}

// handleTimeout resolves a fired turn deadline. The session lock and the
// generation check make a timeout racing a just-accepted move a no-op.
func (that *GameManager) handleTimeout(gameID string, generation uint64) {
	log := that.logger.With("method", "handleTimeout", "gameID", gameID)

	sess := that.session(gameID)
	if sess == nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	game := sess.game

	if !game.IsActive() {
		return
	}

	// A move accepted between the firing and this lock acquisition has
	// already armed a newer generation; this firing is stale.
	if current, ok := that.scheduler.Generation(gameID); ok && current != generation {
		return
	}

	expired := game.CurrentPlayer()
	game.Timeout()

	payload := GameOverPayload{
		Reason:    entity.ReasonTimeout,
		GameState: game.State(),
	}
	if game.Winner != nil {
		payload.Winner = game.Winner.Name
		payload.Message = fmt.Sprintf("%s ran out of time. %s wins!", expired.Name, game.Winner.Name)
	}

	that.broadcastToGame(game, EventGameOver, payload)
	that.finishSession(gameID, entity.ReasonTimeout)
	that.broadcastWaitingGames()

	log.Info("game timed out", "player", expired.Name)
}

// session looks up the arena entry without holding the global lock any
// longer than the map read.
func (that *GameManager) session(gameID string) *session {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.sessions[gameID]
}

func (that *GameManager) sessionsSnapshot() map[string]*session {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot := make(map[string]*session, len(that.sessions))
	for id, sess := range that.sessions {
		snapshot[id] = sess
	}

	return snapshot
}

// removeSession drops the session from the arena and the lobby.
func (that *GameManager) removeSession(gameID string) {
	that.mu.Lock()
	delete(that.sessions, gameID)
	metrics.ActiveSessions.Set(float64(len(that.sessions)))
	that.mu.Unlock()

	that.lobby.Withdraw(gameID)
}

func (that *GameManager) finishSession(gameID, reason string) {
	metrics.GamesFinished.WithLabelValues(reason).Inc()
	that.removeSession(gameID)
}

func (that *GameManager) broadcastToGame(game *entity.Game, event string, payload any) {
	for _, player := range game.Players {
		connID, ok := that.connections.Lookup(player.Name)
		if !ok {
			continue
		}

		that.notifier.ToConnection(connID, event, payload)
	}
}

func (that *GameManager) broadcastWaitingGames() {
	games := that.lobby.List()
	metrics.WaitingSessions.Set(float64(len(games)))
	that.notifier.ToAll(EventWaitingGames, WaitingGamesPayload{Games: games})
}

func (that *GameManager) broadcastOnlineUsers() {
	users := that.connections.Users()
	metrics.ConnectedUsers.Set(float64(len(users)))
	that.notifier.ToAll(EventOnlineUsers, OnlineUsersPayload{Users: users})
}

func (that *GameManager) notifyError(connID string, err error) {
	that.notifier.ToConnection(connID, EventError, ErrorPayload{Message: err.Error()})
}
