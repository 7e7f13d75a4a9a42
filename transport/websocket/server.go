package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	maxMessageSize = 4096
	sendBuffer     = 64
)

// gameManager is the coordinator surface the transport routes intents to.
type gameManager interface {
	RegisterUser(ctx context.Context, connID, name string)
	CreateGame(connID, playerName string)
	JoinGame(connID, gameID, playerName string)
	WaitingGames(connID string)
	MakeMove(connID, gameID string, row, col int)
	ForfeitGame(connID, gameID, playerName string)
	CancelGame(connID, gameID, playerName string)
	ReturnToLobby(connID, playerName, gameID string)
	Disconnect(ctx context.Context, connID string)
}

// client is one upgraded connection with its outbound queue.
type client struct {
	connID string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
}

type Server struct {
	logger  *slog.Logger
	manager gameManager

	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, connID string, message *Message) error

	mu      sync.RWMutex
	clients map[string]*client
}

func New(logger *slog.Logger) *Server {
	server := &Server{
		logger: logger,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, string, *Message) error),
		clients:  make(map[string]*client),
	}

	server.handlers["registerUser"] = server.handleRegisterUser
	server.handlers["createGame"] = server.handleCreateGame
	server.handlers["joinGame"] = server.handleJoinGame
	server.handlers["getWaitingGames"] = server.handleGetWaitingGames
	server.handlers["makeMove"] = server.handleMakeMove
	server.handlers["forfeitGame"] = server.handleForfeitGame
	server.handlers["cancelGame"] = server.handleCancelGame
	server.handlers["returnToLobby"] = server.handleReturnToLobby

	return server
}

// SetManager wires the coordinator in. Must be called before Start; the
// coordinator needs the server as its notifier, hence the two-step setup.
func (that *Server) SetManager(manager gameManager) {
	that.manager = manager
}

// Start - starts the WebSocket server and blocks until the context ends.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 90 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the request and pumps messages until the
// connection drops. The drop is reported to the coordinator exactly once.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	connected := &client{
		connID: pkg.NewConnectionID(),
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}

	that.mu.Lock()
	that.clients[connected.connID] = connected
	that.mu.Unlock()

	log = log.With("connID", connected.connID)
	log.Info("connection established")

	go that.writePump(connected)
	that.readPump(ctx, connected)

	that.mu.Lock()
	delete(that.clients, connected.connID)
	that.mu.Unlock()

	// The send channel stays open so late notifications cannot panic; the
	// writer drains off the done signal instead.
	close(connected.done)
	that.manager.Disconnect(ctx, connected.connID)

	log.Info("connection closed")
}

func (that *Server) readPump(ctx context.Context, connected *client) {
	log := that.logger.With("method", "readPump", "connID", connected.connID)

	connected.conn.SetReadLimit(maxMessageSize)
	_ = connected.conn.SetReadDeadline(time.Now().Add(pongWait))
	connected.conn.SetPongHandler(func(string) error {
		return connected.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := connected.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, connected.connID, &message); err != nil {
			log.Error("failed to process message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) writePump(connected *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = connected.conn.Close()
	}()

	for {
		select {
		case <-connected.done:
			_ = connected.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case raw := <-connected.send:
			_ = connected.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := connected.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = connected.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := connected.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ToConnection implements the coordinator's notifier for one connection.
func (that *Server) ToConnection(connID, event string, payload any) {
	that.mu.RLock()
	connected, ok := that.clients[connID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	that.deliver(connected, event, payload)
}

// ToAll implements the coordinator's notifier for every connection.
func (that *Server) ToAll(event string, payload any) {
	that.mu.RLock()
	targets := make([]*client, 0, len(that.clients))
	for _, connected := range that.clients {
		targets = append(targets, connected)
	}
	that.mu.RUnlock()

	for _, connected := range targets {
		that.deliver(connected, event, payload)
	}
}

func (that *Server) deliver(connected *client, event string, payload any) {
	log := that.logger.With("method", "deliver", "connID", connected.connID)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "event", event, "error", err)
		return
	}

	raw, err := json.Marshal(Message{Action: event, Payload: body})
	if err != nil {
		log.Error("failed to marshal message", "event", event, "error", err)
		return
	}

	// A slow consumer loses messages rather than stalling the coordinator.
	select {
	case connected.send <- raw:
	default:
		log.Warn("send buffer full, dropping message", "event", event)
	}
}
