package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4096
)

type sessionUseCase interface {
	Authenticate(ctx context.Context, token string) (*entity.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*entity.Player, error)
}

type gameUseCase interface {
	JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*service.TurnResult, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)

	JoinQueue(ctx context.Context, playerID string) (*service.QueueTicket, error)
	LeaveQueue(ctx context.Context, playerID string) error
	QueueSnapshot(ctx context.Context) ([]service.QueueEntry, error)
}

type handlerFunc func(ctx context.Context, playerID string, req Request) error

type Server struct {
	logger *slog.Logger

	sessions sessionUseCase
	games    gameUseCase

	conns        *ConnectionManager
	upgrader     websocket.Upgrader
	pollInterval time.Duration

	handlers map[string]handlerFunc
}

// New builds the socket server. pollInterval paces the queue position pushes.
func New(logger *slog.Logger, sessions sessionUseCase, games gameUseCase, pollInterval time.Duration) *Server {
	server := &Server{
		logger:       logger.With("component", "websocket"),
		sessions:     sessions,
		games:        games,
		conns:        NewConnectionManager(),
		pollInterval: pollInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionQueueJoin] = server.handleQueueJoin
	server.handlers[actionQueueLeave] = server.handleQueueLeave
	server.handlers[actionGameJoin] = server.handleGameJoin
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

// Start - starts WebSocket server and stops it when ctx ends.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go that.pushQueueLoop(ctx)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown", "error", err)
		}

		that.conns.CloseAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP authenticates ?token= and upgrades the connection.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")
	ctx := r.Context()

	player, err := that.sessions.Authenticate(ctx, r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log = log.With("playerID", player.ID)
	log.Info("WebSocket connection established")

	that.conns.Add(player.ID, conn)
	that.pushOnlineCount()
	that.resume(ctx, player)

	that.readMessages(ctx, player.ID, conn)

	if that.conns.RemoveIfMatching(player.ID, conn) {
		that.handleDisconnect(ctx, player.ID)
	}

	log.Info("WebSocket connection closed")
}

// readMessages - processes messages from the client until the socket closes.
func (that *Server) readMessages(ctx context.Context, playerID string, conn *websocket.Conn) {
	log := that.logger.With("method", "readMessages", "playerID", playerID)

	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection lost", "error", err)
			}
			return
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			that.sendError(playerID, "", "invalid message")
			continue
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			that.sendError(playerID, msg.Action, "unknown action")
			continue
		}

		var req Request
		if len(msg.Payload) > 0 {
			if err = json.Unmarshal(msg.Payload, &req); err != nil {
				that.sendError(playerID, msg.Action, "invalid payload")
				continue
			}
		}

		if err = handler(ctx, playerID, req); err != nil {
			log.Info("action rejected", "action", msg.Action, "error", err)
			that.sendError(playerID, msg.Action, errorMessage(err))
		}
	}
}

func (that *Server) send(playerID, action string, payload Payload) {
	if err := that.conns.Send(playerID, newMessage(action, payload)); err != nil {
		that.logger.Warn("failed to send", "playerID", playerID, "action", action, "error", err)
	}
}

func (that *Server) sendError(playerID, action, message string) {
	that.send(playerID, actionError, Payload{Action: action, Error: message})
}

// notifyPlayers pushes the same payload to every human seat of the game.
func (that *Server) notifyPlayers(game *entity.Game, action string, payload Payload) {
	for _, player := range game.HumanPlayers() {
		that.send(player.ID, action, payload)
	}
}

func (that *Server) pushOnlineCount() {
	that.conns.Broadcast(newMessage(actionOnlineCount, Payload{Online: that.conns.Count()}))
}

func (that *Server) pushQueue(ctx context.Context) {
	entries, err := that.games.QueueSnapshot(ctx)
	if err != nil {
		that.logger.Error("failed to read queue", "error", err)
		return
	}

	for _, entry := range entries {
		that.send(entry.PlayerID, actionQueueUpdate, Payload{
			Position:      entry.Position,
			EstimatedWait: entry.EstimatedWait,
		})
	}
}

func (that *Server) pushQueueLoop(ctx context.Context) {
	if that.pollInterval <= 0 {
		return
	}

	ticker := time.NewTicker(that.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.pushQueue(ctx)
		}
	}
}
