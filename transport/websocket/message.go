package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

// client actions
const (
	actionQueueJoin  = "queue:join"
	actionQueueLeave = "queue:leave"
	actionGameJoin   = "game:join"
	actionGameTurn   = "game:turn"
	actionGameLeave  = "game:leave"
)

// server pushes
const (
	actionQueueJoined        = "queue:joined"
	actionQueueUpdate        = "queue:update"
	actionQueueLeft          = "queue:left"
	actionMatchFound         = "match:found"
	actionGameUpdate         = "game:update"
	actionGameEnded          = "game:ended"
	actionPlayerDisconnected = "player:disconnected"
	actionOnlineCount        = "online:count"
	actionError              = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload of every client action; each action reads the fields it needs.
type Request struct {
	Code   string `json:"code,omitempty"`
	GameID string `json:"gameId,omitempty"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

func (that Request) Position() xxxo.Position {
	return xxxo.Position{Row: that.Row, Col: that.Col}
}

type Payload struct {
	Game          *entity.Game        `json:"game,omitempty"`
	Result        *service.TurnResult `json:"result,omitempty"`
	Winner        xxxo.Result         `json:"winner,omitempty"`
	EndReason     xxxo.EndReason      `json:"endReason,omitempty"`
	Position      int                 `json:"position,omitempty"`
	EstimatedWait int                 `json:"estimatedWait,omitempty"`
	Online        int                 `json:"online,omitempty"`
	PlayerID      string              `json:"playerId,omitempty"`
	Action        string              `json:"action,omitempty"`
	Error         string              `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) Message {
	return Message{
		Action:  action,
		Payload: mustMarshal(payload),
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// publicErrors are reported to the client with their own message.
var publicErrors = []error{
	apperror.ErrGameOver,
	apperror.ErrNotYourTurn,
	apperror.ErrInvalidCell,
	apperror.ErrCellOccupied,
	apperror.ErrAdjacentToOwnLastMove,
	apperror.ErrInvalidState,
	apperror.ErrGameIsNotStarted,
	apperror.ErrGameNotFound,
	apperror.ErrPlayerNotFound,
	apperror.ErrNotInGame,
	apperror.ErrAlreadyInGame,
	apperror.ErrRoomFull,
	apperror.ErrRoomNotWaiting,
	apperror.ErrAlreadyInRoom,
	apperror.ErrNotRoomHost,
	apperror.ErrNotEnoughPlayers,
	apperror.ErrQueueBusy,
}

func errorMessage(err error) string {
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}
