package apperror

import "errors"

// Move rejections. Each one is a caller-visible reason, never a crash.
var (
	ErrGameOver              = errors.New("game is already over")
	ErrNotYourTurn           = errors.New("it's not your turn")
	ErrInvalidCell           = errors.New("cell is outside the board")
	ErrCellOccupied          = errors.New("cell is already occupied")
	ErrAdjacentToOwnLastMove = errors.New("cannot move next to your last move")
)

var (
	ErrInvalidState     = errors.New("game state is invalid")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotInGame        = errors.New("player is not in a game")
	ErrAlreadyInGame    = errors.New("player is already in a game")

	ErrRoomFull         = errors.New("room is full")
	ErrRoomNotWaiting   = errors.New("room is not accepting new players")
	ErrAlreadyInRoom    = errors.New("you are already in this room")
	ErrNotRoomHost      = errors.New("only the host can start the game")
	ErrNotEnoughPlayers = errors.New("room needs two players to start")

	ErrNoLegalMoves      = errors.New("no legal moves available")
	ErrQueueBusy         = errors.New("matchmaking queue changed too often, try again")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnknownGameType   = errors.New("unknown game type")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
