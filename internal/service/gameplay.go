package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/xxxo-backend/internal/ai"
	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

// TurnResult is what a caller sees after a stored move: the saved game, the
// points for the caller's own move and any replies the bot made right after.
type TurnResult struct {
	Game         *entity.Game   `json:"game"`
	PointsGained int            `json:"pointsGained"`
	GameEnded    bool           `json:"gameEnded"`
	Winner       xxxo.Result    `json:"winner,omitempty"`
	EndReason    xxxo.EndReason `json:"endReason,omitempty"`
	BotMoves     []xxxo.Outcome `json:"botMoves,omitempty"`
}

type GamePlayService interface {
	CreateRoom(ctx context.Context, hostID string) (*entity.Game, error)
	JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	GetRoom(ctx context.Context, code string) (*entity.Game, error)

	CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error)
	CreateMatch(ctx context.Context, xPlayerID, oPlayerID string) (*entity.Game, error)

	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*TurnResult, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
	statsService  StatsService

	defaultDifficulty ai.Difficulty

	locks *gameLocks
}

func NewGamePlayService(
	logger *slog.Logger,
	playerService PlayerService,
	gameService GameService,
	botService BotService,
	statsService StatsService,
	defaultDifficulty ai.Difficulty,
) GamePlayService {
	return &gamePlayService{
		logger:            logger.With("component", "gameplay"),
		playerService:     playerService,
		gameService:       gameService,
		botService:        botService,
		statsService:      statsService,
		defaultDifficulty: defaultDifficulty,
		locks:             newGameLocks(),
	}
}

func (that *gamePlayService) CreateRoom(ctx context.Context, hostID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateRoom", "playerID", hostID)

	host, err := that.freePlayer(ctx, hostID)
	if err != nil {
		return nil, err
	}

	game, err := that.gameService.CreateGame(ctx, entity.PrivateType)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	game.HostID = host.ID
	if err = game.AddPlayer(host); err != nil {
		return nil, fmt.Errorf("failed to seat host: %w", err)
	}

	if err = that.save(ctx, game, host); err != nil {
		return nil, err
	}

	log.Info("room created", "gameID", game.ID, "code", game.Code)

	return game, nil
}

func (that *gamePlayService) JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinRoom", "playerID", playerID, "code", code)

	game, err := that.gameService.GetGameByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	unlock := that.locks.lock(game.ID)
	defer unlock()

	// reload under the lock so a concurrent join is seen
	if game, err = that.gameService.GetGameByID(ctx, game.ID); err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if game.PlayerByID(playerID) != nil {
		return nil, apperror.ErrAlreadyInRoom
	}

	player, err := that.freePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	if err = that.save(ctx, game, player); err != nil {
		return nil, err
	}

	log.Info("player joined room", "gameID", game.ID)

	return game, nil
}

func (that *gamePlayService) StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "StartRoom", "playerID", playerID, "code", code)

	game, err := that.gameService.GetGameByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	unlock := that.locks.lock(game.ID)
	defer unlock()

	if game, err = that.gameService.GetGameByID(ctx, game.ID); err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if game.HostID != playerID {
		return nil, apperror.ErrNotRoomHost
	}

	if err = game.Start(); err != nil {
		return nil, fmt.Errorf("failed to start room: %w", err)
	}

	if err = that.save(ctx, game, game.HumanPlayers()...); err != nil {
		return nil, err
	}

	log.Info("room started", "gameID", game.ID)

	return game, nil
}

func (that *gamePlayService) GetRoom(ctx context.Context, code string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return game, nil
}

// CreateBotGame seats the human as X and the bot as O. An empty difficulty
// means the configured default.
func (that *gamePlayService) CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateBotGame", "playerID", playerID)

	level := that.defaultDifficulty
	if difficulty != "" {
		var err error
		if level, err = ai.ParseDifficulty(difficulty); err != nil {
			return nil, err
		}
	}

	player, err := that.freePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := that.gameService.CreateGame(ctx, entity.WithBotType)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot game: %w", err)
	}

	game.Difficulty = string(level)
	game.HostID = player.ID

	seats := []*entity.Player{player, entity.NewBotPlayer("bot-"+game.ID, game.Difficulty)}
	for _, seat := range seats {
		if err = game.AddPlayer(seat); err != nil {
			return nil, fmt.Errorf("failed to seat player: %w", err)
		}
	}

	if err = game.Start(); err != nil {
		return nil, fmt.Errorf("failed to start bot game: %w", err)
	}

	if err = that.save(ctx, game, player); err != nil {
		return nil, err
	}

	log.Info("bot game created", "gameID", game.ID, "difficulty", game.Difficulty)

	return game, nil
}

// CreateLocalGame starts a pass-and-play game owned by one player, who moves for both marks.
func (that *gamePlayService) CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.freePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := that.gameService.CreateGame(ctx, entity.LocalType)
	if err != nil {
		return nil, fmt.Errorf("failed to create local game: %w", err)
	}

	game.HostID = player.ID
	if err = game.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("failed to seat player: %w", err)
	}

	if err = game.Start(); err != nil {
		return nil, fmt.Errorf("failed to start local game: %w", err)
	}

	if err = that.save(ctx, game, player); err != nil {
		return nil, err
	}

	return game, nil
}

// CreateMatch starts a public game for two queued players.
func (that *gamePlayService) CreateMatch(ctx context.Context, xPlayerID, oPlayerID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateMatch", "x", xPlayerID, "o", oPlayerID)

	game, err := that.gameService.CreateGame(ctx, entity.PublicType)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	players := make([]*entity.Player, 0, entity.RoomCapacity)
	for _, id := range []string{xPlayerID, oPlayerID} {
		player, err := that.freePlayer(ctx, id)
		if err != nil {
			return nil, err
		}

		if err = game.AddPlayer(player); err != nil {
			return nil, fmt.Errorf("failed to seat player: %w", err)
		}

		players = append(players, player)
	}

	if err = game.Start(); err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}

	if err = that.save(ctx, game, players...); err != nil {
		return nil, err
	}

	log.Info("match created", "gameID", game.ID)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn loads the game, applies the caller's move, lets the bot answer and
// persists the result. A finished game is recorded and its seats released.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID, "gameID", gameID)

	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	mark, err := game.MarkFor(playerID)
	if err != nil {
		return nil, err
	}

	// a reply interrupted on an earlier request is owed before the human moves
	var caughtUp []xxxo.Outcome
	if game.BotTurn() {
		if caughtUp, err = that.catchUpBot(ctx, game); err != nil {
			return nil, err
		}

		if game.IsFinished() {
			log.Info("game ended on the bot's catch-up", "reason", game.EndReason)

			return &TurnResult{
				Game:      game,
				GameEnded: true,
				Winner:    game.Winner,
				EndReason: game.EndReason,
				BotMoves:  caughtUp,
			}, nil
		}
	}

	outcome, err := game.MakeTurn(mark, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	result := &TurnResult{
		Game:         game,
		PointsGained: outcome.Points,
		BotMoves:     caughtUp,
	}

	if game.BotTurn() {
		var replies []xxxo.Outcome
		replies, err = that.botService.Play(ctx, game)
		result.BotMoves = append(result.BotMoves, replies...)
		if err != nil {
			log.Error("bot failed to answer", "error", err)
			if errors.Is(err, apperror.ErrNoLegalMoves) {
				game.Conclude(xxxo.ReasonStalled)
			}
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
	}

	result.GameEnded = game.IsFinished()
	result.Winner = game.Winner
	result.EndReason = game.EndReason

	log.Info("turn made", "move", pos.String(), "points", outcome.Points, "ended", result.GameEnded)

	return result, nil
}

// catchUpBot plays the bot moves still owed on a stored game and saves them
// before the human move is tried, so a rejected human move cannot drop them.
func (that *gamePlayService) catchUpBot(ctx context.Context, game *entity.Game) ([]xxxo.Outcome, error) {
	outcomes, err := that.botService.Play(ctx, game)
	switch {
	case errors.Is(err, apperror.ErrNoLegalMoves):
		game.Conclude(xxxo.ReasonStalled)
	case err != nil:
		return nil, fmt.Errorf("bot failed to catch up: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
	}

	return outcomes, nil
}

// LeaveGame removes the player from its current game. A running game is
// concluded as abandoned; a waiting room is deleted once its host leaves.
func (that *gamePlayService) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "LeaveGame", "playerID", playerID)

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNotInGame
	}

	unlock := that.locks.lock(player.GameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.releaseSeats(ctx, player)
		return nil, apperror.ErrNotInGame
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	switch {
	case game.IsWaiting():
		if game.HostID == playerID {
			if err = that.gameService.DeleteGame(ctx, game.ID); err != nil {
				return nil, fmt.Errorf("failed to delete room: %w", err)
			}

			that.releaseSeats(ctx, game.HumanPlayers()...)
			log.Info("room closed by host", "gameID", game.ID)

			return game, nil
		}

		game.RemovePlayer(playerID)
		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update room: %w", err)
		}

		that.releaseSeats(ctx, player)

	case game.IsOngoing():
		game.Conclude(xxxo.ReasonAbandoned)
		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}

		that.finishGame(ctx, game)

	default:
		that.releaseSeats(ctx, player)
	}

	log.Info("player left game", "gameID", game.ID, "status", game.Status)

	return game, nil
}

func (that *gamePlayService) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	if err := that.statsService.RecordGame(ctx, game); err != nil {
		log.Error("failed to record stats", "error", err)
	}

	that.releaseSeats(ctx, game.HumanPlayers()...)

	log.Info("game finished", "winner", game.Winner, "reason", game.EndReason)
}

func (that *gamePlayService) releaseSeats(ctx context.Context, players ...*entity.Player) {
	log := that.logger.With("method", "releaseSeats")

	for _, seat := range players {
		player := &entity.Player{ID: seat.ID, Name: seat.Name}
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			log.Error("failed to update", "player", seat.ID, "error", err)
		}
	}
}

// freePlayer loads a player and makes sure it is not seated in an unfinished game.
func (that *gamePlayService) freePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return player, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to get current game: %w", err)
	case !game.IsFinished():
		return nil, apperror.ErrAlreadyInGame
	}

	player.GameID = ""
	player.Mark = xxxo.Empty

	return player, nil
}

func (that *gamePlayService) save(ctx context.Context, game *entity.Game, players ...*entity.Player) error {
	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	for _, player := range players {
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
	}

	return nil
}

// gameLocks serialises mutations of one game inside this process.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[string]*gameLock),
	}
}

func (that *gameLocks) lock(gameID string) func() {
	that.mu.Lock()
	l, ok := that.locks[gameID]
	if !ok {
		l = &gameLock{}
		that.locks[gameID] = l
	}
	l.refs++
	that.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		that.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, gameID)
		}
		that.mu.Unlock()
	}
}
