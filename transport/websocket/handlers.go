package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
)

func (that *Server) handleQueueJoin(ctx context.Context, playerID string, _ Request) error {
	ticket, err := that.games.JoinQueue(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to join queue: %w", err)
	}

	if ticket.Game != nil {
		that.notifyPlayers(ticket.Game, actionMatchFound, Payload{Game: ticket.Game})
		that.pushQueue(ctx)

		return nil
	}

	that.send(playerID, actionQueueJoined, Payload{
		Position:      ticket.Position,
		EstimatedWait: ticket.EstimatedWait,
	})

	return nil
}

func (that *Server) handleQueueLeave(ctx context.Context, playerID string, _ Request) error {
	if err := that.games.LeaveQueue(ctx, playerID); err != nil {
		return fmt.Errorf("failed to leave queue: %w", err)
	}

	that.send(playerID, actionQueueLeft, Payload{})
	that.pushQueue(ctx)

	return nil
}

// handleGameJoin takes a seat by room code, or resubscribes to a game by id.
func (that *Server) handleGameJoin(ctx context.Context, playerID string, req Request) error {
	if req.Code != "" {
		game, err := that.games.JoinRoom(ctx, req.Code, playerID)
		if err != nil {
			return err
		}

		that.notifyPlayers(game, actionGameUpdate, Payload{Game: game})

		return nil
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return err
	}

	if game.PlayerByID(playerID) == nil {
		return apperror.ErrNotInGame
	}

	that.send(playerID, actionGameUpdate, Payload{Game: game})

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, playerID string, req Request) error {
	result, err := that.games.MakeTurn(ctx, playerID, req.GameID, req.Position())
	if err != nil {
		return err
	}

	that.notifyPlayers(result.Game, actionGameUpdate, Payload{Game: result.Game, Result: result})

	if result.GameEnded {
		that.notifyPlayers(result.Game, actionGameEnded, Payload{
			Game:      result.Game,
			Winner:    result.Winner,
			EndReason: result.EndReason,
		})
	}

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, playerID string, _ Request) error {
	game, err := that.games.LeaveGame(ctx, playerID)
	if err != nil {
		return err
	}

	action := actionGameUpdate
	if game.IsFinished() {
		action = actionGameEnded
	}

	that.notifyPlayers(game, action, Payload{
		Game:      game,
		Winner:    game.Winner,
		EndReason: game.EndReason,
		PlayerID:  playerID,
	})

	// a guest who left a waiting room is no longer in game.Players
	if game.PlayerByID(playerID) == nil {
		that.send(playerID, action, Payload{Game: game, PlayerID: playerID})
	}

	return nil
}

// resume sends a reconnecting player the game it is still seated in.
func (that *Server) resume(ctx context.Context, player *entity.Player) {
	if player.GameID == "" {
		return
	}

	game, err := that.games.GetGame(ctx, player.GameID)
	if err != nil {
		return
	}

	that.send(player.ID, actionGameUpdate, Payload{Game: game})
}

// handleDisconnect drops the player from the queue and tells the other seat of
// a running game. The game itself stays open for a reconnect.
func (that *Server) handleDisconnect(ctx context.Context, playerID string) {
	log := that.logger.With("method", "handleDisconnect", "playerID", playerID)

	if err := that.games.LeaveQueue(ctx, playerID); err != nil {
		log.Error("failed to leave queue", "error", err)
	}

	that.pushOnlineCount()

	player, err := that.sessions.GetPlayer(ctx, playerID)
	if err != nil || player.GameID == "" {
		return
	}

	game, err := that.games.GetGame(ctx, player.GameID)
	if err != nil || !game.IsOngoing() {
		return
	}

	for _, seat := range game.HumanPlayers() {
		if seat.ID != playerID {
			that.send(seat.ID, actionPlayerDisconnected, Payload{PlayerID: playerID, Game: game})
		}
	}

	log.Info("opponent notified", "gameID", game.ID)
}
