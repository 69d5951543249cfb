package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
	LocalType   = "local"
)

// RoomCapacity is the number of seats in every game.
const RoomCapacity = 2

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the persisted room document. State is the authoritative engine snapshot.
type Game struct {
	ID         string         `json:"id"`
	Code       string         `json:"code,omitempty"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	Difficulty string         `json:"difficulty,omitempty"`
	HostID     string         `json:"host_id,omitempty"`
	State      xxxo.State     `json:"state"`
	Winner     xxxo.Result    `json:"winner,omitempty"`
	EndReason  xxxo.EndReason `json:"end_reason,omitempty"`
	Players    []*Player      `json:"players,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:        id,
		Type:      gameType,
		Status:    StatusWaiting,
		State:     xxxo.NewState(),
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameOver
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsPrivate() bool {
	return that.Type == PrivateType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) IsLocal() bool {
	return that.Type == LocalType
}

// AddPlayer seats a player in a waiting room.
func (that *Game) AddPlayer(player *Player) error {
	if !that.IsWaiting() {
		return apperror.ErrRoomNotWaiting
	}

	if that.PlayerByID(player.ID) != nil {
		return apperror.ErrAlreadyInRoom
	}

	if len(that.Players) >= RoomCapacity {
		return apperror.ErrRoomFull
	}

	player.GameID = that.ID
	that.Players = append(that.Players, player)

	return nil
}

// Start deals X to the first seat and O to the second and resets the board.
// A local game has a single seat and plays both marks.
func (that *Game) Start() error {
	if !that.IsWaiting() {
		return apperror.ErrRoomNotWaiting
	}

	if len(that.Players) < RoomCapacity && !that.IsLocal() {
		return apperror.ErrNotEnoughPlayers
	}

	marks := []xxxo.Mark{xxxo.X, xxxo.O}
	for i, player := range that.Players {
		if i < len(marks) && !that.IsLocal() {
			player.Mark = marks[i]
		}
	}

	that.State = xxxo.NewState()
	that.Status = StatusOngoing

	return nil
}

// MarkFor resolves which mark playerID is allowed to place right now.
func (that *Game) MarkFor(playerID string) (xxxo.Mark, error) {
	player := that.PlayerByID(playerID)
	if player == nil {
		return xxxo.Empty, apperror.ErrNotInGame
	}

	if that.IsLocal() {
		return that.State.CurrentPlayer, nil
	}

	return player.Mark, nil
}

// MakeTurn applies one move to the stored state. A move that leaves the
// player to move without any legal cell concludes the game as stalled.
func (that *Game) MakeTurn(mark xxxo.Mark, pos xxxo.Position) (xxxo.Outcome, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return xxxo.Outcome{}, err
	}

	if err := that.State.Validate(); err != nil {
		return xxxo.Outcome{}, err
	}

	outcome, err := xxxo.ApplyMove(that.State, pos, mark)
	if err != nil {
		return xxxo.Outcome{}, err
	}

	if !outcome.GameEnded && xxxo.Stalled(outcome.State) {
		concluded := xxxo.Conclude(outcome.State, xxxo.ReasonStalled)
		outcome.State = concluded.State
		outcome.GameEnded = true
		outcome.Winner = concluded.Winner
		outcome.EndReason = concluded.EndReason
	}

	that.State = outcome.State
	if outcome.GameEnded {
		that.finish(outcome.Winner, outcome.EndReason)
	}

	return outcome, nil
}

// Conclude ends an ongoing game without a move.
func (that *Game) Conclude(reason xxxo.EndReason) xxxo.Outcome {
	outcome := xxxo.Conclude(that.State, reason)

	that.State = outcome.State
	that.finish(outcome.Winner, outcome.EndReason)

	return outcome
}

func (that *Game) finish(winner xxxo.Result, reason xxxo.EndReason) {
	that.Status = StatusFinished
	that.Winner = winner
	that.EndReason = reason
}

func (that *Game) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

func (that *Game) PlayerByMark(mark xxxo.Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

// BotTurn reports whether the seat to move belongs to the bot.
func (that *Game) BotTurn() bool {
	if !that.IsWithBot() || !that.IsOngoing() {
		return false
	}

	player := that.PlayerByMark(that.State.CurrentPlayer)

	return player != nil && player.Bot
}

func (that *Game) HumanPlayers() []*Player {
	humans := make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		if !player.Bot {
			humans = append(humans, player)
		}
	}

	return humans
}

// RemovePlayer frees a seat in a waiting room.
func (that *Game) RemovePlayer(id string) {
	for i, player := range that.Players {
		if player.ID == id {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return
		}
	}
}
