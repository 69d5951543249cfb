package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
)

// Session is handed to a client once: the player document plus a bearer token.
type Session struct {
	Player *entity.Player `json:"player"`
	Token  string         `json:"token"`
}

type SessionUseCase interface {
	CreateSession(ctx context.Context, name string) (*Session, error)
	Authenticate(ctx context.Context, token string) (*entity.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*entity.Player, error)
}

type playerService interface {
	CreatePlayer(ctx context.Context, name string) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.Player, error)
}

type authService interface {
	GenerateToken(playerID string) (string, error)
	ParseToken(token string) (string, error)
}

type sessionUseCase struct {
	playerService playerService
	authService   authService
}

func NewSessionUseCase(playerService playerService, authService authService) SessionUseCase {
	return &sessionUseCase{
		playerService: playerService,
		authService:   authService,
	}
}

func (that *sessionUseCase) CreateSession(ctx context.Context, name string) (*Session, error) {
	player, err := that.playerService.CreatePlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not create player: %w", err)
	}

	token, err := that.authService.GenerateToken(player.ID)
	if err != nil {
		return nil, fmt.Errorf("could not issue token: %w", err)
	}

	return &Session{Player: player, Token: token}, nil
}

// Authenticate resolves a bearer token to its player. A token that outlived
// its player document is unauthorized too.
func (that *sessionUseCase) Authenticate(ctx context.Context, token string) (*entity.Player, error) {
	playerID, err := that.authService.ParseToken(token)
	if err != nil {
		return nil, err
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return nil, apperror.ErrUnauthorized
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *sessionUseCase) GetPlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	return that.playerService.GetPlayerByID(ctx, playerID)
}
