package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/usecase"
	"github.com/rocketscienceinc/xxxo-backend/internal/xxxo"
)

type sessionUseCase interface {
	CreateSession(ctx context.Context, name string) (*usecase.Session, error)
	Authenticate(ctx context.Context, token string) (*entity.Player, error)
}

type gameUseCase interface {
	CreateRoom(ctx context.Context, playerID string) (*entity.Game, error)
	JoinRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	StartRoom(ctx context.Context, code, playerID string) (*entity.Game, error)
	GetRoom(ctx context.Context, code string) (*entity.Game, error)
	CreateBotGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	CreateLocalGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, pos xxxo.Position) (*service.TurnResult, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type engineUseCase interface {
	PreviewMove(state xxxo.State, pos xxxo.Position, mark xxxo.Mark) (xxxo.Outcome, error)
	AIMove(state xxxo.State, difficulty string) (xxxo.Position, error)
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

type botGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type engineMoveRequest struct {
	State xxxo.State `json:"state"`
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	Mark  xxxo.Mark  `json:"mark"`
}

type aiMoveRequest struct {
	State      xxxo.State `json:"state"`
	Difficulty string     `json:"difficulty"`
}

type handlers struct {
	logger *slog.Logger

	sessions sessionUseCase
	games    gameUseCase
	engine   engineUseCase
}

func (that *handlers) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := that.sessions.CreateSession(r.Context(), req.Name)
	if err != nil {
		writeError(w, that.logger.With("method", "createPlayer"), err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, playerFrom(r.Context()))
}

func (that *handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.CreateRoom(r.Context(), playerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, that.logger.With("method", "createRoom"), err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetRoom(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, that.logger.With("method", "getRoom"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) joinRoom(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.JoinRoom(r.Context(), chi.URLParam(r, "code"), playerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, that.logger.With("method", "joinRoom"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) startRoom(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.StartRoom(r.Context(), chi.URLParam(r, "code"), playerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, that.logger.With("method", "startRoom"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) createBotGame(w http.ResponseWriter, r *http.Request) {
	var req botGameRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := that.games.CreateBotGame(r.Context(), playerFrom(r.Context()).ID, req.Difficulty)
	if err != nil {
		writeError(w, that.logger.With("method", "createBotGame"), err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) createLocalGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.CreateLocalGame(r.Context(), playerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, that.logger.With("method", "createLocalGame"), err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With("method", "getGame"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pos := xxxo.Position{Row: req.Row, Col: req.Col}

	result, err := that.games.MakeTurn(r.Context(), playerFrom(r.Context()).ID, chi.URLParam(r, "id"), pos)
	if err != nil {
		writeError(w, that.logger.With("method", "makeMove"), err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (that *handlers) leaveGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.LeaveGame(r.Context(), playerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, that.logger.With("method", "leaveGame"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.games.GetStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With("method", "getStats"), err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (that *handlers) previewMove(w http.ResponseWriter, r *http.Request) {
	var req engineMoveRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mark := req.Mark
	if mark == xxxo.Empty {
		mark = req.State.CurrentPlayer
	}

	outcome, err := that.engine.PreviewMove(req.State, xxxo.Position{Row: req.Row, Col: req.Col}, mark)
	if err != nil {
		writeError(w, that.logger.With("method", "previewMove"), err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *handlers) aiMove(w http.ResponseWriter, r *http.Request) {
	var req aiMoveRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	move, err := that.engine.AIMove(req.State, req.Difficulty)
	if err != nil {
		writeError(w, that.logger.With("method", "aiMove"), err)
		return
	}

	writeJSON(w, http.StatusOK, move)
}
