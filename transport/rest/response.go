package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

type publicError struct {
	err    error
	status int
}

// publicErrors are shown to callers with their own message. Anything else is a 500.
var publicErrors = []publicError{
	{apperror.ErrGameOver, http.StatusBadRequest},
	{apperror.ErrNotYourTurn, http.StatusBadRequest},
	{apperror.ErrInvalidCell, http.StatusBadRequest},
	{apperror.ErrCellOccupied, http.StatusBadRequest},
	{apperror.ErrAdjacentToOwnLastMove, http.StatusBadRequest},
	{apperror.ErrInvalidState, http.StatusBadRequest},
	{apperror.ErrGameIsNotStarted, http.StatusBadRequest},
	{apperror.ErrUnknownDifficulty, http.StatusBadRequest},
	{apperror.ErrUnknownGameType, http.StatusBadRequest},

	{apperror.ErrUnauthorized, http.StatusUnauthorized},

	{apperror.ErrNotRoomHost, http.StatusForbidden},
	{apperror.ErrNotInGame, http.StatusForbidden},

	{apperror.ErrGameNotFound, http.StatusNotFound},
	{apperror.ErrPlayerNotFound, http.StatusNotFound},

	{apperror.ErrRoomFull, http.StatusConflict},
	{apperror.ErrRoomNotWaiting, http.StatusConflict},
	{apperror.ErrAlreadyInRoom, http.StatusConflict},
	{apperror.ErrAlreadyInGame, http.StatusConflict},
	{apperror.ErrNotEnoughPlayers, http.StatusConflict},
	{apperror.ErrNoLegalMoves, http.StatusConflict},

	{apperror.ErrQueueBusy, http.StatusServiceUnavailable},
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	for _, known := range publicErrors {
		if errors.Is(err, known.err) {
			writeJSON(w, known.status, errorResponse{Error: known.err.Error()})
			return
		}
	}

	log.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	return json.NewDecoder(r.Body).Decode(v)
}
