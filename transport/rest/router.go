package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the HTTP API. storage may be nil when no readiness check is wanted.
func NewRouter(logger *slog.Logger, sessions sessionUseCase, games gameUseCase, engine engineUseCase, storage pinger) http.Handler {
	log := logger.With("component", "rest")

	h := &handlers{
		logger:   log,
		sessions: sessions,
		games:    games,
		engine:   engine,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/ping", NewPingHandler(storage).PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/players", h.createPlayer)
		r.Get("/rooms/{code}", h.getRoom)
		r.Get("/games/{id}", h.getGame)
		r.Get("/stats/{id}", h.getStats)

		r.Post("/engine/move", h.previewMove)
		r.Post("/engine/ai-move", h.aiMove)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(log, sessions))

			r.Get("/players/me", h.me)

			r.Post("/rooms", h.createRoom)
			r.Post("/rooms/{code}/join", h.joinRoom)
			r.Post("/rooms/{code}/start", h.startRoom)

			r.Post("/games/bot", h.createBotGame)
			r.Post("/games/local", h.createLocalGame)
			r.Post("/games/leave", h.leaveGame)
			r.Post("/games/{id}/move", h.makeMove)
		})
	})

	return r
}
