package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/xxxo-backend/internal/apperror"
	"github.com/rocketscienceinc/xxxo-backend/internal/entity"
)

type playerCtxKey struct{}

func withPlayer(ctx context.Context, player *entity.Player) context.Context {
	return context.WithValue(ctx, playerCtxKey{}, player)
}

// playerFrom returns the caller resolved by requireAuth.
func playerFrom(ctx context.Context) *entity.Player {
	player, _ := ctx.Value(playerCtxKey{}).(*entity.Player)
	return player
}

// requireAuth resolves "Authorization: Bearer <token>" into the calling player.
func requireAuth(logger *slog.Logger, sessions sessionUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeError(w, logger, apperror.ErrUnauthorized)
				return
			}

			player, err := sessions.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPlayer(r.Context(), player)))
		})
	}
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"requestID", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
