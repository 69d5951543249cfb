package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/xxxo-backend/internal/ai"
	"github.com/rocketscienceinc/xxxo-backend/internal/config"
	"github.com/rocketscienceinc/xxxo-backend/internal/repository"
	"github.com/rocketscienceinc/xxxo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/xxxo-backend/internal/service"
	"github.com/rocketscienceinc/xxxo-backend/internal/usecase"
	"github.com/rocketscienceinc/xxxo-backend/transport/rest"
	"github.com/rocketscienceinc/xxxo-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	statsRepo, closeStats, err := openStats(ctx, log, conf.Postgres)
	if err != nil {
		return err
	}
	defer closeStats()

	difficulty, err := ai.ParseDifficulty(conf.Bot.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid bot difficulty: %w", err)
	}

	seed := conf.Bot.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	selector := ai.NewSelector(
		rand.New(rand.NewSource(seed)), //nolint:gosec // game AI, not security
		ai.WithJitter(conf.Bot.Jitter),
		ai.WithDepth(conf.Bot.Depth),
	)

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection, conf.SessionTTL)
	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.GameTTL)
	queueRepo := repository.NewQueueRepository(redisStorage.Connection)

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(gameRepo)
	botService := service.NewBotService(logger, selector, difficulty, conf.Bot.ThinkingDelay)
	statsService := service.NewStatsService(logger, statsRepo)
	gamePlayService := service.NewGamePlayService(logger, playerService, gameService, botService, statsService, difficulty)
	matchmakingService := service.NewMatchmakingService(logger, queueRepo, playerService, gamePlayService)
	authService := service.NewAuthService(conf.JWTSecretKey, conf.SessionTTL)

	sessionUseCase := usecase.NewSessionUseCase(playerService, authService)
	gameUseCase := usecase.NewGameUseCase(gamePlayService, matchmakingService, statsService)
	engineUseCase := usecase.NewEngineUseCase(selector, difficulty)

	router := rest.NewRouter(logger, sessionUseCase, gameUseCase, engineUseCase, redisStorage)
	httpServer := rest.New(logger, conf.HTTPPort, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := httpServer.Start(); httpErr != nil {
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, sessionUseCase, gameUseCase, conf.Matchmaking.PollInterval)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err = httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("could not stop HTTP server", "error", err)
		}

		return nil
	}
}

// openStats connects the stats database. Without a DSN stats are not kept.
func openStats(ctx context.Context, log *slog.Logger, conf config.Postgres) (repository.StatsRepository, func(), error) {
	if conf.DSN == "" {
		log.Warn("postgres dsn is empty, player stats are disabled")
		return nil, func() {}, nil
	}

	postgres, err := storage.NewPostgresStorage(ctx, conf.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
	}

	if err = postgres.Init(ctx); err != nil {
		_ = postgres.Close()
		return nil, nil, fmt.Errorf("could not init postgres storage: %w", err)
	}

	closeFn := func() {
		if closeErr := postgres.Close(); closeErr != nil {
			log.Error("could not close postgres storage", "error", closeErr)
		}
	}

	return repository.NewStatsRepository(postgres.Connection), closeFn, nil
}
