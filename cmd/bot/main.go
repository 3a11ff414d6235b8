package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/faith-journey-bot/internal/config"
	"github.com/aliskhannn/faith-journey-bot/internal/delivery/telegram"
	"github.com/aliskhannn/faith-journey-bot/internal/httpserver"
	"github.com/aliskhannn/faith-journey-bot/internal/infra/gemini"
	"github.com/aliskhannn/faith-journey-bot/internal/infra/postgres"
	"github.com/aliskhannn/faith-journey-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/faith-journey-bot/internal/logger"
	"github.com/aliskhannn/faith-journey-bot/internal/service"
	"github.com/aliskhannn/faith-journey-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = !cfg.IsProduction()
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Storage.
	var (
		stateStore service.StateStore
		userRepo   service.UserRepository
		db         httpserver.Pinger
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}

		stateStore = repository.NewStateRepository(pool, postgres.NewTransactor(pool))
		userRepo = repository.NewUserRepository(pool)
		db = pool
		lg.Info("using postgres storage")

	default:
		stateStore = storage.NewStateStorage()
		userRepo = storage.NewUserStorage()
		lg.Warn("using in-memory storage, progress is lost on restart")
	}

	// Image generation.
	var images service.ImageGenerator = gemini.Disabled{}
	if cfg.Gemini.APIKey != "" {
		gen, err := gemini.NewImageGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		images = gen
		lg.Info("stage illustrations enabled", zap.String("model", gen.Name()))
	} else {
		lg.Warn("GEMINI_API_KEY is not set, stage illustrations are disabled")
	}

	// Services.
	userService := service.NewUserService(userRepo, lg)
	journeys := service.NewJourneyService(
		service.NewProgressStore(stateStore, lg),
		images,
		service.JourneyConfig{
			AdvanceDelay: cfg.Journey.AdvanceDelay,
			RegenPerHour: cfg.Journey.RegenPerHour,
		},
		service.SessionConfig{
			MaxSessions: cfg.Journey.MaxSessions,
			TTL:         cfg.Journey.SessionTTL,
		},
		lg,
	)
	defer journeys.Close()

	teachings := service.NewTeachingService(userRepo, cfg.Teaching.Cron, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		journeys,
		teachings,
		storage.NewMessageStorage(),
	)
	journeys.SetNotifier(handler)
	teachings.SetNotifier(handler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx)
	})

	if cfg.Teaching.Cron != "" {
		g.Go(func() error {
			return teachings.Start(gctx)
		})
	}

	if cfg.HTTP.Addr != "" {
		srv := httpserver.New(lg, cfg.HTTP.Addr, cfg.IsProduction(), db, journeys)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	err = g.Wait()
	lg.Info("shutdown signal received")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
