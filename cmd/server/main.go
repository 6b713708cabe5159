package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/cache"
	"github.com/iliyamo/cinema-seat-editor/internal/catalog"
	"github.com/iliyamo/cinema-seat-editor/internal/config"
	"github.com/iliyamo/cinema-seat-editor/internal/database"
	"github.com/iliyamo/cinema-seat-editor/internal/handler"
	"github.com/iliyamo/cinema-seat-editor/internal/logger"
	"github.com/iliyamo/cinema-seat-editor/internal/queue"
	"github.com/iliyamo/cinema-seat-editor/internal/repository"
	"github.com/iliyamo/cinema-seat-editor/internal/router"
	"github.com/iliyamo/cinema-seat-editor/internal/session"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "seat-editor")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// Redis is optional: without it sessions live in memory and caching
	// and rate limiting are off.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Warn("redis unavailable, using in-memory sessions", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	sessCfg := config.LoadSessionConfig()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, sessCfg.Prefix, sessCfg.TTL)
	} else {
		sessions = session.NewMemoryStore(sessCfg.TTL)
	}
	layoutCache := cache.NewLayoutCache(config.LoadLayoutCacheConfig(), rdb)

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.RabbitEnabled {
		publisher = queue.NewAMQPPublisher(cfg.RabbitURL, log)
		consumer := &queue.Consumer{URL: cfg.RabbitURL, Dir: cfg.AuditLogDir, Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("layout consumer stopped", zap.Error(err))
			}
		}()
	}

	rooms := repository.NewRoomRepo(db)
	e := router.New(router.Handlers{
		Auth:   handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), log),
		Rooms:  handler.NewRoomHandler(rooms, layoutCache, log),
		Editor: handler.NewEditorHandler(sessions, rooms, repository.NewShowSeatRepo(db), layoutCache, publisher, log),
		Movies: handler.NewMovieHandler(catalog.New(catalog.Seed)),
	}, router.Options{
		JWTSecret:     cfg.JWTSecret,
		Redis:         rdb,
		RateLimit:     config.LoadRateLimitConfig(),
		ResponseCache: config.LoadResponseCacheConfig(),
		Log:           log,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
