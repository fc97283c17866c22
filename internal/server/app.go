// Package server initializes and runs the ordertrack auth server. It opens
// the database, applies migrations, seeds the bootstrap admin, and serves
// the HTTP API until interrupted.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/yshalenyk/ordertrack/internal/logging"
	"github.com/yshalenyk/ordertrack/internal/server/config"
	"github.com/yshalenyk/ordertrack/internal/server/guard"
	"github.com/yshalenyk/ordertrack/internal/server/httpapi"
	"github.com/yshalenyk/ordertrack/internal/server/password"
	"github.com/yshalenyk/ordertrack/internal/server/ratelimit"
	"github.com/yshalenyk/ordertrack/internal/server/repositories/repomanager"
	"github.com/yshalenyk/ordertrack/internal/server/services"
	"github.com/yshalenyk/ordertrack/internal/server/token"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	hasher := password.NewBcryptHasher()
	codec := token.NewCodec(
		[]byte(cfg.AccessTokenSecret), []byte(cfg.RefreshTokenSecret),
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	verifier := services.NewCredentialVerifier(db, repos, hasher)
	sessions := services.NewSessionManager(db, repos, codec, verifier, logger, cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	limiter := ratelimit.NewLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	srv := httpapi.NewServer(cfg, logger, sessions, guard.New(codec), limiter)

	app := &App{config: cfg, logger: logger, db: db, redis: rdb, server: srv}

	ctx := context.Background()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	if err := services.EnsureAdmin(ctx, db, repos, hasher, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if err := app.redis.Close(); err != nil {
		app.logger.Warn(ctx, "redis close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
}
