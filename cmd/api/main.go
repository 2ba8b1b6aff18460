package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tempsense/tracking-api/internal/api"
	"github.com/tempsense/tracking-api/internal/api/handler"
	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
	"github.com/tempsense/tracking-api/internal/core/service"
	"github.com/tempsense/tracking-api/internal/core/token"
	"github.com/tempsense/tracking-api/internal/infrastructure/db/mongo"
	"github.com/tempsense/tracking-api/internal/infrastructure/db/redis"
	"github.com/tempsense/tracking-api/internal/pkg/config"
	"github.com/tempsense/tracking-api/internal/pkg/password"
	"github.com/tempsense/tracking-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "tracking-api"})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "tracking-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	checks := map[string]handler.DependencyCheck{"mongodb": handler.MongoCheck(db)}

	var cache ports.SeriesCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func(rdb *goredis.Client) { _ = rdb.Close() }(rdb)
		cache = redis.NewSeriesCache(rdb, cfg.Redis.CacheTTL)
		checks["redis"] = handler.RedisCheck(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, series cache disabled")
	}

	codec, err := token.NewCodec([]byte(cfg.JWT.Secret))
	if err != nil {
		return err
	}

	users := mongo.NewUserRepository(db)
	seriesRepo := mongo.NewSeriesRepository(db)
	measurementRepo := mongo.NewMeasurementRepository(db)

	authService := service.NewAuthService(users, codec, password.NewHasher(bcrypt.DefaultCost), cfg.JWT.TTL,
		logger.Component(log, "auth"))
	guard := service.NewAccessGuard(codec, users, logger.Component(log, "access"))
	seriesService := service.NewSeriesService(seriesRepo, measurementRepo, users, cache,
		logger.Component(log, "series"))
	measurementService := service.NewMeasurementService(measurementRepo, seriesRepo, users,
		logger.Component(log, "measurements"))

	if err := bootstrapUsers(ctx, authService, cfg.Bootstrap); err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Guard:        guard,
		Series:       seriesService,
		Measurements: measurementService,
		Checks:       checks,
	}, api.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger.Component(log, "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// bootstrapUsers creates the configured accounts when they do not exist yet.
func bootstrapUsers(ctx context.Context, auth *service.AuthService, cfg config.BootstrapConfig) error {
	accounts := []struct {
		username, password string
		role               domain.Role
	}{
		{cfg.AdminUsername, cfg.AdminPassword, domain.RoleAdmin},
		{cfg.UserUsername, cfg.UserPassword, domain.RoleUser},
	}
	for _, a := range accounts {
		if _, err := auth.EnsureUser(ctx, a.username, a.password, a.role); err != nil {
			return err
		}
	}
	return nil
}
