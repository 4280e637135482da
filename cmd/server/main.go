package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-catalog-api/internal/catalog"
	"github.com/iliyamo/movie-catalog-api/internal/config"
	"github.com/iliyamo/movie-catalog-api/internal/database"
	"github.com/iliyamo/movie-catalog-api/internal/handler"
	"github.com/iliyamo/movie-catalog-api/internal/logger"
	"github.com/iliyamo/movie-catalog-api/internal/middleware"
	"github.com/iliyamo/movie-catalog-api/internal/queue"
	"github.com/iliyamo/movie-catalog-api/internal/repository"
	"github.com/iliyamo/movie-catalog-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	var rdb *redis.Client
	if cacheCfg.Enabled || rlCfg.Enabled {
		if rdb, err = config.NewRedisClient(ctx); err != nil {
			log.WithError(err).Warn("redis unavailable; response cache and rate limiting disabled")
		} else {
			defer rdb.Close()
		}
	}

	films := repository.NewFilmRepo(db)
	movies := &handler.MoviesHandler{
		Catalog: catalog.NewService(films, cfg.PageSize, cfg.QueryTimeout),
	}

	e := router.New(log)
	router.RegisterRoutes(e, handler.Ready(films))
	router.RegisterMovies(e, cfg.APIPrefix, movies,
		middleware.NewTokenBucket(rlCfg, rdb, log),
		middleware.NewRedisCache(cacheCfg, rdb),
	)

	if qCfg := config.LoadQueueConfig(); qCfg.Enabled && rdb != nil && cacheCfg.Enabled {
		consumer := &queue.Consumer{
			URL:   qCfg.URL,
			Queue: qCfg.Queue,
			Log:   log,
			Purge: func(ctx context.Context) (int, error) {
				return middleware.PurgeRedisCache(ctx, rdb, cacheCfg.Prefix)
			},
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("invalidation consumer stopped")
			}
		}()
	}

	go serve(e, ":"+cfg.Port, cfg.Env, log)

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func serve(e *echo.Echo, addr, env string, log logrus.FieldLogger) {
	log.Infof("listening on %s (env=%s)", addr, env)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
