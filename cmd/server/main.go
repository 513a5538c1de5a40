package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/logger/sl"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/notify"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/session"
	"github.com/iliyamo/fyyur/internal/view"
)

const flashTTL = 5 * time.Minute

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	log.Info("starting fyyur", slog.String("env", cfg.Env), slog.String("db_driver", cfg.DB.Driver))

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Error("failed to migrate database", sl.Err(err))
			os.Exit(1)
		}
	}

	loc := cfg.Location()
	renderer, err := view.New(loc)
	if err != nil {
		log.Error("failed to parse templates", sl.Err(err))
		os.Exit(1)
	}

	// Redis backs the page cache and the rate limiter; both step aside
	// when it is unreachable.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.Redis.Enabled {
		log.Warn("redis unavailable, page cache and rate limit disabled", slog.String("addr", cfg.Redis.Address()))
	}
	pageCache := middleware.NewPageCache(cfg.Cache, rdb, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	publisher := service.NewPublisher(cfg.Events, log)

	h := handler.New(handler.Deps{
		Venues:  repository.NewVenueRepo(db),
		Artists: repository.NewArtistRepo(db),
		Shows:   repository.NewShowRepo(db),
		DB:      db,
		Cache:   pageCache,
		Events:  publisher,
		Log:     log,
		Loc:     loc,
	})

	secure := cfg.Env == logger.EnvProd
	e := router.New(h, router.Deps{
		Log:           log,
		Renderer:      renderer,
		Flash:         session.NewStore(cfg.HTTP.SecretKey, flashTTL, secure),
		Metrics:       middleware.NewMetrics(reg),
		Cache:         pageCache,
		Limit:         middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
		Admin:         middleware.RequireAdmin(cfg.Admin),
		CSRF:          cfg.HTTP.CSRFEnabled,
		SecureCookies: secure,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		publisher.Run(ctx)
	}()
	if cfg.Events.Enabled && cfg.Events.Consume {
		var notifier queue.Notifier
		tg, err := notify.NewTelegram(cfg.Telegram, log)
		if err != nil {
			log.Warn("telegram disabled", sl.Err(err))
		} else if tg != nil {
			notifier = tg
		}
		consumer := queue.NewConsumer(cfg.Events, notifier, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("activity consumer stopped", sl.Err(err))
			}
		}()
	}

	addr := ":" + cfg.HTTP.Port
	go func() {
		log.Info("listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", sl.Err(err))
	}
	wg.Wait()
	log.Info("stopped")
}
