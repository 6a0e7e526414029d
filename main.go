package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/whoeats/internal/catalog"
	"github.com/robalobadob/whoeats/internal/config"
	"github.com/robalobadob/whoeats/internal/database"
	"github.com/robalobadob/whoeats/internal/history"
	"github.com/robalobadob/whoeats/internal/httpserver"
	"github.com/robalobadob/whoeats/internal/play"
	"github.com/robalobadob/whoeats/internal/stats"
	"github.com/robalobadob/whoeats/internal/store"
	"github.com/robalobadob/whoeats/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Server.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Server.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	if err := catalog.Init(cfg.Catalog.File); err != nil {
		log.Fatal().Err(err).Msg("failed to load animal catalog")
	}
	log.Info().Int("animals", catalog.Len()).Msg("catalog loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("telemetry setup")
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("telemetry shutdown")
			}
		}()
	}

	db, err := database.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open database")
	}
	defer db.Close()

	st := stats.NewStore(store.NewSQLSlot(db))
	rounds := history.NewStore(db)
	svc := play.New(store.NewMemoryStore(), st, catalog.All(), play.WithRounds(rounds))

	srv := httpserver.New(httpserver.Options{
		ClientOrigin:   cfg.Server.ClientOrigin,
		Production:     cfg.Server.Production,
		JWTSecret:      cfg.Auth.JWTSecret,
		JWTExpiresDays: cfg.Auth.JWTExpiresDays,
		CookieName:     cfg.Auth.CookieName,
		DailySalt:      cfg.Daily.Salt,
	}, svc, st, rounds, db)

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting whoeats server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
