package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medic/supportbot/internal/chat"
	"github.com/medic/supportbot/internal/config"
	"github.com/medic/supportbot/internal/db"
	"github.com/medic/supportbot/internal/engine"
	"github.com/medic/supportbot/internal/faq"
	httpapi "github.com/medic/supportbot/internal/http"
	"github.com/medic/supportbot/internal/intent"
	"github.com/medic/supportbot/internal/lookup"
	"github.com/medic/supportbot/internal/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "supportbot").Logger()

	engineCfg, err := cfg.Engine()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid engine config")
	}

	ctx := context.Background()
	var (
		store      profile.Store
		transcript chat.Transcript = chat.NewMemoryTranscript()
	)
	switch cfg.ProfileStore {
	case "postgres":
		pg, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		store, transcript = pg, pg
	case "redis":
		rs := profile.NewRedisStore(profile.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.ProfileTTL,
		})
		defer rs.Close()
		store = rs
	default:
		store = profile.NewMemoryStore()
	}
	logger.Info().Str("store", cfg.ProfileStore).Msg("profile store ready")

	var client lookup.Client
	if cfg.LookupURL == "" {
		client = lookup.MockClient{}
		logger.Info().Msg("using mock member lookup")
	} else {
		client = lookup.NewHTTPClient(cfg.LookupURL, cfg.LookupTimeout, logger)
	}

	kb := faq.Default()
	svc := &chat.Service{
		Router:     engine.NewRouter(engineCfg, intent.Default(), kb),
		Profiles:   store,
		Transcript: transcript,
		Lookup:     client,
		Logger:     logger,
	}

	router := httpapi.Router(cfg, httpapi.Deps{Chat: svc, FAQ: kb, Hours: engineCfg.Hours, Store: store}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
