package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lojasmm/calbot/internal/bot"
	"github.com/lojasmm/calbot/internal/config"
	"github.com/lojasmm/calbot/internal/line"
	"github.com/lojasmm/calbot/internal/logger"
	"github.com/lojasmm/calbot/internal/nutrition"
	"github.com/lojasmm/calbot/internal/server"
	"github.com/lojasmm/calbot/internal/session"
	"github.com/lojasmm/calbot/internal/store"
	"github.com/rs/zerolog"
)

const (
	cleanupInterval = 30 * time.Minute
	eventRetention  = 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Stderr, "server", zerolog.InfoLevel).Fatal().Err(err).Msg("config")
	}

	log, err := logger.NewLogger("server", cfg.LogLevel)
	if err != nil {
		logger.New(os.Stderr, "server", zerolog.InfoLevel).Fatal().Err(err).Msg("logger")
	}

	db, err := store.NewBoltStore(cfg.DBPath())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath()).Msg("store")
	}
	defer db.Close()

	nutritionClient := nutrition.NewClient(nutrition.ClientConfig{
		BaseURL: cfg.NutritionixBaseURL,
		AppID:   cfg.NutritionixAppID,
		AppKey:  cfg.NutritionixAppKey,
		Timeout: cfg.NutritionixTimeout,
	})
	lineClient := line.NewClient(cfg.LineAPIBaseURL, cfg.ChannelAccessToken, 15*time.Second)
	sessionMgr := session.NewManager()

	// Periodic cleanup of stale per-user locks and old event ids
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			sessionMgr.Cleanup(time.Hour)
			removed, err := db.Cleanup(eventRetention)
			if err != nil {
				log.Err(err).Msg("event cleanup failed")
				continue
			}
			log.Debug().Int("removed", removed).Msg("event cleanup")
		}
	}()

	botHandler := bot.NewHandler(nutritionClient, lineClient, db, sessionMgr)
	webhookHandler := line.NewWebhookHandler(line.NewVerifier(cfg.ChannelSecret), botHandler.HandleEvent)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(log, webhookHandler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("calbot: listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("calbot: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Msg("shutdown")
		return
	}
	log.Info().Msg("calbot: stopped")
}
