package main

import (
	"context"
	"os"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/desktop"
	"github.com/tomz197/spacedodge/internal/logging"
	gameconfig "github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/score"
	"github.com/tomz197/spacedodge/internal/storage"
)

func main() {
	logger, logCloser, err := logging.FromEnv("desktop", os.Stderr)
	if err != nil {
		logger.Error("Failed to open log file", "err", err)
	}
	defer logCloser.Close()

	profile, err := gameconfig.ProfileFromEnv(gameconfig.Classic.Name)
	if err != nil {
		logger.Fatal("Invalid difficulty profile", "err", err)
	}

	store, storeCloser, err := storage.Open(context.Background(), config.GetEnv("SPACEDODGE_DB", storage.DefaultPath("spacedodge")))
	if err != nil {
		logger.Warn("High scores will not persist", "err", err)
		store, storeCloser, _ = storage.Open(context.Background(), "")
	}
	defer storeCloser.Close()

	s := session.New(session.Options{
		Profile:    profile,
		HighScores: score.NewHighScores(store, config.GetEnv("SPACEDODGE_SCORE_KEY", gameconfig.HighScoreKey), logger),
		Logger:     logger,
		AutoFire:   config.GetEnvBool("SPACEDODGE_AUTOFIRE", false),
	})

	logger.Info("Opening window", "profile", profile.Name)
	if err := desktop.Run(desktop.Options{Session: s, Logger: logger}); err != nil {
		logger.Error("Game error", "err", err)
		storeCloser.Close()
		os.Exit(1)
	}
}
