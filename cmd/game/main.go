package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/logging"
	"github.com/tomz197/spacedodge/internal/loop"
	gameconfig "github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/storage"
)

func main() {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "spacedodge needs an interactive terminal")
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to LOG_FILE.
	logger, logCloser, err := logging.FromEnv("game", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
	}
	defer logCloser.Close()

	profile, err := gameconfig.ProfileFromEnv(gameconfig.Classic.Name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, storeCloser, err := storage.Open(ctx, config.GetEnv("SPACEDODGE_DB", storage.DefaultPath("spacedodge")))
	if err != nil {
		logger.Warn("High scores will not persist", "err", err)
		store, storeCloser, _ = storage.Open(ctx, "")
	}
	defer storeCloser.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("Starting local game", "profile", profile.Name)
	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Store:    store,
		Profile:  profile,
		AutoFire: config.GetEnvBool("SPACEDODGE_AUTOFIRE", false),
		Logger:   logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
