package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/logging"
	"github.com/tomz197/spacedodge/internal/loop/client"
	gameconfig "github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/server"
	"github.com/tomz197/spacedodge/internal/storage"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDBPath      = "/app/data/spacedodge.db"
)

func main() {
	logger, logCloser, err := logging.FromEnv("ssh", os.Stderr)
	if err != nil {
		logger.Error("Failed to open log file", "err", err)
	}
	defer logCloser.Close()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dbPath := config.GetEnv("SPACEDODGE_DB", defaultDBPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "db", dbPath)

	profile, err := gameconfig.ProfileFromEnv(gameconfig.Arcade.Name)
	if err != nil {
		logger.Fatal("Invalid difficulty profile", "err", err)
	}

	store, storeCloser, err := storage.Open(context.Background(), dbPath)
	if err != nil {
		logger.Fatal("Failed to open high score database", "err", err)
	}
	defer storeCloser.Close()

	// Shared by all SSH clients
	gameServer := server.NewServer(server.Options{
		Store:    store,
		Profile:  profile,
		AutoFire: config.GetEnvBool("SPACEDODGE_AUTOFIRE", false),
		Logger:   logger,
	})

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(gameServer, logger),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect; sessions save their
	// high scores on the way out.
	logger.Info("Notifying connected players about shutdown...", "players", gameServer.Players())
	gameServer.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(gameServer *server.Server, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("New game session", "user", sess.User(), "terminal", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			handle := gameServer.RegisterClient(sess.User())
			defer gameServer.UnregisterClient(handle.ID)

			c := client.NewClient(bufio.NewReader(sess), sess, client.Options{
				Session:      handle.Session,
				Sprites:      gameServer.Sprites(),
				TermSizeFunc: sizeTracker.getSize,
				Renderer:     lipgloss.NewRenderer(sess),
				Username:     sess.User(),
				Logger:       logger.With("user", sess.User()),
				Shutdown:     gameServer.ShutdownCh(),
				Players:      gameServer.Players,
			})
			if err := c.Run(sess.Context()); err != nil {
				logger.Error("Game error", "user", sess.User(), "err", err)
			}

			logger.Info("Session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
