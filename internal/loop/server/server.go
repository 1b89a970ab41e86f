// Package server hosts many independent game sessions in one process. It
// hands each connection its own session wired to shared sprites and
// storage, and coordinates graceful shutdown.
package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/score"
	"github.com/tomz197/spacedodge/internal/storage"
)

// Options configures a server.
type Options struct {
	Store    storage.Store   // High score persistence shared by all players
	Sprites  *assets.Library // Shared sprite cache
	Profile  config.Profile
	AutoFire bool
	Logger   *log.Logger
}

// Server tracks connected players.
type Server struct {
	store    storage.Store
	sprites  *assets.Library
	profile  config.Profile
	autoFire bool
	logger   *log.Logger

	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	Session  *session.Session
}

// NewServer creates a server. Sprites start loading immediately.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	store := opts.Store
	if store == nil {
		store = storage.NewMemory()
	}
	sprites := opts.Sprites
	if sprites == nil {
		sprites = assets.NewLibrary(logger)
	}
	sprites.Preload()

	return &Server{
		store:        store,
		sprites:      sprites,
		profile:      opts.Profile,
		autoFire:     opts.AutoFire,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		shutdown:     make(chan struct{}),
	}
}

// HighScoreKey is the storage key for a player's high score. Anonymous
// players share the default key.
func HighScoreKey(username string) string {
	if username == "" {
		return config.HighScoreKey
	}
	return config.HighScoreKey + ":" + username
}

// RegisterClient creates a session for a new connection and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	logger := s.logger.With("client", id, "user", username)
	handle := &ClientHandle{
		ID:       id,
		Username: username,
		Session: session.New(session.Options{
			Profile:    s.profile,
			HighScores: score.NewHighScores(s.store, HighScoreKey(username), logger),
			Logger:     logger,
			AutoFire:   s.autoFire,
		}),
	}

	s.mu.Lock()
	s.clients[id] = handle
	count := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("Client connected", "client", id, "user", username, "players", count)
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	_, ok := s.clients[clientID]
	delete(s.clients, clientID)
	count := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.logger.Info("Client disconnected", "client", clientID, "players", count)
	}
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Sprites returns the shared sprite cache.
func (s *Server) Sprites() *assets.Library {
	return s.sprites
}

// ShutdownCh is closed once Shutdown has been called.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdown
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.shutdownOnce.Do(func() { close(s.shutdown) })

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("Shutdown timed out with clients still connected", "players", s.Players())
			return
		case <-ticker.C:
		}
	}
}
