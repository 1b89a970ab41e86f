package score

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/storage"
)

// HighScores persists a single high score under a fixed key.
type HighScores struct {
	store  storage.Store
	key    string
	logger *log.Logger
}

// NewHighScores creates a high score adapter over store.
// A nil logger falls back to log.Default().
func NewHighScores(store storage.Store, key string, logger *log.Logger) *HighScores {
	if logger == nil {
		logger = log.Default()
	}
	return &HighScores{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// Key returns the storage key.
func (h *HighScores) Key() string {
	return h.key
}

// Load returns the stored high score. Missing, malformed or unreadable
// values load as 0.
func (h *HighScores) Load(ctx context.Context) int {
	raw, err := h.store.Get(ctx, h.key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0
	}
	if err != nil {
		h.logger.Warn("Failed to load high score", "key", h.key, "err", err)
		return 0
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		h.logger.Warn("Ignoring malformed high score", "key", h.key, "value", raw)
		return 0
	}
	return v
}

// Save stores the high score.
func (h *HighScores) Save(ctx context.Context, v int) error {
	return h.store.Set(ctx, h.key, strconv.Itoa(v))
}
