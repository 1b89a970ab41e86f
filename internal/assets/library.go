package assets

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type entry struct {
	done   chan struct{}
	sprite *Sprite
	err    error
}

// Library loads sprites in the background once and shares them between
// every game session in the process.
type Library struct {
	logger *log.Logger

	mu      sync.Mutex
	entries map[Name]*entry
}

// NewLibrary returns an empty library.
func NewLibrary(logger *log.Logger) *Library {
	return &Library{
		logger:  logger,
		entries: make(map[Name]*entry),
	}
}

// Preload starts loading every known sprite without blocking.
func (l *Library) Preload() {
	for _, name := range Names {
		l.start(name)
	}
}

// start begins loading name if it is not already loading.
func (l *Library) start(name Name) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[name]; ok {
		return e
	}
	e := &entry{done: make(chan struct{})}
	l.entries[name] = e

	go func() {
		defer close(e.done)
		began := time.Now()
		e.sprite, e.err = Load(name)
		if e.err != nil {
			l.logger.Error("Sprite failed to load", "sprite", name, "err", e.err)
			return
		}
		l.logger.Debug("Sprite loaded", "sprite", name, "aspect", e.sprite.Aspect, "took", time.Since(began))
	}()
	return e
}

// Await blocks until name has finished loading or ctx is done.
func (l *Library) Await(ctx context.Context, name Name) (*Sprite, error) {
	e := l.start(name)
	select {
	case <-e.done:
		return e.sprite, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get returns a sprite if it has already loaded successfully.
func (l *Library) Get(name Name) (*Sprite, bool) {
	l.mu.Lock()
	e, ok := l.entries[name]
	l.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-e.done:
		return e.sprite, e.err == nil
	default:
		return nil, false
	}
}

// Notify calls fn from a new goroutine for each sprite as soon as it
// finishes loading. Sprites still loading when ctx ends are skipped.
func (l *Library) Notify(ctx context.Context, fn func(name Name, sprite *Sprite, err error)) {
	for _, name := range Names {
		go func(name Name) {
			sprite, err := l.Await(ctx, name)
			if ctx.Err() != nil {
				return
			}
			fn(name, sprite, err)
		}(name)
	}
}
