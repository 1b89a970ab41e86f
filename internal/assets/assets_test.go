package assets

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSprites(t *testing.T) {
	ship, err := Load(Ship)
	require.NoError(t, err)
	assert.InDelta(t, 48.0/40.0, ship.Aspect, 1e-9)
	assert.Equal(t, baseWidth, ship.Image().Bounds().Dx())
	assert.Equal(t, 154, ship.Image().Bounds().Dy())

	// Nose tip is empty space, body center is painted.
	_, _, _, a := ship.Image().At(2, 2).RGBA()
	assert.Zero(t, a)
	_, _, _, a = ship.Image().At(baseWidth/2, 100).RGBA()
	assert.NotZero(t, a)

	rock, err := Load(Asteroid)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rock.Aspect, 1e-9)
}

func TestLoadUnknownSprite(t *testing.T) {
	_, err := Load("planet")
	require.ErrorIs(t, err, ErrUnknownSprite)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("bad", []byte("not an svg"))
	assert.Error(t, err)
}

func TestScaledIsCached(t *testing.T) {
	s, err := Load(Asteroid)
	require.NoError(t, err)

	a := s.Scaled(12, 12)
	assert.Equal(t, 12, a.Bounds().Dx())
	assert.Same(t, a, s.Scaled(12, 12))

	tiny := s.Scaled(0, -3)
	assert.Equal(t, 1, tiny.Bounds().Dx())
	assert.Equal(t, 1, tiny.Bounds().Dy())
}

func TestLibraryNotify(t *testing.T) {
	lib := NewLibrary(log.New(io.Discard))
	lib.Preload()

	var (
		mu  sync.Mutex
		got = map[Name]error{}
		wg  sync.WaitGroup
	)
	wg.Add(len(Names))
	lib.Notify(context.Background(), func(name Name, s *Sprite, err error) {
		defer wg.Done()
		mu.Lock()
		got[name] = err
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sprites did not load")
	}

	assert.Len(t, got, len(Names))
	for _, name := range Names {
		assert.NoError(t, got[name], name)
		s, ok := lib.Get(name)
		assert.True(t, ok)
		assert.Equal(t, name, s.Name)
	}
}

func TestLibraryAwaitCancelled(t *testing.T) {
	lib := NewLibrary(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lib.Await(ctx, "planet")
	// Either the load error or the cancellation wins the race.
	assert.Error(t, err)
}
