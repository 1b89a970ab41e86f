package score

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/storage"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestHighScoresLoad(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	hs := NewHighScores(mem, "spaceDodgeHighScore", quietLogger())

	assert.Zero(t, hs.Load(ctx), "missing value loads as 0")

	cases := map[string]int{
		"900":    900,
		" 42\n":  42,
		"abc":    0,
		"":       0,
		"-10":    0,
		"12.5":   0,
		"999999": 999999,
	}
	for raw, want := range cases {
		require.NoError(t, mem.Set(ctx, hs.Key(), raw))
		assert.Equal(t, want, hs.Load(ctx), "raw %q", raw)
	}
}

func TestHighScoresSave(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	hs := NewHighScores(mem, "k", nil)

	require.NoError(t, hs.Save(ctx, 1200))
	v, err := mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1200", v)
	assert.Equal(t, 1200, hs.Load(ctx))
}

func TestHighScoresBrokenStore(t *testing.T) {
	hs := NewHighScores(brokenStore{}, "k", quietLogger())
	assert.Zero(t, hs.Load(context.Background()))
	assert.Error(t, hs.Save(context.Background(), 1))
}
