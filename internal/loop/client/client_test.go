package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/session"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T, r io.Reader, w io.Writer) (*Client, *session.Session) {
	t.Helper()
	logger := log.New(io.Discard)
	calm := config.Classic
	calm.SpawnChance = 0
	s := session.New(session.Options{Profile: calm, Logger: logger})
	lib := assets.NewLibrary(logger)
	lib.Preload()

	c := NewClient(bufio.NewReader(r), w, Options{
		Session:      s,
		Sprites:      lib,
		TermSizeFunc: fixedSize(80, 24),
		Logger:       logger,
	})
	return c, s
}

func TestClampTermSize(t *testing.T) {
	cases := []struct {
		name               string
		w, h               int
		rw, rh, offC, offR int
	}{
		{"fits", 80, 24, 80, 24, 0, 0},
		{"too wide", config.MaxTermWidth + 20, 24, config.MaxTermWidth, 24, 10, 0},
		{"too tall", 80, config.MaxTermHeight + 11, 80, config.MaxTermHeight, 0, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rw, rh, offC, offR := clampTermSize(tc.w, tc.h)
			assert.Equal(t, []int{tc.rw, tc.rh, tc.offC, tc.offR}, []int{rw, rh, offC, offR})
		})
	}
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	var out bytes.Buffer
	c, _ := newTestClient(t, strings.NewReader(""), &out)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
	assert.Contains(t, out.String(), "\033[?1003h")
	assert.Contains(t, out.String(), "\033[?1003l")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c, _ := newTestClient(t, pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
}

func TestMouseClickStartsGame(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	c, s := newTestClient(t, pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Readiness().WatchSprites(ctx, c.sprites)
	c.updateScreen()
	require.Eventually(t, s.Readiness().Ready, 2*time.Second, 5*time.Millisecond)

	now := time.Now()
	snap := s.Tick(now)
	require.True(t, snap.Ready)
	require.NoError(t, c.drawFrame(snap))
	assert.Contains(t, out.String(), "Controls")

	go pw.Write([]byte("\x1b[<0;41;13M"))
	require.Eventually(t, func() bool {
		c.processInput()
		return c.state.mouseHeld
	}, time.Second, 5*time.Millisecond)

	assert.InDelta(t, 243.0, c.state.pointerX, 1e-6)
	assert.InDelta(t, 25/0.15, c.state.pointerY, 1e-6)

	snap = s.Tick(now.Add(config.ClientTargetFrameTime))
	assert.Equal(t, session.PhaseActive, snap.Phase)
	assert.True(t, snap.ControlActive)

	go pw.Write([]byte("\x1b[<0;41;13m"))
	require.Eventually(t, func() bool {
		c.processInput()
		return !c.state.mouseHeld
	}, time.Second, 5*time.Millisecond)
}

func TestAutoFireToggle(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c, s := newTestClient(t, pr, io.Discard)

	go pw.Write([]byte("f"))
	require.Eventually(t, func() bool {
		c.processInput()
		return s.AutoFire()
	}, time.Second, 5*time.Millisecond)
}

func TestShutdownCountdown(t *testing.T) {
	shutdown := make(chan struct{})
	close(shutdown)
	c, _ := newTestClient(t, strings.NewReader(""), io.Discard)
	c.shutdown = shutdown

	c.processServerEvents(context.Background())
	require.True(t, c.state.shuttingDown)
	assert.InDelta(t, config.ShutdownDisplaySeconds, c.state.shutdownTimer, 1e-9)

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	c.updateShutdownState()
	assert.False(t, c.state.Running)
}
