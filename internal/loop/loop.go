// Package loop runs a single local game in the current terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/client"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/server"
	"github.com/tomz197/spacedodge/internal/storage"
)

// Options configures a local game.
type Options struct {
	Store        storage.Store // High score persistence
	Profile      config.Profile
	AutoFire     bool
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
}

// Run plays one local game until the player quits or ctx ends.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	gs := server.NewServer(server.Options{
		Store:    opts.Store,
		Profile:  opts.Profile,
		AutoFire: opts.AutoFire,
		Logger:   opts.Logger,
	})

	handle := gs.RegisterClient("")
	defer gs.UnregisterClient(handle.ID)

	c := client.NewClient(r, w, client.Options{
		Session:      handle.Session,
		Sprites:      gs.Sprites(),
		TermSizeFunc: opts.TermSizeFunc,
		Logger:       opts.Logger,
	})
	return c.Run(ctx)
}
