package loop

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

	"github.com/tomz197/spacedodge/internal/loop/config"
)

func TestRunQuitsOnQ(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, Options{
			Profile:      config.Classic,
			Logger:       log.New(io.Discard),
			TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("game did not quit")
	}
	assert.Contains(t, out.String(), "\033[?25h", "cursor restored")
}
