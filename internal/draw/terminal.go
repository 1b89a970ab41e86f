package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1003h\033[?1006h" // Any-motion tracking, SGR coordinates
	seqMouseOff   = "\033[?1006l\033[?1003l"
)

// ChunkWriter collects one frame of overlay text and sends it in MTU-sized
// chunks so SSH clients see whole escape sequences. Positions passed to
// WriteAt are 1-based canvas cells; the letterbox offset is added here.
type ChunkWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the letterbox offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write implements io.Writer so the canvas can render into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends raw output, such as a control sequence.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt moves the cursor to a canvas cell and writes s there.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
	cw.buf.WriteString(s)
}

// Flush sends the frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	err := writeChunks(cw.out, cw.buf.String())
	cw.buf.Reset()
	if err != nil {
		return err
	}
	return cw.out.Flush()
}

// writeChunks writes data in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc returns the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterGame hides the cursor, turns on mouse reporting and clears the screen.
func EnterGame(w io.Writer) error {
	_, err := io.WriteString(w, seqHideCursor+seqMouseOn+seqClear)
	return err
}

// LeaveGame undoes EnterGame.
func LeaveGame(w io.Writer) error {
	_, err := io.WriteString(w, seqMouseOff+seqClear+seqShowCursor)
	return err
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	_, _ = io.WriteString(w, seqClear)
}
