// Package input turns a raw terminal byte stream into per-frame key and
// mouse state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last byte.
// Terminals send no key-up events, only auto-repeat.
const keyHoldDuration = 30 * time.Millisecond

// MouseKind classifies a mouse report.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MousePress
	MouseRelease
	MouseWheel
)

// MouseEvent is one SGR (1006) mouse report. Col and Row are 1-based
// terminal coordinates.
type MouseEvent struct {
	Kind   MouseKind
	Button int // 0 left, 1 middle, 2 right; wheel: 0 up, 1 down
	Col    int
	Row    int
}

// Input is one frame of input.
type Input struct {
	Quit     bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	Space    bool
	Enter    bool
	AutoFire bool   // Toggle key seen this frame
	Pressed  []byte // Raw bytes read this frame, mouse reports excluded
	Mouse    []MouseEvent
}

// key is a held key tracked by the stream.
type key int

const (
	keyNone key = iota
	keyQuit
	keyLeft
	keyRight
	keyUp
	keyDown
	keySpace
	keyEnter
	numKeys
)

// keyFor maps a single byte to the key it holds.
func keyFor(b byte) key {
	switch b {
	case 'q', 'Q':
		return keyQuit
	case 'a', 'A':
		return keyLeft
	case 'd', 'D':
		return keyRight
	case 'w', 'W':
		return keyUp
	case 's', 'S':
		return keyDown
	case ' ':
		return keySpace
	case '\n', '\r':
		return keyEnter
	}
	return keyNone
}

// arrowKeys maps the final byte of ESC [ A..D to its key.
var arrowKeys = map[byte]key{
	'A': keyUp,
	'B': keyDown,
	'C': keyRight,
	'D': keyLeft,
}

// Stream delivers input bytes via a channel and remembers when each key
// was last seen, so keys hold across frames.
type Stream struct {
	ch       chan byte
	seen     [numKeys]time.Time
	autoFire bool
	pending  []byte // Incomplete escape sequence carried to the next frame
	closed   bool
	mouse    []MouseEvent
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream(128)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(size int) *Stream {
	return &Stream{ch: make(chan byte, size)}
}

// ReadInput drains all available bytes from the stream without blocking and
// returns the frame's input. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.drain()
	s.mouse = s.mouse[:0]
	pressed := buf[:0:0]

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' || i+2 >= len(buf) || buf[i+1] != '[' {
			s.press(b, now)
			pressed = append(pressed, b)
			continue
		}

		// SGR mouse report: ESC [ < b ; x ; y (M|m)
		if buf[i+2] == '<' {
			ev, n, ok := parseMouse(buf[i+3:])
			if n < 0 {
				s.pending = append([]byte(nil), buf[i:]...)
				break
			}
			if ok {
				s.mouse = append(s.mouse, ev)
			}
			i += 2 + n
			continue
		}

		if k, ok := arrowKeys[buf[i+2]]; ok {
			s.seen[k] = now
			pressed = append(pressed, buf[i:i+3]...)
			i += 2
			continue
		}
		pressed = append(pressed, b)
	}

	held := func(k key) bool {
		return now.Sub(s.seen[k]) < keyHoldDuration
	}
	in := Input{
		Quit:     s.closed || held(keyQuit),
		Left:     held(keyLeft),
		Right:    held(keyRight),
		Up:       held(keyUp),
		Down:     held(keyDown),
		Space:    held(keySpace),
		Enter:    held(keyEnter),
		AutoFire: s.autoFire,
		Pressed:  pressed,
		Mouse:    s.mouse,
	}
	s.autoFire = false
	return in
}

// drain returns the pending bytes plus everything buffered in the channel.
func (s *Stream) drain() []byte {
	buf := s.pending
	s.pending = nil
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// press records a single-byte key.
func (s *Stream) press(b byte, now time.Time) {
	if b == 'f' || b == 'F' {
		s.autoFire = true
		return
	}
	if k := keyFor(b); k != keyNone {
		s.seen[k] = now
	}
}

// maxMouseReport bounds how long an unterminated mouse report may grow
// before it is dropped as garbage.
const maxMouseReport = 32

// parseMouse parses the "b;x;y(M|m)" tail of an SGR mouse report.
// n is the number of bytes consumed, or -1 if the report is incomplete.
// ok is false for malformed reports, which are skipped.
func parseMouse(data []byte) (ev MouseEvent, n int, ok bool) {
	var fields [3]int
	field := 0
	for i, c := range data {
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';' && field < 2:
			field++
		case (c == 'M' || c == 'm') && field == 2:
			return mouseEvent(fields[0], fields[1], fields[2], c == 'm'), i + 1, true
		default:
			return MouseEvent{}, i + 1, false
		}
		if i >= maxMouseReport {
			return MouseEvent{}, i + 1, false
		}
	}
	return MouseEvent{}, -1, false
}

func mouseEvent(code, col, row int, release bool) MouseEvent {
	ev := MouseEvent{Button: code & 3, Col: col, Row: row}
	switch {
	case code&64 != 0:
		ev.Kind = MouseWheel
		ev.Button = code & 1
	case code&32 != 0:
		ev.Kind = MouseMove
	case release:
		ev.Kind = MouseRelease
	default:
		ev.Kind = MousePress
	}
	return ev
}
