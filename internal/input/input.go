// Package input turns raw terminal bytes into logical game actions.
package input

import (
	"bufio"
	"time"
)

// Terminals report presses but never releases, so a movement key counts as held until
// keyHoldDuration after its last press. Auto-repeat keeps refreshing it.
const keyHoldDuration = 80 * time.Millisecond

// Input is one frame of player intent. Movement is level-triggered. The action flags are
// only set on the frame the key arrived.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Fire    bool
	Pause   bool
	Restart bool
	Start   bool
	Quit    bool

	Pressed []byte // raw bytes received this frame
}

// Any reports whether any key was pressed this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

type direction int

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	numDirections
)

var (
	// Arrow keys arrive as ESC [ A..D.
	arrowKeys = map[byte]direction{'A': dirUp, 'B': dirDown, 'C': dirRight, 'D': dirLeft}

	// WASD and vi keys, either case.
	moveKeys = map[byte]direction{
		'a': dirLeft, 'h': dirLeft,
		'd': dirRight, 'l': dirRight,
		'w': dirUp, 'k': dirUp,
		's': dirDown, 'j': dirDown,
	}
)

// Stream delivers input bytes over a channel and remembers when each direction was last pressed.
type Stream struct {
	ch       chan byte
	lastMove [numDirections]time.Time
	now      func() time.Time
}

// StartStream reads r on its own goroutine until it fails, then closes the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// drain returns whatever bytes are queued without blocking, and whether the reader has gone.
func (s *Stream) drain() (buf []byte, closed bool) {
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return buf, true
			}
			buf = append(buf, b)
		default:
			return buf, false
		}
	}
}

func (s *Stream) held(d direction, now time.Time) bool {
	return now.Sub(s.lastMove[d]) < keyHoldDuration
}

// ReadInput decodes everything buffered on s into one frame of input. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	now := s.now()
	buf, closed := s.drain()
	in := Input{Pressed: buf, Quit: closed}

	for i := 0; i < len(buf); i++ {
		if buf[i] == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if d, ok := arrowKeys[buf[i+2]]; ok {
				s.lastMove[d] = now
			}
			i += 2
			continue
		}
		b := lower(buf[i])
		if d, ok := moveKeys[b]; ok {
			s.lastMove[d] = now
			continue
		}
		in.applyAction(b)
	}

	in.Left = s.held(dirLeft, now)
	in.Right = s.held(dirRight, now)
	in.Up = s.held(dirUp, now)
	in.Down = s.held(dirDown, now)
	return in
}

func (in *Input) applyAction(b byte) {
	switch b {
	case 'q', 0x03: // Ctrl+C is a plain byte in raw mode
		in.Quit = true
	case ' ':
		in.Fire = true
	case 'p':
		in.Pause = true
	case 'r':
		in.Restart = true
	case '\n', '\r':
		in.Start = true
	}
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

// ResetKeyInput forgets held movement keys, e.g. when a new game starts.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.lastMove = [numDirections]time.Time{}
}
