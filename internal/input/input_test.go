package input

import (
	"testing"
	"time"
)

func streamWith(now time.Time, data string) *Stream {
	s := newStream()
	s.now = func() time.Time { return now }
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
	return s
}

func TestReadInputActions(t *testing.T) {
	now := time.Unix(100, 0)

	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"fire", " ", func(in Input) bool { return in.Fire }},
		{"pause", "p", func(in Input) bool { return in.Pause }},
		{"pause upper", "P", func(in Input) bool { return in.Pause }},
		{"restart", "r", func(in Input) bool { return in.Restart }},
		{"start", "\r", func(in Input) bool { return in.Start }},
		{"quit", "q", func(in Input) bool { return in.Quit }},
		{"ctrl-c", "\x03", func(in Input) bool { return in.Quit }},
		{"wasd left", "a", func(in Input) bool { return in.Left && !in.Right }},
		{"wasd down", "s", func(in Input) bool { return in.Down && !in.Up }},
		{"caps lock", "D", func(in Input) bool { return in.Right && !in.Fire }},
		{"vi up", "k", func(in Input) bool { return in.Up }},
		{"unknown escape", "\x1b[Z", func(in Input) bool { return !in.Left && !in.Up && !in.Quit }},
		{"arrow up", "\x1b[A", func(in Input) bool { return in.Up && !in.Fire }},
		{"arrow down", "\x1b[B", func(in Input) bool { return in.Down }},
		{"arrow right", "\x1b[C", func(in Input) bool { return in.Right }},
		{"arrow left", "\x1b[D", func(in Input) bool { return in.Left }},
		{"combo", "d w ", func(in Input) bool { return in.Right && in.Up && in.Fire }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ReadInput(streamWith(now, tt.bytes))
			if !tt.check(in) {
				t.Fatalf("unexpected input %+v for %q", in, tt.bytes)
			}
			if !in.Any() {
				t.Fatal("Any() = false with pressed bytes")
			}
		})
	}
}

func TestMovementIsHeldButActionsAreEdges(t *testing.T) {
	now := time.Unix(100, 0)
	s := streamWith(now, "a ")

	first := ReadInput(s)
	if !first.Left || !first.Fire {
		t.Fatalf("first frame = %+v", first)
	}

	now = now.Add(keyHoldDuration / 2)
	s.now = func() time.Time { return now }
	second := ReadInput(s)
	if !second.Left {
		t.Fatal("movement key should still be held within the hold window")
	}
	if second.Fire || second.Any() {
		t.Fatalf("edge action repeated: %+v", second)
	}

	now = now.Add(keyHoldDuration)
	third := ReadInput(s)
	if third.Left {
		t.Fatal("movement key held past the hold window")
	}
}

func TestResetKeyInput(t *testing.T) {
	now := time.Unix(100, 0)
	s := streamWith(now, "d")
	ReadInput(s)
	ResetKeyInput(s)
	if ReadInput(s).Right {
		t.Fatal("held key survived ResetKeyInput")
	}
	ResetKeyInput(nil)
}

func TestClosedStreamQuits(t *testing.T) {
	s := newStream()
	close(s.ch)
	if !ReadInput(s).Quit {
		t.Fatal("closed stream should report Quit")
	}
}
