// Package draw renders the playfield onto a terminal as coloured half-block cells.
package draw

import (
	"io"
	"math"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal control sequences.
const (
	ClearSequence      = termenv.CSI + "H" + termenv.CSI + "2J"
	hideCursorSequence = termenv.CSI + termenv.HideCursorSeq
	showCursorSequence = termenv.CSI + termenv.ShowCursorSeq
)

// Half-block glyphs. Each terminal cell shows two vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shades from lightest to darkest, used when the terminal has no colour support.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel maps an intensity in [0, 1] to a shade glyph. Any non-zero intensity is visible.
func ShadeLevel(intensity float64) rune {
	switch {
	case intensity <= 0:
		return Shades[0]
	case intensity >= 1:
		return Shades[len(Shades)-1]
	}
	return Shades[int(math.Ceil(intensity*float64(len(Shades)-1)))]
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process' own terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSize returns the terminal size reported by sizeFunc.
func TerminalSize(sizeFunc TermSizeFunc) (width, height int, err error) {
	return sizeFunc()
}

func ClearScreen(w io.Writer) {
	_, _ = io.WriteString(w, ClearSequence)
}

func HideCursor(w io.Writer) {
	_, _ = io.WriteString(w, hideCursorSequence)
}

func ShowCursor(w io.Writer) {
	_, _ = io.WriteString(w, showCursorSequence)
}
