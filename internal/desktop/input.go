package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/starfall/internal/input"
)

// KeySource reports keyboard state.
type KeySource interface {
	Pressed(ebiten.Key) bool
	JustPressed(ebiten.Key) bool
}

// ebitenKeys reads the keyboard through ebiten.
type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func anyPressed(k KeySource, keys ...ebiten.Key) bool {
	for _, key := range keys {
		if k.Pressed(key) {
			return true
		}
	}
	return false
}

func anyJustPressed(k KeySource, keys ...ebiten.Key) bool {
	for _, key := range keys {
		if k.JustPressed(key) {
			return true
		}
	}
	return false
}

// readKeys maps the keyboard to one frame of input. Movement is held; actions fire on press.
func readKeys(k KeySource) input.Input {
	return input.Input{
		Left:  anyPressed(k, ebiten.KeyArrowLeft, ebiten.KeyA),
		Right: anyPressed(k, ebiten.KeyArrowRight, ebiten.KeyD),
		Up:    anyPressed(k, ebiten.KeyArrowUp, ebiten.KeyW),
		Down:  anyPressed(k, ebiten.KeyArrowDown, ebiten.KeyS),

		Fire:    anyJustPressed(k, ebiten.KeySpace),
		Pause:   anyJustPressed(k, ebiten.KeyP, ebiten.KeyEscape),
		Restart: anyJustPressed(k, ebiten.KeyR),
		Start:   anyJustPressed(k, ebiten.KeyEnter),
		Quit:    anyJustPressed(k, ebiten.KeyQ),
	}
}
