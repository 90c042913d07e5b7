package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the mouse state widgets react to, sampled once per frame.
type Input struct {
	X, Y        float64
	Pressed     bool // left button held
	JustPressed bool // left button went down this frame
	WheelY      float64
}

// CurrentInput samples the mouse through ebiten.
func CurrentInput() Input {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Input{
		X:           float64(mx),
		Y:           float64(my),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		WheelY:      dy,
	}
}

// released is in with the button up, as seen by a widget losing the cursor.
func (in Input) released() Input {
	in.Pressed, in.JustPressed = false, false
	return in
}

func (in Input) over(x, y, w, h float64) bool {
	return in.X >= x && in.X <= x+w && in.Y >= y && in.Y <= y+h
}
