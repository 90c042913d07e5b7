package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a simple UI widget for a bounded value
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64
	dragging bool // grabbed inside the bar, follows the cursor until release
}

// NewSlider creates a new slider, Value is clamped into [min, max]
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     12,
	}
	s.Value = s.clamp(value)
	return s
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	s.Handle(CurrentInput())
}

// Handle moves the value under the cursor while the bar is grabbed. Only a
// press starting on the bar grabs it.
func (s *Slider) Handle(in Input) {
	if !in.Pressed {
		s.dragging = false
		return
	}
	if in.JustPressed && in.over(s.X, s.Y, s.W, s.H) {
		s.dragging = true
	}
	if s.dragging && s.W > 0 {
		// Calculate value based on horizontal position
		p := (in.X - s.X) / s.W
		s.Value = s.clamp(s.Min + p*(s.Max-s.Min))
	}
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	// Draw Background (Dark Gray)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	// Draw Value Bar (Light Gray/White)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	// Value on the right of the label line
	ebitenutil.DebugPrintAt(screen, formatValue(s.Value), int(s.X+s.W-60), int(s.Y-15))
}

func formatValue(v float64) string {
	switch {
	case v != 0 && math.Abs(v) < 0.01:
		return fmt.Sprintf("%.1e", v)
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
