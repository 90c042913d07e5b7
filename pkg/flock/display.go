package flock

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultLightness is the HSL lightness every agent is drawn with.
const DefaultLightness = 0.7

// Appearance is the display state of an agent. It is derived from the
// velocity every frame and never stored.
type Appearance struct {
	Heading    float64 // radians, [-Pi, Pi], 0 for a resting agent
	Hue        float64 // degrees, [0, 360]
	Saturation float64 // speed / max speed
	Lightness  float64
}

// Appear derives the appearance of an agent moving with v.
func Appear(v Velocity, maxSpeed, lightness float64) Appearance {
	heading := v.Heading()
	saturation := 0.0
	if maxSpeed > 0 {
		saturation = math.Min(v.Speed()/maxSpeed, 1)
	}
	return Appearance{
		Heading:    heading,
		Hue:        heading/math.Pi*180 + 180,
		Saturation: saturation,
		Lightness:  lightness,
	}
}

// Color returns the HSL colour of the appearance as sRGB.
func (a Appearance) Color() colorful.Color {
	return colorful.Hsl(a.Hue, a.Saturation, a.Lightness).Clamped()
}

// View is what the renderer needs to draw one agent.
type View struct {
	ID      int
	Pos     Position
	Heading float64
	Color   colorful.Color
}

// Views derives the per-frame output of the population.
func Views(agents []Agent, maxSpeed, lightness float64) []View {
	views := make([]View, len(agents))
	for i, a := range agents {
		look := Appear(a.Vel, maxSpeed, lightness)
		views[i] = View{
			ID:      a.ID,
			Pos:     a.Pos,
			Heading: look.Heading,
			Color:   look.Color(),
		}
	}
	return views
}
