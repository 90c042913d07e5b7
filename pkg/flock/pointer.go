package flock

// Pointer is the mouse state sampled by the host for one tick.
// X and Y are window-local pixels: origin top-left, y pointing down.
type Pointer struct {
	Inside bool // false when the cursor is outside the window
	X, Y   float64
	Left   bool // held: the cursor attracts
	Right  bool // held: the cursor repels
}

// NoPointer disables mouse interaction for a tick.
var NoPointer = Pointer{}

// Active reports whether the pointer can influence the flock this tick.
func (p Pointer) Active() bool {
	return p.Inside && (p.Left || p.Right)
}

// WorldPosition maps the cursor into the simulation frame of arena:
// centred on the window, y pointing up.
func (p Pointer) WorldPosition(arena Arena) Position {
	return NewPosition(p.X-arena.Width/2, -(p.Y - arena.Height/2))
}

// ScreenPoint maps a simulation position back to window pixels.
func ScreenPoint(pos Position, arena Arena) (x, y float64) {
	return pos.X + arena.Width/2, arena.Height/2 - pos.Y
}
