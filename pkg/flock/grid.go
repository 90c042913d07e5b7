package flock

import (
	"math"
	"slices"
)

type gridKey struct {
	x, y int
}

// grid is a uniform spatial hash. Cells are wider than the largest flocking
// radius, so the 3x3 block of cells around an agent holds every agent it
// could possibly see.
type grid struct {
	cellSize float64
	cells    map[gridKey][]Agent
}

func newGrid(cellSize float64) *grid {
	return &grid{
		cellSize: cellSize,
		cells:    make(map[gridKey][]Agent),
	}
}

// cellSizeFor returns a cell size strictly larger than every flocking radius.
// The extra unit absorbs rounding in the cell index computation.
func cellSizeFor(b Behaviors) float64 {
	maxRadius := math.Max(b.Separation.Radius, b.Alignment.Radius)
	maxRadius = math.Max(maxRadius, b.Cohesion.Radius)
	// Clamp to a minimum of 10 to avoid tiny grids
	return math.Max(maxRadius+1, 10.0)
}

// rebuild buckets agents, which must be sorted by ID, into their cells.
func (g *grid) rebuild(agents []Agent) {
	// Reset slices to length 0 but keep their capacity, so a steady flock
	// stops allocating after the first few ticks.
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for _, a := range agents {
		key := g.key(a.Pos)
		g.cells[key] = append(g.cells[key], a)
	}
}

func (g *grid) key(p Position) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// around collects the agents of the 3x3 block centred on p into buf, sorted
// by ID so the scan order matches the full scan.
func (g *grid) around(p Position, buf []Agent) []Agent {
	k := g.key(p)
	buf = buf[:0]
	for i := k.x - 1; i <= k.x+1; i++ {
		for j := k.y - 1; j <= k.y+1; j++ {
			buf = append(buf, g.cells[gridKey{x: i, y: j}]...)
		}
	}
	slices.SortFunc(buf, compareID)
	return buf
}
