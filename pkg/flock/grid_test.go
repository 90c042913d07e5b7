package flock

import "testing"

func TestGrid_rebuild(t *testing.T) {
	// 1. Setup: cell size 100
	g := newGrid(100)
	agents := []Agent{
		{ID: 0, Pos: NewPosition(50, 50)},   // cell 0,0
		{ID: 1, Pos: NewPosition(150, 50)},  // cell 1,0
		{ID: 2, Pos: NewPosition(-50, 150)}, // cell -1,1
		{ID: 3, Pos: NewPosition(-0.5, -0.5)},
	}

	// 2. Execute
	g.rebuild(agents)

	// 3. Verify
	contains := func(list []Agent, id int) bool {
		for _, a := range list {
			if a.ID == id {
				return true
			}
		}
		return false
	}

	if list := g.cells[gridKey{x: 0, y: 0}]; !contains(list, 0) || len(list) != 1 {
		t.Errorf("Expected only agent 0 in cell 0,0, got %v", list)
	}
	if list := g.cells[gridKey{x: 1, y: 0}]; !contains(list, 1) {
		t.Errorf("Expected agent 1 in cell 1,0, got %v", list)
	}
	if list := g.cells[gridKey{x: -1, y: 1}]; !contains(list, 2) {
		t.Errorf("Expected agent 2 in cell -1,1, got %v", list)
	}
	// negative coordinates floor, they do not truncate towards zero
	if list := g.cells[gridKey{x: -1, y: -1}]; !contains(list, 3) {
		t.Errorf("Expected agent 3 in cell -1,-1, got %v", list)
	}

	// 4. Rebuilding drops agents that moved away
	agents[1].Pos = NewPosition(50, 60)
	g.rebuild(agents)
	if list := g.cells[gridKey{x: 1, y: 0}]; len(list) != 0 {
		t.Errorf("Expected cell 1,0 to be empty after rebuild, got %v", list)
	}
	if list := g.cells[gridKey{x: 0, y: 0}]; len(list) != 2 {
		t.Errorf("Expected 2 agents in cell 0,0 after rebuild, got %v", list)
	}
}

func TestGrid_around(t *testing.T) {
	g := newGrid(100)
	agents := []Agent{
		{ID: 0, Pos: NewPosition(150, 150)}, // centre cell 1,1
		{ID: 1, Pos: NewPosition(50, 50)},   // neighbour 0,0
		{ID: 2, Pos: NewPosition(250, 250)}, // neighbour 2,2
		{ID: 3, Pos: NewPosition(350, 350)}, // too far, 3,3
		{ID: 4, Pos: NewPosition(150, 50)},  // neighbour 1,0
	}
	// bucket in reverse so around has to sort
	reversed := []Agent{agents[4], agents[3], agents[2], agents[1], agents[0]}
	g.rebuild(reversed)

	got := g.around(agents[0].Pos, nil)

	want := []int{0, 1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("Expected %d neighbours, got %d: %v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Expected neighbour %d to be agent %d, got agent %d", i, id, got[i].ID)
		}
	}
}

func TestCellSizeFor(t *testing.T) {
	tests := []struct {
		name string
		b    Behaviors
		want float64
	}{
		{"defaults", DefaultBehaviors(), 121},
		{"tiny radii", Behaviors{Separation: Behavior{Radius: 2}}, 10},
		{"cohesion dominates", Behaviors{Cohesion: Behavior{Radius: 300}, Separation: Behavior{Radius: 10}}, 301},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellSizeFor(tt.b); got != tt.want {
				t.Errorf("cellSizeFor() = %v, want %v", got, tt.want)
			}
		})
	}
}
