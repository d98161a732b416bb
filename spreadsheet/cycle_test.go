package spreadsheet

import "testing"

func TestHasCycleDetectsSelfLoop(t *testing.T) {
	g, err := NewGrid(5, 5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a1 := Coordinate{Row: 1, Col: 1}
	g.GetCoord(a1).addDependent(a1)

	if !g.hasCycle(a1) {
		t.Fatalf("hasCycle(A1) = false, want true for a self-loop")
	}
	if g.GetCoord(a1).visited {
		t.Fatalf("visited not reset after hasCycle")
	}
}

func TestHasCycleFalseOnDAG(t *testing.T) {
	g, err := NewGrid(5, 5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a1 := Coordinate{Row: 1, Col: 1}
	b1 := Coordinate{Row: 1, Col: 2}
	c1 := Coordinate{Row: 1, Col: 3}
	g.GetCoord(a1).addDependent(b1)
	g.GetCoord(b1).addDependent(c1)

	if g.hasCycle(a1) {
		t.Fatalf("hasCycle(A1) = true, want false for acyclic chain")
	}
	for _, at := range []Coordinate{a1, b1, c1} {
		if g.GetCoord(at).visited {
			t.Fatalf("visited not reset on %v after hasCycle", at)
		}
	}
}

func TestHasCycleFalseOnDiamond(t *testing.T) {
	g, err := NewGrid(5, 5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a1 := Coordinate{Row: 1, Col: 1}
	b1 := Coordinate{Row: 1, Col: 2}
	c1 := Coordinate{Row: 1, Col: 3}
	d1 := Coordinate{Row: 1, Col: 4}
	g.GetCoord(a1).addDependent(b1)
	g.GetCoord(a1).addDependent(c1)
	g.GetCoord(b1).addDependent(d1)
	g.GetCoord(c1).addDependent(d1)

	if g.hasCycle(a1) {
		t.Fatalf("hasCycle(A1) = true, want false for a converging DAG (diamond)")
	}
	for _, at := range []Coordinate{a1, b1, c1, d1} {
		if g.GetCoord(at).visited {
			t.Fatalf("visited not reset on %v after hasCycle", at)
		}
	}
}

func TestHasCycleLongerLoop(t *testing.T) {
	g, err := NewGrid(5, 5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a1 := Coordinate{Row: 1, Col: 1}
	a2 := Coordinate{Row: 2, Col: 1}
	a3 := Coordinate{Row: 3, Col: 1}
	g.GetCoord(a1).addDependent(a2)
	g.GetCoord(a2).addDependent(a3)
	g.GetCoord(a3).addDependent(a1)

	if !g.hasCycle(a1) {
		t.Fatalf("hasCycle(A1) = false, want true for a 3-cell loop")
	}
}
