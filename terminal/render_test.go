package terminal

import "testing"

func TestViewportClampsToGridEdges(t *testing.T) {
	vp := NewViewport(10, 10)
	vp.Up()
	if vp.TopRow != 1 {
		t.Fatalf("TopRow = %d after Up at origin, want 1", vp.TopRow)
	}
	vp.Left()
	if vp.TopCol != 1 {
		t.Fatalf("TopCol = %d after Left at origin, want 1", vp.TopCol)
	}
}

func TestViewportScrollToClamps(t *testing.T) {
	vp := NewViewport(20, 20)
	vp.ScrollTo(999, 999)
	if vp.TopRow > vp.maxTopRow() || vp.TopCol > vp.maxTopCol() {
		t.Fatalf("ScrollTo did not clamp: %+v", vp)
	}
}
