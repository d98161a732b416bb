package terminal

import (
	"fmt"
	"io"

	"gridsheet/spreadsheet"
)

// windowHeight/windowWidth bound how many rows/columns the viewport
// shows at once; scrolled with w/a/s/d.
const (
	windowHeight = 10
	windowWidth  = 8
	cellWidth    = 10
)

// Viewport is the (top_row, top_col) origin of the visible window,
// clamped to the grid's bounds. It is mutated by Up/Down/Left/Right
// and ScrollTo statuses; the reactive core has no notion of it.
type Viewport struct {
	TopRow, TopCol int
	rows, cols     int
}

// NewViewport starts a viewport at (1,1) for a grid of the given size.
func NewViewport(rows, cols int) *Viewport {
	return &Viewport{TopRow: 1, TopCol: 1, rows: rows, cols: cols}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (v *Viewport) maxTopRow() int {
	return clamp(v.rows-windowHeight+1, 1, v.rows)
}

func (v *Viewport) maxTopCol() int {
	return clamp(v.cols-windowWidth+1, 1, v.cols)
}

// Up/Down/Left/Right scroll the viewport by one page, clamped to the
// grid's bounds (Non-goal in the reactive core itself; purely a
// rendering concern).
func (v *Viewport) Up()    { v.TopRow = clamp(v.TopRow-windowHeight, 1, v.maxTopRow()) }
func (v *Viewport) Down()  { v.TopRow = clamp(v.TopRow+windowHeight, 1, v.maxTopRow()) }
func (v *Viewport) Left()  { v.TopCol = clamp(v.TopCol-windowWidth, 1, v.maxTopCol()) }
func (v *Viewport) Right() { v.TopCol = clamp(v.TopCol+windowWidth, 1, v.maxTopCol()) }

// ScrollTo moves the viewport's origin (its top-left cell) to
// (row, col), clamped so the window never runs past the grid's edge.
func (v *Viewport) ScrollTo(row, col int) {
	v.TopRow = clamp(row, 1, v.maxTopRow())
	v.TopCol = clamp(col, 1, v.maxTopCol())
}

// Render prints the visible window of sheet as a grid, followed by the
// "[<elapsed-seconds>] (<status>) > " prompt line.
func Render(out io.Writer, sheet *spreadsheet.Sheet, vp *Viewport, elapsedSeconds float64, status spreadsheet.Status) {
	rows, cols := sheet.Grid().Size()
	lastRow := clamp(vp.TopRow+windowHeight-1, 1, rows)
	lastCol := clamp(vp.TopCol+windowWidth-1, 1, cols)

	fmt.Fprint(out, "     ")
	for c := vp.TopCol; c <= lastCol; c++ {
		fmt.Fprintf(out, "%-*s", cellWidth, spreadsheet.ColumnLabel(c))
	}
	fmt.Fprintln(out)

	for r := vp.TopRow; r <= lastRow; r++ {
		fmt.Fprintf(out, "%-5d", r)
		for c := vp.TopCol; c <= lastCol; c++ {
			v, ok := sheet.ValueAt(r, c)
			cellText := "ERR"
			if ok {
				cellText = fmt.Sprintf("%d", v)
			}
			fmt.Fprintf(out, "%-*s", cellWidth, cellText)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "[%.1f] (%s) > ", elapsedSeconds, status.Suffix())
}
