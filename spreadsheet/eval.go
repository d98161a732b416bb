package spreadsheet

import (
	"math"
	"time"
)

// SleepFunc performs the blocking wait for a Sleep cell. It is a
// package variable (not a hardcoded time.Sleep call) purely so tests
// can substitute a fast fake; production code never overrides it.
var SleepFunc = time.Sleep

// resolve reads an operand's current (value, valid) pair: a literal is
// always valid, a cell reference reads the referenced cell's current
// value and validity.
func (g *Grid) resolve(o *Operand) (int64, bool) {
	if o.IsCellRef() {
		c := g.GetCoord(o.Ref)
		return c.Value, c.Valid
	}
	return o.Literal, true
}

// evaluate reads cell's formula and writes its value/valid fields. A
// cell with no formula (never assigned) or a structurally absent
// operand is left untouched.
func (g *Grid) evaluate(at Coordinate) {
	cell := g.GetCoord(at)
	f := cell.Formula
	if f == nil {
		return
	}
	if f.Op.IsRangeOp() {
		if f.A == nil || f.B == nil || !f.A.IsCellRef() || !f.B.IsCellRef() {
			return
		}
		if c1, c2 := f.Corners(); c1.Row > c2.Row || c1.Col > c2.Col {
			return
		}
	}

	switch {
	case f.Op == OpConst:
		if f.A == nil {
			return
		}
		v, ok := g.resolve(f.A)
		cell.Value, cell.Valid = v, ok

	case f.Op == OpSleep:
		if f.A == nil {
			return
		}
		v, ok := g.resolve(f.A)
		if !ok {
			cell.Valid = false
			return
		}
		secs := v
		if secs < 0 {
			secs = 0
		}
		SleepFunc(time.Duration(secs) * time.Second)
		cell.Value, cell.Valid = v, true

	case f.Op == OpAdd, f.Op == OpSub, f.Op == OpMul:
		if f.A == nil || f.B == nil {
			return
		}
		a, aok := g.resolve(f.A)
		b, bok := g.resolve(f.B)
		if !aok || !bok {
			cell.Valid = false
			return
		}
		switch f.Op {
		case OpAdd:
			cell.Value = a + b
		case OpSub:
			cell.Value = a - b
		case OpMul:
			cell.Value = a * b
		}
		cell.Valid = true

	case f.Op == OpDiv:
		if f.A == nil || f.B == nil {
			return
		}
		a, aok := g.resolve(f.A)
		b, bok := g.resolve(f.B)
		if !aok || !bok || b == 0 {
			cell.Valid = false
			return
		}
		cell.Value = a / b
		cell.Valid = true

	case f.Op == OpSum, f.Op == OpAvg:
		c1, c2 := f.Corners()
		sum, n, ok := g.rangeSum(c1, c2)
		if !ok {
			cell.Valid = false
			return
		}
		if f.Op == OpSum {
			cell.Value = sum
		} else {
			cell.Value = sum / int64(n)
		}
		cell.Valid = true

	case f.Op == OpMin, f.Op == OpMax:
		c1, c2 := f.Corners()
		v, ok := g.rangeMinMax(c1, c2, f.Op == OpMax)
		cell.Value, cell.Valid = v, ok

	case f.Op == OpStdev:
		c1, c2 := f.Corners()
		v, ok := g.rangeStdev(c1, c2)
		cell.Value, cell.Valid = v, ok
	}
}

// rangeSum folds a rectangle into (sum, count, allValid). The parser
// guarantees r1<=r2, c1<=c2 and a non-empty rectangle.
func (g *Grid) rangeSum(c1, c2 Coordinate) (int64, int, bool) {
	var sum int64
	n := 0
	for r := c1.Row; r <= c2.Row; r++ {
		for c := c1.Col; c <= c2.Col; c++ {
			cell := g.Get(r, c)
			if !cell.Valid {
				return 0, 0, false
			}
			sum += cell.Value
			n++
		}
	}
	return sum, n, true
}

func (g *Grid) rangeMinMax(c1, c2 Coordinate, max bool) (int64, bool) {
	// Unreachable in practice: NewRangeFormula/the parser never produce
	// an empty rectangle, so there is always at least one cell to seed
	// the fold from instead of returning a raw INT_MIN/INT_MAX sentinel
	//.
	if c1.Row > c2.Row || c1.Col > c2.Col {
		return 0, false
	}

	var best int64
	first := true
	for r := c1.Row; r <= c2.Row; r++ {
		for c := c1.Col; c <= c2.Col; c++ {
			cell := g.Get(r, c)
			if !cell.Valid {
				return 0, false
			}
			if first {
				best, first = cell.Value, false
				continue
			}
			if max && cell.Value > best {
				best = cell.Value
			}
			if !max && cell.Value < best {
				best = cell.Value
			}
		}
	}
	return best, true
}

// rangeStdev computes the population standard deviation (two-pass),
// rounded half-away-from-zero to the nearest integer.
func (g *Grid) rangeStdev(c1, c2 Coordinate) (int64, bool) {
	var sum float64
	n := 0
	for r := c1.Row; r <= c2.Row; r++ {
		for c := c1.Col; c <= c2.Col; c++ {
			cell := g.Get(r, c)
			if !cell.Valid {
				return 0, false
			}
			sum += float64(cell.Value)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	mean := sum / float64(n)

	var sqSum float64
	for r := c1.Row; r <= c2.Row; r++ {
		for c := c1.Col; c <= c2.Col; c++ {
			v := float64(g.Get(r, c).Value)
			d := v - mean
			sqSum += d * d
		}
	}
	variance := sqSum / float64(n)
	return int64(math.Round(math.Sqrt(variance))), true
}
