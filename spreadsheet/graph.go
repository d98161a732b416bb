package spreadsheet

// predecessors returns the set of cells a formula reads from: the
// rectangle for a range op, both refs for a binary pointwise op, the
// single ref for Const/Sleep if present, nothing otherwise. This is
// the only place that needs to know a formula's operand shape.
func predecessors(f *Formula) []Coordinate {
	if f == nil {
		return nil
	}
	switch {
	case f.Op.IsRangeOp():
		if f.A == nil || f.B == nil || !f.A.IsCellRef() || !f.B.IsCellRef() {
			return nil
		}
		c1, c2 := f.Corners()
		if c1.Row > c2.Row || c1.Col > c2.Col {
			return nil
		}
		out := make([]Coordinate, 0, (c2.Row-c1.Row+1)*(c2.Col-c1.Col+1))
		for r := c1.Row; r <= c2.Row; r++ {
			for c := c1.Col; c <= c2.Col; c++ {
				out = append(out, Coordinate{Row: r, Col: c})
			}
		}
		return out
	case f.Op.IsBinaryPointwise():
		var out []Coordinate
		if f.A != nil && f.A.IsCellRef() {
			out = append(out, f.A.Ref)
		}
		if f.B != nil && f.B.IsCellRef() {
			out = append(out, f.B.Ref)
		}
		return out
	case f.Op == OpConst || f.Op == OpSleep:
		if f.A != nil && f.A.IsCellRef() {
			return []Coordinate{f.A.Ref}
		}
		return nil
	default:
		return nil
	}
}

// breakEdges removes target from the dependents set of every
// predecessor of formula. Idempotent: removing an edge that isn't
// there is a no-op.
func (g *Grid) breakEdges(target Coordinate, formula *Formula) {
	for _, pred := range predecessors(formula) {
		g.GetCoord(pred).removeDependent(target)
	}
}

// addEdges inserts target into the dependents set of every
// predecessor of formula. Idempotent: dependents is a set, so adding
// twice is the same as adding once.
func (g *Grid) addEdges(target Coordinate, formula *Formula) {
	for _, pred := range predecessors(formula) {
		g.GetCoord(pred).addDependent(target)
	}
}

// updateEdges is the composition break(old); add(new) used both for a
// forward assignment and, with old/new swapped, for a rollback after a
// detected cycle.
func (g *Grid) updateEdges(target Coordinate, oldFormula, newFormula *Formula) {
	g.breakEdges(target, oldFormula)
	g.addEdges(target, newFormula)
}
