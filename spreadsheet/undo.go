package spreadsheet

// maxJournal bounds the undo history so a very long session doesn't
// grow the journal without limit; the oldest patch is dropped once the
// bound is hit. The core's Undo/Redo statuses are parsed by the
// dispatcher but their semantics are explicitly left as a
// design extension — this journal is that extension.
const maxJournal = 500

// undoPatch names a formula to install on target, used both as a
// journal entry ("restore to this on Undo") and, symmetrically, as a
// redo entry ("restore to this on Redo").
type undoPatch struct {
	target  Coordinate
	restore *Formula
}

// recordPatch pushes the pre-image of an about-to-be-applied
// assignment onto the journal and clears the redo buffer, matching the
// usual editor convention that a fresh edit invalidates previously
// undone redos.
func (s *Sheet) recordPatch(target Coordinate, oldFormula *Formula) {
	s.journal = append(s.journal, undoPatch{target: target, restore: oldFormula})
	if len(s.journal) > maxJournal {
		s.journal = s.journal[len(s.journal)-maxJournal:]
	}
	s.redoBuf = s.redoBuf[:0]
}

// applyPatch installs p.restore on p.target through the same
// break/add primitives as a forward assignment, then recomputes the
// affected sub-DAG. Returns the formula that was live before the
// patch was applied, so the caller can push the inverse patch onto the
// other stack.
func (s *Sheet) applyPatch(p undoPatch) *Formula {
	cell := s.grid.GetCoord(p.target)
	previous := cell.Formula
	s.grid.updateEdges(p.target, previous, p.restore)
	cell.Formula = p.restore
	if p.restore == nil {
		// back to a never-assigned cell
		cell.Value, cell.Valid = 0, true
	}
	s.grid.updateTopo(p.target, s.grid.evaluate)
	return previous
}

// Undo reverts the most recent successful assignment (or prior Redo)
// and pushes its inverse onto the redo stack. Returns false if the
// journal is empty.
func (s *Sheet) Undo() bool {
	if len(s.journal) == 0 {
		return false
	}
	patch := s.journal[len(s.journal)-1]
	s.journal = s.journal[:len(s.journal)-1]

	previous := s.applyPatch(patch)
	s.redoBuf = append(s.redoBuf, undoPatch{target: patch.target, restore: previous})
	return true
}

// Redo reapplies the most recently undone assignment. Returns false if
// there is nothing to redo.
func (s *Sheet) Redo() bool {
	if len(s.redoBuf) == 0 {
		return false
	}
	patch := s.redoBuf[len(s.redoBuf)-1]
	s.redoBuf = s.redoBuf[:len(s.redoBuf)-1]

	previous := s.applyPatch(patch)
	s.journal = append(s.journal, undoPatch{target: patch.target, restore: previous})
	return true
}
