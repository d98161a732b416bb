// Package storage implements the save operation as an external
// collaborator: a structured, self-describing dump of the grid. It
// snapshots a *spreadsheet.Sheet to JSON and restores one from JSON,
// and (in postgres.go) to/from a Postgres table for the DB-backed
// alternative.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"gridsheet/spreadsheet"
)

// OperandSnapshot is the wire form of spreadsheet.Operand.
type OperandSnapshot struct {
	Kind    string `json:"kind"` // "cell" or "literal"
	Row     int    `json:"row,omitempty"`
	Col     int    `json:"col,omitempty"`
	Literal int64  `json:"literal,omitempty"`
}

func toOperandSnapshot(o *spreadsheet.Operand) *OperandSnapshot {
	if o == nil {
		return nil
	}
	if o.IsCellRef() {
		return &OperandSnapshot{Kind: "cell", Row: o.RowOf(), Col: o.ColOf()}
	}
	return &OperandSnapshot{Kind: "literal", Literal: o.Literal}
}

func (o *OperandSnapshot) toOperand() *spreadsheet.Operand {
	if o == nil {
		return nil
	}
	var op spreadsheet.Operand
	if o.Kind == "cell" {
		op = spreadsheet.CellRef(o.Row, o.Col)
	} else {
		op = spreadsheet.LiteralInt(o.Literal)
	}
	return &op
}

// FormulaSnapshot is the wire form of spreadsheet.Formula.
type FormulaSnapshot struct {
	Op string           `json:"op"`
	A  *OperandSnapshot `json:"a,omitempty"`
	B  *OperandSnapshot `json:"b,omitempty"`
}

// CellSnapshot is the wire form of one spreadsheet.Cell, including its
// coordinate and its dependents set.
type CellSnapshot struct {
	Row        int                 `json:"row"`
	Col        int                 `json:"col"`
	Value      int64               `json:"value"`
	Valid      bool                `json:"valid"`
	Formula    *FormulaSnapshot    `json:"formula,omitempty"`
	Dependents []spreadsheet.Coordinate `json:"dependents,omitempty"`
}

// GridSnapshot is the top-level persisted document.
type GridSnapshot struct {
	Rows  int            `json:"rows"`
	Cols  int            `json:"cols"`
	Cells []CellSnapshot `json:"cells"`
}

// Snapshot walks every cell of sheet's grid and produces a
// self-describing dump.
func Snapshot(sheet *spreadsheet.Sheet) GridSnapshot {
	grid := sheet.Grid()
	rows, cols := grid.Size()
	out := GridSnapshot{Rows: rows, Cols: cols}

	for _, at := range grid.AllCoordinates() {
		cell := grid.GetCoord(at)
		cs := CellSnapshot{
			Row:   at.Row,
			Col:   at.Col,
			Value: cell.Value,
			Valid: cell.Valid,
		}
		if cell.Formula != nil {
			cs.Formula = &FormulaSnapshot{
				Op: cell.Formula.Op.String(),
				A:  toOperandSnapshot(cell.Formula.A),
				B:  toOperandSnapshot(cell.Formula.B),
			}
		}
		for d := range cell.Dependents {
			cs.Dependents = append(cs.Dependents, d)
		}
		out.Cells = append(out.Cells, cs)
	}
	return out
}

// Restore allocates a fresh Sheet of the snapshot's dimensions and
// replays every cell's (value, valid, formula, dependents) exactly, a
// raw field-for-field restore rather than a recomputation: the
// restored state must equal the original bit-for-bit, including cells
// whose formula would evaluate differently if re-run (e.g. a Sleep
// cell).
func Restore(snap GridSnapshot) (*spreadsheet.Sheet, error) {
	sheet, err := spreadsheet.NewSheet(snap.Rows, snap.Cols)
	if err != nil {
		return nil, fmt.Errorf("storage: restore grid: %w", err)
	}
	grid := sheet.Grid()

	for _, cs := range snap.Cells {
		cell := grid.Get(cs.Row, cs.Col)
		cell.Value = cs.Value
		cell.Valid = cs.Valid
		if cs.Formula != nil {
			op, ok := spreadsheet.ParseOperationName(cs.Formula.Op)
			if !ok {
				return nil, fmt.Errorf("storage: unknown operation %q at (%d,%d)", cs.Formula.Op, cs.Row, cs.Col)
			}
			cell.Formula = &spreadsheet.Formula{
				Op: op,
				A:  cs.Formula.A.toOperand(),
				B:  cs.Formula.B.toOperand(),
			}
		}
		for _, d := range cs.Dependents {
			grid.GetCoord(d) // ensure in-bounds; panics otherwise
			cell.Dependents[d] = struct{}{}
		}
	}
	return sheet, nil
}

// SaveFile writes sheet's snapshot as indented JSON to path.
func SaveFile(sheet *spreadsheet.Sheet, path string) error {
	data, err := json.MarshalIndent(Snapshot(sheet), "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a JSON snapshot from path and restores a Sheet.
func LoadFile(path string) (*spreadsheet.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	var snap GridSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("storage: unmarshal %s: %w", path, err)
	}
	return Restore(snap)
}
