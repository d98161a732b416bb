package storage

import (
	"path/filepath"
	"testing"

	"gridsheet/spreadsheet"
)

func buildFixtureSheet(t *testing.T) *spreadsheet.Sheet {
	t.Helper()
	sheet, err := spreadsheet.NewSheet(10, 10)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	commands := []string{
		"A1=5",
		"A2=10",
		"A3=15",
		"B1=SUM(A1:A3)",
		"B2=AVG(A1:A3)",
		"C1=A1/0",
	}
	for _, cmd := range commands {
		if status, _ := sheet.ProcessCommand(cmd); status.Kind != spreadsheet.StatusSuccess {
			t.Fatalf("ProcessCommand(%q) = %v, want Success", cmd, status.Kind)
		}
	}
	return sheet
}

func TestFileRoundTrip(t *testing.T) {
	original := buildFixtureSheet(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := SaveFile(original, path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	restored, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	assertSheetsEqual(t, original, restored)
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.json")); err == nil {
		t.Fatalf("LoadFile on a missing file should return an error")
	}
}

func assertSheetsEqual(t *testing.T, a, b *spreadsheet.Sheet) {
	t.Helper()
	ar, ac := a.Grid().Size()
	br, bc := b.Grid().Size()
	if ar != br || ac != bc {
		t.Fatalf("dimensions differ: (%d,%d) vs (%d,%d)", ar, ac, br, bc)
	}
	for _, at := range a.Grid().AllCoordinates() {
		av, aok := a.ValueAt(at.Row, at.Col)
		bv, bok := b.ValueAt(at.Row, at.Col)
		if av != bv || aok != bok {
			t.Fatalf("value at %v differs: (%d,%v) vs (%d,%v)", at, av, aok, bv, bok)
		}
	}
}
