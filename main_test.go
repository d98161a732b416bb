package main

import (
	"strconv"
	"testing"

	"gridsheet/spreadsheet"
)

func TestParseArgsValid(t *testing.T) {
	got, err := parseArgs([]string{"10", "10"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if got.rows != 10 || got.cols != 10 || got.path != "" {
		t.Fatalf("parseArgs = %+v, want rows=10 cols=10 path=\"\"", got)
	}
}

func TestParseArgsWithSnapshotPath(t *testing.T) {
	got, err := parseArgs([]string{"5", "5", "snapshot.json"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if got.path != "snapshot.json" {
		t.Fatalf("path = %q, want snapshot.json", got.path)
	}
}

func TestParseArgsRejectsWrongArgCount(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"10"},
		{"10", "10", "x", "extra"},
	} {
		if _, err := parseArgs(args); err == nil {
			t.Fatalf("parseArgs(%v) succeeded, want error", args)
		}
	}
}

func TestParseArgsRejectsNonNumericRowsOrCols(t *testing.T) {
	if _, err := parseArgs([]string{"ten", "10"}); err == nil {
		t.Fatalf("parseArgs accepted non-numeric rows")
	}
	if _, err := parseArgs([]string{"10", "ten"}); err == nil {
		t.Fatalf("parseArgs accepted non-numeric cols")
	}
}

func TestParseArgsRejectsOutOfRangeRowsOrCols(t *testing.T) {
	if _, err := parseArgs([]string{"0", "10"}); err == nil {
		t.Fatalf("parseArgs accepted rows=0")
	}
	if _, err := parseArgs([]string{"10", "0"}); err == nil {
		t.Fatalf("parseArgs accepted cols=0")
	}
	tooManyRows := spreadsheet.MaxRows + 1
	if _, err := parseArgs([]string{strconv.Itoa(tooManyRows), "10"}); err == nil {
		t.Fatalf("parseArgs accepted rows=%d beyond MaxRows", tooManyRows)
	}
	tooManyCols := spreadsheet.MaxCols + 1
	if _, err := parseArgs([]string{"10", strconv.Itoa(tooManyCols)}); err == nil {
		t.Fatalf("parseArgs accepted cols=%d beyond MaxCols", tooManyCols)
	}
}
