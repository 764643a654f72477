package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	result := buildTestResult()

	if err := ExportLedger(path, result, buildTestManifest(result)); err != nil {
		t.Fatalf("ExportLedger: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open ledger: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != ledgerSheet || sheets[1] != summarySheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(ledgerSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(result.Placements)+1 {
		t.Fatalf("expected %d rows, got %d", len(result.Placements)+1, len(rows))
	}
	for k, h := range LedgerHeader {
		if rows[0][k] != h {
			t.Errorf("header %d: expected %s, got %s", k, h, rows[0][k])
		}
	}

	third := rows[3]
	want := []string{"3", "20", "12", "8.25", "213", "#2828c8"}
	for k := range want {
		if third[k] != want[k] {
			t.Errorf("row 3 column %d: expected %s, got %s", k, want[k], third[k])
		}
	}

	circles, err := f.GetCellValue(summarySheet, "B8")
	if err != nil {
		t.Fatal(err)
	}
	if circles != "4" {
		t.Errorf("expected 4 circles in summary, got %s", circles)
	}
}

func TestExportLedger_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	result := buildTestResult()
	result.Placements = nil

	if err := ExportLedger(path, result, buildTestManifest(result)); err != nil {
		t.Fatalf("ExportLedger: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %d rows", len(rows))
	}
}
