package export

import (
	"encoding/hex"
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names and the header row of the ledger workbook.
const (
	ledgerSheet  = "Circles"
	summarySheet = "Summary"
)

// LedgerHeader lists the columns of the circles sheet.
var LedgerHeader = []string{"Circle", "Row", "Column", "Radius", "Pixels", "Color"}

// ExportLedger writes every placement to an XLSX workbook: one row per
// circle in placement order, plus a summary sheet with the pass statistics.
func ExportLedger(path string, result model.MosaicResult, manifest model.Manifest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(ledgerSheet, "A1", &LedgerHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, "A1", "F1", headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(ledgerSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	for k, p := range result.Placements {
		cell, err := excelize.CoordinatesToCellName(1, k+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			k + 1,
			p.Circle.Center.I,
			p.Circle.Center.J,
			p.Circle.Radius,
			p.Pixels,
			"#" + hex.EncodeToString(p.Color),
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write circle %d: %w", k+1, err)
		}
	}
	if err := f.SetColWidth(ledgerSheet, "A", "F", 12); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Run", manifest.ID},
		{"Input", manifest.Input},
		{"Seed", manifest.Seed},
		{"Profile", manifest.Settings.Profile},
		{"Width", result.Width},
		{"Height", result.Height},
		{"Channels", result.Channels},
		{"Circles", len(result.Placements)},
		{"Candidates", result.Candidates},
		{"Rejected", result.Rejected},
		{"Radius Reductions", result.Shrunk},
		{"Claimed Pixels", result.Claimed},
		{"Coverage %", result.Coverage()},
	}
	for k, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, k+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}
