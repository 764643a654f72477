// Package export writes placement results to report and CAD formats:
// a PDF report, an XLSX ledger, DXF circles and a PNG outline overlay.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CircleMosaic/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF report of a placement pass: a page with the
// circle layout drawn to scale in each circle's color, followed by a
// summary page with statistics, the settings and a QR code carrying the
// run manifest.
func ExportPDF(path string, result model.MosaicResult, manifest model.Manifest) error {
	if result.Width <= 0 || result.Height <= 0 {
		return fmt.Errorf("no canvas to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, result, manifest); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws every placement scaled to fit the page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.MosaicResult) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Circle Layout (%d x %d px)", result.Width, result.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Circles: %d | Claimed: %d px | Canvas: %d px | Coverage: %.1f%%",
		len(result.Placements), result.Claimed, result.TotalArea(), result.Coverage())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(result.Width), drawHeight/float64(result.Height))
	canvasW := float64(result.Width) * scale
	canvasH := float64(result.Height) * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Canvas background
	pdf.SetFillColor(0, 0, 0)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Circles may hang off the canvas; clip them to its rectangle.
	pdf.ClipRect(offsetX, offsetY, canvasW, canvasH, false)
	pdf.SetLineWidth(0.1)
	for _, p := range result.Placements {
		r, g, b := placementRGB(p.Color)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(r, g, b)
		cx := offsetX + (float64(p.Circle.Center.J)+0.5)*scale
		cy := offsetY + (float64(p.Circle.Center.I)+0.5)*scale
		pdf.Circle(cx, cy, math.Max(p.Circle.Radius*scale, 0.1), "FD")
	}
	pdf.ClipEnd()

	drawDimensionAnnotations(pdf, result, offsetX, offsetY, canvasW, canvasH)
	drawRadiusLegend(pdf, result, offsetY+canvasH+6)
}

// drawDimensionAnnotations adds width and height labels outside the canvas rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, result model.MosaicResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the canvas)
	widthLabel := fmt.Sprintf("%d px", result.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the canvas, rotated)
	heightLabel := fmt.Sprintf("%d px", result.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawRadiusLegend renders the radius histogram as a row of labelled bars.
func drawRadiusLegend(pdf *fpdf.Fpdf, result model.MosaicResult, startY float64) {
	buckets := RadiusHistogram(result, 8)
	if len(buckets) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Radius spread:", "", 0, "L", false, 0, "")

	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	pdf.SetFont("Helvetica", "", 6)
	xPos := marginLeft + 32
	cellW := (pageWidth - marginRight - xPos) / float64(len(buckets))
	for _, b := range buckets {
		barH := 0.0
		if maxCount > 0 {
			barH = 8 * float64(b.Count) / float64(maxCount)
		}
		pdf.SetFillColor(33, 150, 243)
		pdf.Rect(xPos+1, startY+8-barH, cellW-2, barH, "F")

		pdf.SetXY(xPos, startY+9)
		label := fmt.Sprintf("%.0f-%.0f: %d", b.Low, b.High, b.Count)
		pdf.CellFormat(cellW, 3, label, "", 0, "C", false, 0, "")
		xPos += cellW
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.MosaicResult, manifest model.Manifest) error {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Mosaic Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Run", manifest.ID},
		{"Input", manifest.Input},
		{"Circles Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Candidates Tried", fmt.Sprintf("%d", result.Candidates)},
		{"Candidates Rejected", fmt.Sprintf("%d", result.Rejected)},
		{"Radius Reductions", fmt.Sprintf("%d", result.Shrunk)},
		{"Coverage", fmt.Sprintf("%.1f%%", result.Coverage())},
		{"Largest Radius", fmt.Sprintf("%.2f px", result.LargestRadius())},
		{"Mean Radius", fmt.Sprintf("%.2f px", result.MeanRadius())},
	}
	y = drawKeyValues(pdf, y, 10, 7, summaryItems)

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placement Settings", "", 0, "L", false, 0, "")
	y += 9

	s := manifest.Settings
	settingsItems := []struct {
		label string
		value string
	}{
		{"Profile", s.Profile},
		{"Radius Range", fmt.Sprintf("%.1f - %.1f px", s.MinRadius, s.MaxRadius)},
		{"Likelihood", fmt.Sprintf("%.3f", s.Likelihood)},
		{"On Collision", fmt.Sprintf("%s (factor %.1f)", s.OnCollision, s.ShrinkFactor)},
		{"Collision Test", string(s.Collision)},
		{"Fill", fmt.Sprintf("%s, %d-connected", s.Fill, s.Connectivity)},
		{"Canvas", string(s.Canvas)},
		{"Seed", fmt.Sprintf("%d", manifest.Seed)},
	}
	drawKeyValues(pdf, y, 9, 5, settingsItems)

	if err := renderManifestQR(pdf, manifest, pageWidth-marginRight-qrSize, marginTop+18); err != nil {
		return err
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CircleMosaic", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawKeyValues writes label/value rows starting at y and returns the
// position below the last row.
func drawKeyValues(pdf *fpdf.Fpdf, y, fontSize, rowHeight float64, items []struct {
	label string
	value string
}) float64 {
	pdf.SetFont("Helvetica", "", fontSize)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, rowHeight-1, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", fontSize)
		pdf.CellFormat(120, rowHeight-1, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", fontSize)
		y += rowHeight
	}
	return y
}

// placementRGB expands a placement color of any channel count to RGB.
func placementRGB(c []byte) (int, int, int) {
	switch len(c) {
	case 0:
		return 0, 0, 0
	case 1, 2:
		return int(c[0]), int(c[0]), int(c[0])
	default:
		return int(c[0]), int(c[1]), int(c[2])
	}
}

// RadiusBucket counts placements whose radius falls in [Low, High).
type RadiusBucket struct {
	Low   float64
	High  float64
	Count int
}

// RadiusHistogram splits the radius range of the placements into n equal
// buckets. The largest radius lands in the last bucket.
func RadiusHistogram(result model.MosaicResult, n int) []RadiusBucket {
	if len(result.Placements) == 0 || n <= 0 {
		return nil
	}

	lo := math.Inf(1)
	hi := result.LargestRadius()
	for _, p := range result.Placements {
		lo = math.Min(lo, p.Circle.Radius)
	}
	width := (hi - lo) / float64(n)
	if width == 0 {
		return []RadiusBucket{{Low: lo, High: hi, Count: len(result.Placements)}}
	}

	buckets := make([]RadiusBucket, n)
	for k := range buckets {
		buckets[k].Low = lo + float64(k)*width
		buckets[k].High = lo + float64(k+1)*width
	}
	for _, p := range result.Placements {
		k := int((p.Circle.Radius - lo) / width)
		if k >= n {
			k = n - 1
		}
		buckets[k].Count++
	}
	return buckets
}
