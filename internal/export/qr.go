package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CircleMosaic/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the printed QR code edge in mm.
const qrSize = 45.0

// ManifestPayload holds the data encoded into the summary page QR code.
// Placements are left out to keep the code scannable.
type ManifestPayload struct {
	ID       string         `json:"id"`
	Input    string         `json:"input"`
	Seed     int64          `json:"seed"`
	Settings model.Settings `json:"settings"`
	Circles  int            `json:"circles"`
	Coverage float64        `json:"coverage"`
}

// NewManifestPayload extracts the QR payload from a manifest.
func NewManifestPayload(m model.Manifest) ManifestPayload {
	return ManifestPayload{
		ID:       m.ID,
		Input:    m.Input,
		Seed:     m.Seed,
		Settings: m.Settings,
		Circles:  m.Circles,
		Coverage: m.Coverage,
	}
}

// ManifestQR renders the manifest payload as a PNG QR code.
func ManifestQR(m model.Manifest, size int) ([]byte, error) {
	data, err := json.Marshal(NewManifestPayload(m))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Low, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// renderManifestQR places the manifest QR code at (x, y) with a caption.
func renderManifestQR(pdf *fpdf.Fpdf, m model.Manifest, x, y float64) error {
	qrPNG, err := ManifestQR(m, 512)
	if err != nil {
		return err
	}

	imgName := fmt.Sprintf("qr_manifest_%s", m.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+qrSize+1)
	pdf.CellFormat(qrSize, 3, "Run manifest", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
