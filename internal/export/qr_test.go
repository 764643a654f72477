package export

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestManifestQR_IsPNG(t *testing.T) {
	result := buildTestResult()
	png, err := ManifestQR(buildTestManifest(result), 256)
	if err != nil {
		t.Fatalf("ManifestQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("QR code is not a PNG")
	}
}

func TestNewManifestPayload(t *testing.T) {
	result := buildTestResult()
	m := buildTestManifest(result)
	payload := NewManifestPayload(m)

	if payload.ID != m.ID || payload.Seed != 77 || payload.Circles != 4 {
		t.Errorf("unexpected payload %+v", payload)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	// Low error correction holds a little under 3 KB of binary data.
	if len(data) > 2000 {
		t.Errorf("payload is %d bytes, too large for a scannable code", len(data))
	}
}
