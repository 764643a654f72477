// Package raster holds decoded pixel data as flat byte buffers and converts
// them to and from image files.
package raster

import (
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// Buffer owns the pixel memory of an image. Pixel (i, j) starts at byte
// (i*Width+j)*Channels. Channels is 1 (gray), 2 (gray+alpha), 3 (RGB)
// or 4 (RGBA).
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte

	// opaque is set by Blank: copies into a blanked buffer keep alpha at 255.
	opaque bool
}

// New allocates a zeroed buffer.
func New(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}, nil
}

// Clone returns a deep copy with the same dimensions.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      pix,
		opaque:   b.opaque,
	}
}

// SameShape reports whether o has the same dimensions and channel count.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height && b.Channels == o.Channels
}

// hasAlpha reports whether the last channel is alpha.
func (b *Buffer) hasAlpha() bool {
	return b.Channels == 2 || b.Channels == 4
}

// Offset returns the byte offset of pixel p.
func (b *Buffer) Offset(p model.Point) int {
	return (p.I*b.Width + p.J) * b.Channels
}

// At returns the channel bytes of pixel p. The slice aliases the buffer.
func (b *Buffer) At(p model.Point) []byte {
	off := b.Offset(p)
	return b.Pix[off : off+b.Channels]
}

// Blank sets every channel to 0 and alpha to 255.
func (b *Buffer) Blank() {
	for off := 0; off < len(b.Pix); off += b.Channels {
		for k := 0; k < b.Channels; k++ {
			b.Pix[off+k] = 0
		}
		if b.hasAlpha() {
			b.Pix[off+b.Channels-1] = 255
		}
	}
	b.opaque = true
}

// CopyPixel copies pixel from of src into pixel to of dst. Both points must
// be in range and both buffers must have dst's channel count; nothing is
// checked here.
func CopyPixel(dst, src *Buffer, to, from model.Point) {
	i := dst.Offset(to)
	j := src.Offset(from)
	copy(dst.Pix[i:i+dst.Channels], src.Pix[j:j+dst.Channels])
	if dst.opaque && dst.hasAlpha() {
		dst.Pix[i+dst.Channels-1] = 255
	}
}
