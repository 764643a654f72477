package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// DecodeError reports a source image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a result image that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Load decodes the image at path.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	b := FromImage(img)
	if b == nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("empty image")}
	}
	return b, nil
}

// FromImage converts img into a buffer. Gray images keep one channel,
// opaque images get three, translucent images whose pixels are all gray
// get two (gray+alpha) and everything else four. Returns nil for an empty
// image.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	switch src := img.(type) {
	case *image.Gray:
		b, _ := New(w, h, 1)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			copy(b.Pix[y*w:(y+1)*w], row)
		}
		return b
	case *image.Gray16:
		b, _ := New(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := src.Gray16At(x+bounds.Min.X, y+bounds.Min.Y)
				b.Pix[y*w+x] = uint8(g.Y >> 8)
			}
		}
		return b
	}

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}

	b, _ := New(w, h, channels)
	off := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			b.Pix[off] = c.R
			b.Pix[off+1] = c.G
			b.Pix[off+2] = c.B
			if channels == 4 {
				b.Pix[off+3] = c.A
			}
			off += channels
		}
	}
	if channels == 4 && b.isGray() {
		return b.grayAlpha()
	}
	return b
}

// isGray reports whether every pixel of a 3 or 4 channel buffer has equal
// color components.
func (b *Buffer) isGray() bool {
	for off := 0; off < len(b.Pix); off += b.Channels {
		if b.Pix[off] != b.Pix[off+1] || b.Pix[off] != b.Pix[off+2] {
			return false
		}
	}
	return true
}

// grayAlpha packs a gray RGBA buffer into two channels.
func (b *Buffer) grayAlpha() *Buffer {
	ga, _ := New(b.Width, b.Height, 2)
	n := b.Width * b.Height
	for k := 0; k < n; k++ {
		ga.Pix[k*2] = b.Pix[k*4]
		ga.Pix[k*2+1] = b.Pix[k*4+3]
	}
	return ga
}

// Image returns the buffer as an image.Image. The pixel rows are packed
// without padding, stride Width*Channels.
func (b *Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Channels == 1 {
		pix := make([]byte, len(b.Pix))
		copy(pix, b.Pix)
		return &image.Gray{Pix: pix, Stride: b.Width, Rect: rect}
	}

	img := image.NewNRGBA(rect)
	n := b.Width * b.Height
	for k := 0; k < n; k++ {
		src := b.Pix[k*b.Channels : (k+1)*b.Channels]
		dst := img.Pix[k*4 : k*4+4]
		switch b.Channels {
		case 2:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], src[1]
		case 3:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
		default:
			copy(dst, src)
		}
	}
	return img
}

// EncodePNG writes the buffer as PNG.
func (b *Buffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.Image())
}

// SavePNG writes the buffer to path as PNG. A failed write removes the
// partial file so no output is left behind.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	bw := bufio.NewWriter(f)
	if err := b.EncodePNG(bw); err != nil {
		f.Close()
		os.Remove(path)
		return &EncodeError{Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(path)
		return &EncodeError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}
