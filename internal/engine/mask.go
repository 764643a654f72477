package engine

import "github.com/piwi3910/CircleMosaic/internal/model"

// Mask is the occupancy grid: one cell per pixel, true while the pixel is
// still free. Collision testers only read it; fills and boundary marking
// claim cells.
type Mask struct {
	width  int
	height int
	free   []bool
	nfree  int
}

// NewMask creates a mask with every pixel free.
func NewMask(width, height int) *Mask {
	free := make([]bool, width*height)
	for i := range free {
		free[i] = true
	}
	return &Mask{
		width:  width,
		height: height,
		free:   free,
		nfree:  len(free),
	}
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// InBounds reports whether p lies on the mask.
func (m *Mask) InBounds(p model.Point) bool {
	return p.InBounds(m.width, m.height)
}

// Free reports whether p is unclaimed. p must be in bounds.
func (m *Mask) Free(p model.Point) bool {
	return m.free[p.I*m.width+p.J]
}

// Claim marks p as taken. Claiming an already taken pixel is a no-op.
func (m *Mask) Claim(p model.Point) {
	idx := p.I*m.width + p.J
	if m.free[idx] {
		m.free[idx] = false
		m.nfree--
	}
}

// FreeCount returns the number of unclaimed pixels.
func (m *Mask) FreeCount() int { return m.nfree }

// ClaimedCount returns the number of claimed pixels.
func (m *Mask) ClaimedCount() int { return len(m.free) - m.nfree }
