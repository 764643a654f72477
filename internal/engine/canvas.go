package engine

import (
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/raster"
)

// Canvas bundles the state one placement pass mutates: the result buffer,
// the occupancy mask and the fill queue. Original is never written.
type Canvas struct {
	Original *raster.Buffer
	Result   *raster.Buffer
	Mask     *Mask

	queue *PointQueue
}

// NewCanvas prepares a canvas for original. The result starts as a copy of
// the source or blanked, per mode. queueLimit 0 gives a growable queue.
func NewCanvas(original *raster.Buffer, mode model.CanvasMode, queueLimit int) (*Canvas, error) {
	if original == nil || original.Width <= 0 || original.Height <= 0 {
		return nil, fmt.Errorf("empty source image")
	}
	result := original.Clone()
	if mode == model.CanvasBlank {
		result.Blank()
	}
	return &Canvas{
		Original: original,
		Result:   result,
		Mask:     NewMask(original.Width, original.Height),
		queue:    NewPointQueue(queueLimit),
	}, nil
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.Original.Width }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.Original.Height }

// paint copies the source color at center into p and claims p.
func (c *Canvas) paint(p, center model.Point) {
	raster.CopyPixel(c.Result, c.Original, p, center)
	c.Mask.Claim(p)
}
