package model

// Placement is one accepted circle and what the fill did with it.
type Placement struct {
	Circle Circle `json:"circle"`
	Color  []byte `json:"color"`  // Source pixel at the circle center
	Pixels int    `json:"pixels"` // Pixels claimed by this circle
}

// MosaicResult summarizes a completed placement pass.
type MosaicResult struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Channels   int         `json:"channels"`
	Placements []Placement `json:"placements"`
	Candidates int         `json:"candidates"` // Pixels that passed the likelihood throttle and were free
	Shrunk     int         `json:"shrunk"`     // Radius reductions performed by the shrink policy
	Rejected   int         `json:"rejected"`   // Candidates that produced no circle
	Claimed    int         `json:"claimed"`    // Pixels claimed in the occupancy mask
}

// TotalArea returns the canvas area in pixels.
func (r MosaicResult) TotalArea() int {
	return r.Width * r.Height
}

// Coverage returns the claimed percentage of the canvas.
func (r MosaicResult) Coverage() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(r.Claimed) / float64(ta) * 100.0
}

// LargestRadius returns the radius of the largest accepted circle.
func (r MosaicResult) LargestRadius() float64 {
	var max float64
	for _, p := range r.Placements {
		if p.Circle.Radius > max {
			max = p.Circle.Radius
		}
	}
	return max
}

// MeanRadius returns the average radius of the accepted circles.
func (r MosaicResult) MeanRadius() float64 {
	if len(r.Placements) == 0 {
		return 0
	}
	var total float64
	for _, p := range r.Placements {
		total += p.Circle.Radius
	}
	return total / float64(len(r.Placements))
}
