package model

import "math"

// Point is a discrete pixel coordinate. I is the row, J the column.
type Point struct {
	I int `json:"i"`
	J int `json:"j"`
}

// InBounds reports whether p lies on a width x height canvas.
func (p Point) InBounds(width, height int) bool {
	return p.I >= 0 && p.I < height && p.J >= 0 && p.J < width
}

// Add returns p shifted by (di, dj).
func (p Point) Add(di, dj int) Point {
	return Point{I: p.I + di, J: p.J + dj}
}

// PointF is a continuous coordinate used while walking rays.
type PointF struct {
	I float64
	J float64
}

// Trunc converts to a pixel coordinate by truncating toward zero.
// Rounding would move samples onto different pixels than the ones the
// sweep has always used, so keep the truncation.
func (p PointF) Trunc() Point {
	return Point{I: int(p.I), J: int(p.J)}
}

// ToF converts a pixel coordinate to a continuous one.
func (p Point) ToF() PointF {
	return PointF{I: float64(p.I), J: float64(p.J)}
}

// Line is a parametric ray origin + t*direction.
type Line struct {
	Origin    PointF
	Direction PointF
}

// RayAt builds a unit-length ray leaving origin at angle theta.
// With a unit direction, t equals the distance traveled from the origin.
func RayAt(origin PointF, theta float64) Line {
	return Line{
		Origin:    origin,
		Direction: PointF{I: math.Sin(theta), J: math.Cos(theta)},
	}
}

// At evaluates the line at parameter t.
func (l Line) At(t float64) PointF {
	return PointF{
		I: l.Origin.I + l.Direction.I*t,
		J: l.Origin.J + l.Direction.J*t,
	}
}

// Distance returns the Euclidean distance between two pixels.
func Distance(a, b Point) float64 {
	di := float64(a.I - b.I)
	dj := float64(a.J - b.J)
	return math.Sqrt(di*di + dj*dj)
}

// Circle is a candidate or accepted placement region.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// NewCircle creates a circle centered on pixel (i, j).
func NewCircle(i, j int, r float64) Circle {
	return Circle{Center: Point{I: i, J: j}, Radius: r}
}

// Area returns the continuous area of the circle.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}
