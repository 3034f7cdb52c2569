package location

import "image"

// Point represents a 2D point in pixel space
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region represents a rectangle in pixel space.
//
// (X, Y) is the top-left corner; W and H are the width and height.
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// NewRegionFromRect converts an image.Rectangle into a Region.
func NewRegionFromRect(r image.Rectangle) Region {
	return Region{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Location projects p into the region.
func (r Region) Location(p Position) Point {
	return p.Location(r)
}

// X2 is the right edge (exclusive).
func (r Region) X2() int { return r.X + r.W }

// Y2 is the bottom edge (exclusive).
func (r Region) Y2() int { return r.Y + r.H }
