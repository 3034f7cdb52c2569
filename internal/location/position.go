package location

import (
	"fmt"
	"math"
)

// Position is a point expressed as a fraction of a rectangle's width and height.
//
// Use it to convert a match into a location: a Position of (0.5, 0.5) resolves
// to the center of whatever region it is applied to. Equality is exact on both
// fields, so values produced by repeated arithmetic may not compare equal to a
// literal that looks the same.
type Position struct {
	PercentW float64 `json:"w"`
	PercentH float64 `json:"h"`
}

// DefaultPosition returns the center position (0.5, 0.5).
func DefaultPosition() Position {
	return Position{PercentW: 0.5, PercentH: 0.5}
}

// NewPosition stores w and h as given. No range validation is performed.
func NewPosition(w, h float64) Position {
	return Position{PercentW: w, PercentH: h}
}

// NewPositionPercent builds a Position from integer percentages, so
// NewPositionPercent(50, 50) equals NewPosition(0.5, 0.5).
func NewPositionPercent(percentW, percentH int) Position {
	return Position{
		PercentW: float64(percentW) / 100,
		PercentH: float64(percentH) / 100,
	}
}

// AddPercentW shifts the horizontal fraction by delta.
func (p *Position) AddPercentW(delta float64) {
	p.PercentW += delta
}

// AddPercentH shifts the vertical fraction by delta.
func (p *Position) AddPercentH(delta float64) {
	p.PercentH += delta
}

// MultiplyPercentW scales the horizontal fraction by factor.
func (p *Position) MultiplyPercentW(factor float64) {
	p.PercentW = p.PercentW * factor
}

// MultiplyPercentH scales the vertical fraction by factor.
func (p *Position) MultiplyPercentH(factor float64) {
	p.PercentH = p.PercentH * factor
}

// Equal reports whether both fractions are exactly equal.
func (p Position) Equal(other Position) bool {
	return p.PercentW == other.PercentW && p.PercentH == other.PercentH
}

func (p Position) String() string {
	return fmt.Sprintf("P[%.1f %.1f]", p.PercentW, p.PercentH)
}

// Location projects the position into r, rounding to the nearest pixel.
func (p Position) Location(r Region) Point {
	return Point{
		X: r.X + int(math.Round(float64(r.W)*p.PercentW)),
		Y: r.Y + int(math.Round(float64(r.H)*p.PercentH)),
	}
}
