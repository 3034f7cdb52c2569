package location

import "encoding/json"

// Anchor pins one border of a new region to a point inside a match.
//
// Border says which part of the new region is defined: a LEFT name sets its
// left edge, a TOP name its top edge, and so on. MIDDLE components leave that
// axis alone, so MiddleMiddle defines nothing. PositionInMatch is the point of
// the match the border is attached to.
type Anchor struct {
	Border          Name     `json:"border"`
	PositionInMatch Position `json:"position_in_match"`
}

// NewAnchor creates an Anchor.
func NewAnchor(border Name, positionInMatch Position) Anchor {
	return Anchor{Border: border, PositionInMatch: positionInMatch}
}

// Equal reports whether both anchors have the same border and position.
func (a Anchor) Equal(other Anchor) bool {
	return a.Border == other.Border && a.PositionInMatch.Equal(other.PositionInMatch)
}

// Anchors is an ordered collection of Anchor values.
type Anchors struct {
	list []Anchor
}

// NewAnchors returns a collection holding the given anchors.
func NewAnchors(anchors ...Anchor) Anchors {
	var a Anchors
	for _, anchor := range anchors {
		a.Add(anchor)
	}
	return a
}

// Add appends an anchor.
func (a *Anchors) Add(anchor Anchor) {
	a.list = append(a.list, anchor)
}

// Len returns the number of anchors.
func (a Anchors) Len() int {
	return len(a.list)
}

// All returns a copy of the anchors in insertion order.
func (a Anchors) All() []Anchor {
	out := make([]Anchor, len(a.list))
	copy(out, a.list)
	return out
}

// Clone returns an independent copy.
func (a Anchors) Clone() Anchors {
	return Anchors{list: a.All()}
}

// Equal reports whether both collections hold the same anchors. Order is
// ignored; duplicates must appear the same number of times.
func (a Anchors) Equal(other Anchors) bool {
	if len(a.list) != len(other.list) {
		return false
	}
	used := make([]bool, len(other.list))
	for _, anchor := range a.list {
		found := false
		for i, candidate := range other.list {
			if !used[i] && anchor.Equal(candidate) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DefineRegion derives a region from a match using anchors.
//
// Each anchor projects its PositionInMatch into match and moves the border it
// names to that point. Borders no anchor touches stay on the match's edges.
// If anchors leave the right edge left of the left edge (or the bottom above
// the top) the edges are swapped.
func DefineRegion(match Region, anchors Anchors) Region {
	x1, y1, x2, y2 := match.X, match.Y, match.X2(), match.Y2()

	for _, anchor := range anchors.list {
		if !anchor.Border.Valid() {
			continue
		}
		loc := match.Location(anchor.PositionInMatch)
		switch anchor.Border.horizontal() {
		case -1:
			x1 = loc.X
		case 1:
			x2 = loc.X
		}
		switch anchor.Border.vertical() {
		case -1:
			y1 = loc.Y
		case 1:
			y2 = loc.Y
		}
	}

	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Region{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// MarshalJSON encodes the anchors as a JSON array.
func (a Anchors) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.All())
}

// UnmarshalJSON decodes a JSON array of anchors.
func (a *Anchors) UnmarshalJSON(data []byte) error {
	var list []Anchor
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	a.list = list
	return nil
}
