package location

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPosition is returned when a string does not name a known position.
var ErrUnknownPosition = errors.New("unknown named position")

// Name identifies one of the nine canonical points of a rectangle.
type Name int

// The nine names, row by row from the top.
const (
	TopLeft Name = iota
	TopMiddle
	TopRight
	MiddleLeft
	MiddleMiddle
	MiddleRight
	BottomLeft
	BottomMiddle
	BottomRight
)

var nameStrings = [...]string{
	TopLeft:      "TOPLEFT",
	TopMiddle:    "TOPMIDDLE",
	TopRight:     "TOPRIGHT",
	MiddleLeft:   "MIDDLELEFT",
	MiddleMiddle: "MIDDLEMIDDLE",
	MiddleRight:  "MIDDLERIGHT",
	BottomLeft:   "BOTTOMLEFT",
	BottomMiddle: "BOTTOMMIDDLE",
	BottomRight:  "BOTTOMRIGHT",
}

// positions is populated once at init and read-only afterwards.
var positions = buildPositions()

func buildPositions() map[Name]Position {
	steps := [3]float64{0, 0.5, 1}
	table := make(map[Name]Position, len(nameStrings))
	for n := range nameStrings {
		row, col := n/3, n%3
		table[Name(n)] = Position{PercentW: steps[col], PercentH: steps[row]}
	}
	return table
}

func (n Name) String() string {
	if n < 0 || int(n) >= len(nameStrings) {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return nameStrings[n]
}

// Valid reports whether n is one of the nine registered names.
func (n Name) Valid() bool {
	_, ok := positions[n]
	return ok
}

// Names returns all registered names in declaration order.
func Names() []Name {
	names := make([]Name, len(nameStrings))
	for i := range names {
		names[i] = Name(i)
	}
	return names
}

// Coordinates returns the normalized position registered for name.
// The boolean is false when the name is not registered.
func Coordinates(name Name) (Position, bool) {
	p, ok := positions[name]
	return p, ok
}

// ParseName converts strings such as "TOPLEFT", "top-left" or "Bottom Middle"
// into a Name.
func ParseName(s string) (Name, error) {
	key := strings.ToUpper(s)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for i, str := range nameStrings {
		if str == key {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// horizontal returns -1 for LEFT names, 0 for MIDDLE and 1 for RIGHT.
func (n Name) horizontal() int {
	return int(n)%3 - 1
}

// vertical returns -1 for TOP names, 0 for MIDDLE and 1 for BOTTOM.
func (n Name) vertical() int {
	return int(n)/3 - 1
}

// MarshalText encodes the name as its upper-case string.
func (n Name) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPosition, int(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText accepts any spelling ParseName accepts.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
