// Package location provides the geometric value types used by patterns.
//
// A Position is a fractional (w, h) coordinate inside an arbitrary rectangle:
// (0, 0) is the top-left corner, (1, 1) the bottom-right corner and (0.5, 0.5)
// the center. Values outside [0, 1] are legal and extrapolate beyond the
// rectangle; nothing in this package clamps them.
//
// # Coordinate System
//
// Regions use the same pixel convention as the imaging package:
//   - X increases rightward, Y increases downward
//   - (X, Y) is the top-left corner, W and H are the extent in pixels
//
// # Named Positions
//
// The nine names (TOPLEFT through BOTTOMRIGHT) partition the unit square into
// a 3x3 grid. The table is built once when the package is initialized and is
// never modified afterwards, so lookups are safe from any goroutine.
//
// # Thread Safety
//
// Position, Anchor and Anchors are plain values with no internal locking.
// Mutating a shared value from multiple goroutines must be synchronized by
// the caller.
package location
