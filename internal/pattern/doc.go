// Package pattern models the templates an automation run looks for on screen.
//
// A Pattern combines an optional image with the metadata needed to act on a
// match: where inside the match to click (Position), how to derive related
// regions (Anchors), and flags describing how the pattern behaves across
// searches. Patterns without an image are legal and act as purely geometric
// templates.
//
// Patterns are plain values with no internal locking. Building distinct
// patterns concurrently is safe; mutating one Pattern from several goroutines
// is not.
package pattern
