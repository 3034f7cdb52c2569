// Package imaging holds the image side of patterns: the Image buffer, the
// file loader with its cache, cropping and colour sampling.
//
// Loading, orientation and cropping are delegated to
// github.com/disintegration/imaging; HSL conversion uses go-colorful.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. An Image is a plain value
// holder and is not synchronised.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Performance Considerations
//
// Cached images stay in memory for the life of the cache. Use Evict() or
// Clear() to manage memory for long-running processes.
package imaging
