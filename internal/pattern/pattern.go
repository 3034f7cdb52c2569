package pattern

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/pattern-tools-mcp/internal/imaging"
	"github.com/ironsheep/pattern-tools-mcp/internal/location"
	"github.com/ironsheep/pattern-tools-mcp/internal/profile"
)

var (
	// ErrNoImage is returned by operations that need pixels on a pattern without an image.
	ErrNoImage = errors.New("pattern has no image")

	// ErrProfilesNotEnabled is returned when colour profiling was not requested for a pattern.
	ErrProfilesNotEnabled = errors.New("kmeans colour profiles not enabled for pattern")
)

// Pattern is a named template with an optional image.
type Pattern struct {
	URL     string
	Imgpath string
	Name    string

	// Fixed patterns always appear in the same place, so a previous match
	// region can be reused.
	Fixed bool

	// KmeansColorProfiles opts in to the expensive colour profiling step.
	KmeansColorProfiles bool

	// Index identifies the pattern in classification matrices and must be
	// unique within one matrix.
	Index int

	// Dynamic patterns vary too much to be found by pattern matching.
	Dynamic bool

	// Position converts a match into a location.
	Position location.Position

	// Anchors define regions using a match of this pattern as input.
	Anchors location.Anchors

	Image *imaging.Image

	// Profiles is nil until ComputeColorProfiles succeeds.
	Profiles *profile.Profiles
}

// New creates a generic Pattern without an associated image.
func New() *Pattern {
	return &Pattern{Position: location.DefaultPosition()}
}

// FromBitmap creates a Pattern owning a new Image around bitmap.
func FromBitmap(bitmap image.Image) *Pattern {
	p := New()
	p.Image = imaging.NewImage(bitmap)
	return p
}

// FromImage creates a Pattern around img and takes its name.
func FromImage(img *imaging.Image) *Pattern {
	p := New()
	p.Image = img
	p.Name = img.Name()
	return p
}

// W returns the image width, or 0 without an image.
func (p *Pattern) W() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.W()
}

// H returns the image height, or 0 without an image.
func (p *Pattern) H() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.H()
}

// Size returns the image area in pixels.
func (p *Pattern) Size() int {
	return p.W() * p.H()
}

// IsEmpty reports whether the pattern has no pixels. A pattern without an
// image is empty.
func (p *Pattern) IsEmpty() bool {
	if p.Image == nil {
		return true
	}
	return p.Image.IsEmpty()
}

// Bitmap returns the image's pixel buffer, or nil without an image.
func (p *Pattern) Bitmap() image.Image {
	return p.Image.Bitmap()
}

// Equal reports whether two patterns describe the same template: same image
// path, same fixed and dynamic flags, same position and same anchors. Names
// and pixel content are not compared. Patterns without an image path are
// never equal to anything.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return false
	}
	if p.Imgpath == "" || other.Imgpath == "" {
		return false
	}
	if p.Imgpath != other.Imgpath {
		return false
	}
	if p.Fixed != other.Fixed {
		return false
	}
	if p.Dynamic != other.Dynamic {
		return false
	}
	if !p.Position.Equal(other.Position) {
		return false
	}
	return p.Anchors.Equal(other.Anchors)
}

// SetNameFromFilenameIfEmpty names the pattern after filename (directory and
// extension removed) unless it already has a name.
func (p *Pattern) SetNameFromFilenameIfEmpty(filename string) {
	if filename == "" || p.Name != "" {
		return
	}
	p.Name = imaging.BaseName(filename)
}

// Location projects the pattern's Position into a match region.
func (p *Pattern) Location(match location.Region) location.Point {
	return p.Position.Location(match)
}

// AnchoredRegion derives a region from a match using the pattern's anchors.
func (p *Pattern) AnchoredRegion(match location.Region) location.Region {
	return location.DefineRegion(match, p.Anchors)
}

// ComputeColorProfiles clusters the image colours and stores the result in
// Profiles. It only runs for patterns with KmeansColorProfiles set.
func (p *Pattern) ComputeColorProfiles(opts profile.Options) error {
	if !p.KmeansColorProfiles {
		return ErrProfilesNotEnabled
	}
	if p.IsEmpty() {
		return ErrNoImage
	}
	profiles, err := profile.Compute(p.Bitmap(), opts)
	if err != nil {
		return fmt.Errorf("failed to compute colour profiles for %q: %w", p.Name, err)
	}
	p.Profiles = profiles
	return nil
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern[%s %dx%d %v fixed=%t dynamic=%t anchors=%d]",
		p.Name, p.W(), p.H(), p.Position, p.Fixed, p.Dynamic, p.Anchors.Len())
}
