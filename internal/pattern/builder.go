package pattern

import (
	"fmt"
	"image"

	"github.com/ironsheep/pattern-tools-mcp/internal/imaging"
	"github.com/ironsheep/pattern-tools-mcp/internal/location"
)

// ImageLoader loads the image stored at a path. *imaging.ImageCache implements it.
type ImageLoader interface {
	LoadImage(path string) (*imaging.Image, error)
}

// Builder records optional pattern inputs and merges them in Build.
//
// Setters only record values; nothing is resolved until Build or BuildWith
// runs, so setter order does not matter.
type Builder struct {
	name                string
	image               *imaging.Image
	bitmap              image.Image
	filename            string
	fixed               bool
	kmeansColorProfiles bool
	index               int
	dynamic             bool
	position            location.Position
	anchors             location.Anchors
}

// NewBuilder returns a Builder with the default center position and no anchors.
func NewBuilder() *Builder {
	return &Builder{position: location.DefaultPosition()}
}

// SetName sets the pattern name. It wins over a name derived from the filename.
func (b *Builder) SetName(name string) *Builder {
	b.name = name
	return b
}

// SetImage attaches an existing Image to the pattern.
func (b *Builder) SetImage(img *imaging.Image) *Builder {
	b.image = img
	return b
}

// SetBitmap sets raw pixels. They replace the bitmap of any Image given with SetImage.
func (b *Builder) SetBitmap(bitmap image.Image) *Builder {
	b.bitmap = bitmap
	return b
}

// SetFilename records the image path. Build names the pattern after it but
// does not read the file; use BuildWith to load it.
func (b *Builder) SetFilename(filename string) *Builder {
	b.filename = filename
	return b
}

// SetFixed marks a pattern that always appears in the same place.
func (b *Builder) SetFixed(fixed bool) *Builder {
	b.fixed = fixed
	return b
}

// SetKmeansColorProfiles requests k-means colour profiles for the pattern image.
func (b *Builder) SetKmeansColorProfiles(enabled bool) *Builder {
	b.kmeansColorProfiles = enabled
	return b
}

// SetIndex sets the pattern's index in classification matrices.
func (b *Builder) SetIndex(index int) *Builder {
	b.index = index
	return b
}

// SetDynamic marks a pattern whose content varies too much to match.
func (b *Builder) SetDynamic(dynamic bool) *Builder {
	b.dynamic = dynamic
	return b
}

// SetPosition sets the point inside a match the pattern locates to.
// The default is the center.
func (b *Builder) SetPosition(position location.Position) *Builder {
	b.position = position
	return b
}

// SetAnchors replaces all anchors recorded so far.
func (b *Builder) SetAnchors(anchors location.Anchors) *Builder {
	b.anchors = anchors.Clone()
	return b
}

// AddAnchor appends one anchor.
func (b *Builder) AddAnchor(anchor location.Anchor) *Builder {
	b.anchors.Add(anchor)
	return b
}

// Build merges the recorded inputs into a new Pattern:
//
//  1. start from an empty pattern;
//  2. apply the explicit name, otherwise derive one from the filename;
//  3. attach the explicit Image, then let an explicit bitmap replace the
//     attached Image's pixels (or become a new Image if none is attached);
//  4. copy flags, index, position and anchors.
//
// The filename is stored as the pattern's Imgpath but never read.
func (b *Builder) Build() *Pattern {
	return b.merge(b.image)
}

// BuildWith is Build with an explicit load step: when a filename is set and
// neither an Image nor a bitmap was supplied, loader reads the file and the
// result is attached as the pattern's image.
func (b *Builder) BuildWith(loader ImageLoader) (*Pattern, error) {
	img := b.image
	if b.filename != "" && img == nil && b.bitmap == nil {
		if loader == nil {
			return nil, fmt.Errorf("no image loader for %s", b.filename)
		}
		loaded, err := loader.LoadImage(b.filename)
		if err != nil {
			return nil, err
		}
		img = loaded
	}
	return b.merge(img), nil
}

func (b *Builder) merge(img *imaging.Image) *Pattern {
	p := New()

	if b.name != "" {
		p.Name = b.name
	}
	if b.filename != "" {
		p.Imgpath = b.filename
		p.SetNameFromFilenameIfEmpty(b.filename)
	}

	if img != nil {
		p.Image = img
	}
	if b.bitmap != nil {
		if p.Image != nil {
			p.Image.SetBitmap(b.bitmap)
		} else {
			p.Image = imaging.NewNamedImage(b.bitmap, p.Name)
		}
	}
	p.Fixed = b.fixed
	p.KmeansColorProfiles = b.kmeansColorProfiles
	p.Index = b.index
	p.Dynamic = b.dynamic
	p.Position = b.position
	p.Anchors = b.anchors.Clone()
	return p
}
