package imaging

import "image"

// Image owns a decoded bitmap and the name it is known by.
//
// A nil *Image, or one without a bitmap, behaves as an empty image: its width
// and height are 0 and IsEmpty reports true. SetBitmap swaps the buffer in
// place without copying; callers that keep mutating the bitmap they pass in
// will see those changes through the Image.
type Image struct {
	name   string
	bitmap image.Image
}

// NewImage wraps bitmap in an unnamed Image.
func NewImage(bitmap image.Image) *Image {
	return &Image{bitmap: bitmap}
}

// NewNamedImage wraps bitmap in an Image called name.
func NewNamedImage(bitmap image.Image, name string) *Image {
	return &Image{name: name, bitmap: bitmap}
}

// Name returns the image name, or "" for a nil Image.
func (i *Image) Name() string {
	if i == nil {
		return ""
	}
	return i.name
}

// SetName renames the image.
func (i *Image) SetName(name string) {
	i.name = name
}

// Bitmap returns the raw pixel buffer, or nil if there is none.
func (i *Image) Bitmap() image.Image {
	if i == nil {
		return nil
	}
	return i.bitmap
}

// SetBitmap replaces the pixel buffer.
func (i *Image) SetBitmap(bitmap image.Image) {
	i.bitmap = bitmap
}

// W returns the bitmap width in pixels.
func (i *Image) W() int {
	if i.Bitmap() == nil {
		return 0
	}
	return i.bitmap.Bounds().Dx()
}

// H returns the bitmap height in pixels.
func (i *Image) H() int {
	if i.Bitmap() == nil {
		return 0
	}
	return i.bitmap.Bounds().Dy()
}

// IsEmpty reports whether there are no pixels to work with.
func (i *Image) IsEmpty() bool {
	return i.W() == 0 || i.H() == 0
}
