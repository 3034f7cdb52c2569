package imaging

import (
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestCrop(t *testing.T) {
	img := quadrantImage(100, 100)

	cropped, err := Crop(img, 0, 0, 50, 50)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	b := cropped.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if b.Min.X != 0 || b.Min.Y != 0 {
		t.Errorf("cropped bounds should start at origin, got %v", b.Min)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
		{"y2 too large", 0, 0, 50, 101},
		{"all out of bounds", -1, -1, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if err == nil {
				t.Error("Crop should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 >= x2", 50, 0, 50, 50},
		{"x1 > x2", 60, 0, 50, 50},
		{"y1 >= y2", 0, 50, 50, 50},
		{"y1 > y2", 0, 60, 50, 50},
		{"zero area", 50, 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if err == nil {
				t.Error("Crop should fail for invalid region")
			}
		})
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := quadrantImage(100, 100)

	// Bottom-right quadrant is white, bottom-left blue
	cropped, err := Crop(img, 25, 50, 100, 100)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "#0000FF"},
		{24, 49, "#0000FF"},
		{25, 0, "#FFFFFF"},
		{74, 49, "#FFFFFF"},
	}
	for _, tt := range tests {
		c, err := SampleColor(cropped, tt.x, tt.y)
		if err != nil {
			t.Fatalf("SampleColor(%d,%d) failed: %v", tt.x, tt.y, err)
		}
		if c.Hex != tt.want {
			t.Errorf("(%d,%d): got %s, want %s", tt.x, tt.y, c.Hex, tt.want)
		}
	}
}

func TestCrop_DoesNotSharePixels(t *testing.T) {
	img := quadrantImage(10, 10)

	cropped, err := Crop(img, 0, 0, 5, 5)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})

	c, _ := SampleColor(cropped, 0, 0)
	if c.Hex != "#FF0000" {
		t.Errorf("crop changed with its source: got %s", c.Hex)
	}
}

func TestEncodePNGBase64(t *testing.T) {
	img := quadrantImage(20, 20)

	encoded, err := EncodePNGBase64(img)
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}

	out, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %v, want 20x20", out.Bounds())
	}
}
