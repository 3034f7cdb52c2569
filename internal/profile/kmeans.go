package profile

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyImage is returned when there are no pixels to cluster.
var ErrEmptyImage = errors.New("image has no pixels")

// Schema is the colour space clustering runs in.
type Schema string

const (
	SchemaRGB Schema = "rgb"
	SchemaHSV Schema = "hsv"
	SchemaLab Schema = "lab"
)

// Schemas lists every supported schema in a stable order.
func Schemas() []Schema {
	return []Schema{SchemaRGB, SchemaHSV, SchemaLab}
}

// Options control the clustering.
type Options struct {
	// MaxK is the largest number of clusters computed. Must be at least 1.
	MaxK int `json:"max_k" mapstructure:"max_k"`

	// MaxIterations bounds Lloyd iterations per run.
	MaxIterations int `json:"max_iterations" mapstructure:"max_iterations"`

	// SampleSize is the longest edge, in pixels, the image is downsampled to
	// before clustering. 0 disables downsampling.
	SampleSize int `json:"sample_size" mapstructure:"sample_size"`

	// Seed makes centre initialisation reproducible.
	Seed int64 `json:"seed" mapstructure:"seed"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxK:          5,
		MaxIterations: 20,
		SampleSize:    64,
		Seed:          1,
	}
}

// Cluster is one colour cluster of a profile.
type Cluster struct {
	// Center holds the centre in the schema's own coordinates:
	// rgb 0-1 per channel, hsv hue 0-360 with s and v 0-1, lab L 0-1 with a and b.
	Center [3]float64 `json:"center"`

	// Hex is the centre converted back to "#rrggbb".
	Hex string `json:"hex"`

	// Percentage is the share of sampled pixels in this cluster (0-100).
	Percentage float64 `json:"percentage"`
}

// KmeansProfile is the result of clustering with a fixed k.
type KmeansProfile struct {
	Schema   Schema    `json:"schema"`
	K        int       `json:"k"`
	Clusters []Cluster `json:"clusters"` // sorted by Percentage, descending
}

// Profiles holds a profile for every schema and every k.
type Profiles struct {
	Options  Options                    `json:"options"`
	Pixels   int                        `json:"pixels"`
	BySchema map[Schema][]KmeansProfile `json:"by_schema"`
}

// Get returns the profile for schema and k.
func (p *Profiles) Get(schema Schema, k int) (KmeansProfile, bool) {
	if p == nil {
		return KmeansProfile{}, false
	}
	list := p.BySchema[schema]
	if k < 1 || k > len(list) {
		return KmeansProfile{}, false
	}
	return list[k-1], true
}

// Compute clusters img for every schema and every k in 1..opts.MaxK.
func Compute(img image.Image, opts Options) (*Profiles, error) {
	if opts.MaxK < 1 {
		return nil, fmt.Errorf("invalid max_k %d: must be at least 1", opts.MaxK)
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	colors := samplePixels(img, opts.SampleSize)
	if len(colors) == 0 {
		return nil, ErrEmptyImage
	}

	result := &Profiles{
		Options:  opts,
		Pixels:   len(colors),
		BySchema: make(map[Schema][]KmeansProfile, len(Schemas())),
	}

	for _, schema := range Schemas() {
		points := make([][3]float64, len(colors))
		for i, c := range colors {
			points[i] = toPoint(schema, c)
		}

		list := make([]KmeansProfile, 0, opts.MaxK)
		for k := 1; k <= opts.MaxK; k++ {
			rng := rand.New(rand.NewSource(opts.Seed + int64(k)))
			centers, counts := kmeans(points, k, opts.MaxIterations, rng)
			list = append(list, buildProfile(schema, k, centers, counts, len(points)))
		}
		result.BySchema[schema] = list
	}

	return result, nil
}

// samplePixels downsamples img so its longest edge is at most size and
// returns every pixel that is not fully transparent as a straight-alpha
// colorful.Color. Transparent pixels are dropped rather than read as black.
func samplePixels(img image.Image, size int) []colorful.Color {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var rgba *image.RGBA
	if size > 0 && (w > size || h > size) {
		scale := float64(size) / math.Max(float64(w), float64(h))
		nw := int(math.Max(1, math.Round(float64(w)*scale)))
		nh := int(math.Max(1, math.Round(float64(h)*scale)))
		rgba = transform.Resize(img, nw, nh, transform.Linear)
	} else {
		rgba = clone.AsRGBA(img)
	}

	rb := rgba.Bounds()
	out := make([]colorful.Color, 0, rb.Dx()*rb.Dy())
	for y := rb.Min.Y; y < rb.Max.Y; y++ {
		for x := rb.Min.X; x < rb.Max.X; x++ {
			i := rgba.PixOffset(x, y)
			a := float64(rgba.Pix[i+3])
			if a == 0 {
				continue
			}
			// *image.RGBA is premultiplied; dividing by alpha restores the colour.
			out = append(out, colorful.Color{
				R: math.Min(1, float64(rgba.Pix[i])/a),
				G: math.Min(1, float64(rgba.Pix[i+1])/a),
				B: math.Min(1, float64(rgba.Pix[i+2])/a),
			})
		}
	}
	return out
}

// toPoint maps a colour into the Euclidean space clustering runs in.
// HSV is mapped onto a cylinder so hues 359 and 1 are neighbours.
func toPoint(schema Schema, c colorful.Color) [3]float64 {
	switch schema {
	case SchemaHSV:
		h, s, v := c.Hsv()
		rad := h * math.Pi / 180
		return [3]float64{s * math.Cos(rad), s * math.Sin(rad), v}
	case SchemaLab:
		l, a, b := c.Lab()
		return [3]float64{l, a, b}
	default:
		return [3]float64{c.R, c.G, c.B}
	}
}

// fromPoint converts a clustering-space point back into schema coordinates
// and a displayable colour.
func fromPoint(schema Schema, p [3]float64) ([3]float64, colorful.Color) {
	switch schema {
	case SchemaHSV:
		s := math.Hypot(p[0], p[1])
		h := math.Atan2(p[1], p[0]) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		if s < 1e-9 {
			h = 0
		}
		return [3]float64{h, s, p[2]}, colorful.Hsv(h, s, p[2])
	case SchemaLab:
		return p, colorful.Lab(p[0], p[1], p[2])
	default:
		return p, colorful.Color{R: p[0], G: p[1], B: p[2]}
	}
}

func buildProfile(schema Schema, k int, centers [][3]float64, counts []int, total int) KmeansProfile {
	clusters := make([]Cluster, 0, len(centers))
	for i, center := range centers {
		coords, c := fromPoint(schema, center)
		clusters = append(clusters, Cluster{
			Center:     coords,
			Hex:        c.Clamped().Hex(),
			Percentage: math.Round(float64(counts[i])/float64(total)*10000) / 100,
		})
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Percentage > clusters[j].Percentage
	})
	return KmeansProfile{Schema: schema, K: k, Clusters: clusters}
}

// kmeans runs Lloyd's algorithm with k-means++ seeding. It returns k centres
// and the number of points assigned to each. Empty clusters keep their
// previous centre.
func kmeans(points [][3]float64, k, maxIter int, rng *rand.Rand) ([][3]float64, []int) {
	centers := seedCenters(points, k, rng)
	assign := make([]int, len(points))
	counts := make([]int, k)

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i := range counts {
			counts[i] = 0
		}
		for i, p := range points {
			best := nearest(centers, p)
			if best != assign[i] {
				assign[i] = best
				changed = true
			}
			counts[best]++
		}

		sums := make([][3]float64, k)
		for i, p := range points {
			c := assign[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			sums[c][2] += p[2]
		}
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			n := float64(counts[c])
			centers[c] = [3]float64{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
		}

		if !changed && iter > 0 {
			break
		}
	}

	return centers, counts
}

func seedCenters(points [][3]float64, k int, rng *rand.Rand) [][3]float64 {
	centers := make([][3]float64, 0, k)
	centers = append(centers, points[rng.Intn(len(points))])

	dist := make([]float64, len(points))
	for len(centers) < k {
		var total float64
		for i, p := range points {
			dist[i] = sqDist(p, centers[nearest(centers, p)])
			total += dist[i]
		}
		if total == 0 {
			// Fewer distinct colours than k: repeat an existing centre.
			centers = append(centers, centers[len(centers)-1])
			continue
		}
		target := rng.Float64() * total
		chosen := len(points) - 1
		for i, d := range dist {
			target -= d
			if target <= 0 {
				chosen = i
				break
			}
		}
		centers = append(centers, points[chosen])
	}
	return centers
}

func nearest(centers [][3]float64, p [3]float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centers {
		if d := sqDist(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(a, b [3]float64) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return d0*d0 + d1*d1 + d2*d2
}
