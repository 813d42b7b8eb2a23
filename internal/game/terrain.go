package game

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// TerrainProps describes how a surface sample behaves under the ball.
// It is derived from a color sample on every query and never cached.
type TerrainProps struct {
	RollDamping  float64 `json:"roll_damping"`
	BounceFactor float64 `json:"bounce_factor"`
	LaunchFactor float64 `json:"launch_factor"`
	IsHazard     bool    `json:"is_hazard"`
	IsSolid      bool    `json:"is_solid"`
	IsSand       bool    `json:"is_sand"`
}

func fairwayProps() TerrainProps {
	return TerrainProps{RollDamping: 0.96, BounceFactor: 0.60, LaunchFactor: 1.0}
}

// Classify maps a 24-bit color sample to terrain properties. Rules are checked
// in priority order and the first match wins. The hole and start markers are
// course annotations, not terrain, so they classify as plain fairway.
func Classify(r, g, b uint8) TerrainProps {
	R, G, B := int(r), int(g), int(b)

	// Hole marker (near black)
	if R < 30 && G < 30 && B < 30 {
		return fairwayProps()
	}
	// Start marker (strong red)
	if R > 150 && R > G+40 && R > B+40 {
		return fairwayProps()
	}
	// Water
	if B > 120 && B > G+20 && B > R+20 {
		return TerrainProps{RollDamping: 0.92, LaunchFactor: 0, IsHazard: true}
	}
	// Forest / solid obstruction
	if R < 70 && G < 80 && B < 70 && G <= R+20 {
		return TerrainProps{RollDamping: 0.40, LaunchFactor: 0.40, IsSolid: true}
	}
	// Sand
	if R > 130 && G > 130 && B < 100 && absInt(R-G) < 30 && R+G > 260 && G < 200 {
		return TerrainProps{RollDamping: 0.45, BounceFactor: 0.05, LaunchFactor: 0.35, IsSand: true}
	}
	// Green (putting surface)
	if G > 200 && R > 80 && B < 150 && G > R && G > B {
		return TerrainProps{RollDamping: 0.98, BounceFactor: 0.75, LaunchFactor: 1.05}
	}
	// Rough
	if G >= 85 && G <= 170 && G > R+8 && G > B+8 && R <= 120 && B <= 120 {
		return TerrainProps{RollDamping: 0.80, BounceFactor: 0.55, LaunchFactor: 0.85}
	}
	return fairwayProps()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Course wraps the terrain raster and maps continuous simulation coordinates
// onto it. The raster is typically much smaller than the course (one pixel per
// tile); SampleAt does the scaling.
type Course struct {
	img    image.Image
	width  int
	height int
}

// NewCourse wraps a decoded raster image.
func NewCourse(img image.Image) *Course {
	b := img.Bounds()
	return &Course{img: img, width: b.Dx(), height: b.Dy()}
}

// LoadCourse reads a PNG course map from disk.
func LoadCourse(path string) (*Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course map: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode course map: %w", err)
	}
	return NewCourse(img), nil
}

func (c *Course) colorAt(px, py int) (uint8, uint8, uint8) {
	b := c.img.Bounds()
	r, g, bl, _ := c.img.At(b.Min.X+px, b.Min.Y+py).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)
}

// SampleAt classifies the terrain under a course-space point. Out-of-bounds
// queries clamp to the nearest edge.
func (c *Course) SampleAt(x, y float64) TerrainProps {
	x = clamp(x, 0, CourseWidth-1)
	y = clamp(y, 0, CourseHeight-1)
	px := clampInt(int(x/CourseWidth*float64(c.width)), 0, c.width-1)
	py := clampInt(int(y/CourseHeight*float64(c.height)), 0, c.height-1)
	r, g, b := c.colorAt(px, py)
	return Classify(r, g, b)
}

// FindHole scans the raster for the hole marker (near black). The returned
// point is the center of the marked tile in course coordinates. ok is false
// when the map carries no marker; win detection is disabled in that case.
func (c *Course) FindHole() (Vec2, bool) {
	for py := 0; py < c.height; py++ {
		for px := 0; px < c.width; px++ {
			r, g, b := c.colorAt(px, py)
			if r < 30 && g < 30 && b < 30 {
				return c.tileCenter(px, py), true
			}
		}
	}
	return Vec2{X: -1, Y: -1}, false
}

// FindStart scans for the start marker (strong red), falling back to the
// course center when the map carries none.
func (c *Course) FindStart() Vec2 {
	for py := 0; py < c.height; py++ {
		for px := 0; px < c.width; px++ {
			r, g, b := c.colorAt(px, py)
			if r > 150 && int(r) > int(g)+40 && int(r) > int(b)+40 {
				return c.tileCenter(px, py)
			}
		}
	}
	return Vec2{X: CourseWidth * 0.5, Y: CourseHeight * 0.5}
}

func (c *Course) tileCenter(px, py int) Vec2 {
	sx := float64(CourseWidth) / float64(c.width)
	sy := float64(CourseHeight) / float64(c.height)
	return Vec2{X: (float64(px) + 0.5) * sx, Y: (float64(py) + 0.5) * sy}
}

// DefaultCourse builds the synthetic fallback map used when no course asset is
// available: a fairway field with a start marker, hole marker, water, sand,
// forest and rough patches.
func DefaultCourse() *Course {
	img := image.NewRGBA(image.Rect(0, 0, MapSize, MapSize))
	fill := func(x0, y0, w, h int, c color.RGBA) {
		for y := y0; y < y0+h && y < MapSize; y++ {
			for x := x0; x < x0+w && x < MapSize; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}

	fill(0, 0, MapSize, MapSize, color.RGBA{100, 200, 100, 255}) // fairway
	fill(10, 10, 8, 8, color.RGBA{60, 90, 200, 255})             // water
	fill(15, 20, 5, 5, color.RGBA{200, 180, 90, 255})            // sand
	fill(3, 14, 5, 5, color.RGBA{50, 70, 50, 255})               // forest
	fill(20, 12, 5, 6, color.RGBA{80, 140, 60, 255})             // rough
	fill(5, 25, 2, 2, color.RGBA{220, 40, 40, 255})              // start marker
	fill(25, 5, 2, 2, color.RGBA{10, 10, 10, 255})               // hole marker

	return NewCourse(img)
}
