package game

import (
	"image"
	"image/color"
	"testing"
)

func uniformCourse(c color.RGBA) *Course {
	img := image.NewRGBA(image.Rect(0, 0, MapSize, MapSize))
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return NewCourse(img)
}

var (
	fairwayColor = color.RGBA{100, 200, 100, 255}
	waterColor   = color.RGBA{60, 90, 200, 255}
	sandColor    = color.RGBA{200, 180, 90, 255}
	forestColor  = color.RGBA{50, 70, 50, 255}
	roughColor   = color.RGBA{80, 140, 60, 255}
)

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    TerrainProps
	}{
		{"fairway", 100, 200, 100, TerrainProps{RollDamping: 0.96, BounceFactor: 0.60, LaunchFactor: 1.0}},
		{"water", 60, 90, 200, TerrainProps{RollDamping: 0.92, LaunchFactor: 0, IsHazard: true}},
		{"forest", 50, 70, 50, TerrainProps{RollDamping: 0.40, LaunchFactor: 0.40, IsSolid: true}},
		{"sand", 200, 180, 90, TerrainProps{RollDamping: 0.45, BounceFactor: 0.05, LaunchFactor: 0.35, IsSand: true}},
		{"green", 100, 220, 80, TerrainProps{RollDamping: 0.98, BounceFactor: 0.75, LaunchFactor: 1.05}},
		{"rough", 80, 140, 60, TerrainProps{RollDamping: 0.80, BounceFactor: 0.55, LaunchFactor: 0.85}},
		{"hole marker plays as fairway", 10, 10, 10, TerrainProps{RollDamping: 0.96, BounceFactor: 0.60, LaunchFactor: 1.0}},
		{"start marker plays as fairway", 220, 40, 40, TerrainProps{RollDamping: 0.96, BounceFactor: 0.60, LaunchFactor: 1.0}},
		{"unknown color defaults to fairway", 180, 180, 180, TerrainProps{RollDamping: 0.96, BounceFactor: 0.60, LaunchFactor: 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("Classify(%d,%d,%d) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestMarkersAreNeverHazards(t *testing.T) {
	// A dark pixel with a blue tint still counts as the hole marker, not water.
	p := Classify(20, 20, 28)
	if p.IsHazard || p.IsSolid || p.IsSand {
		t.Errorf("near-black pixel should classify as plain fairway, got %+v", p)
	}
}

func TestSampleAtScalesTilesToCourseSpace(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, MapSize, MapSize))
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			img.SetRGBA(x, y, fairwayColor)
		}
	}
	img.SetRGBA(10, 12, waterColor)
	course := NewCourse(img)

	// Tile (10,12) covers course coordinates [200,220)x[240,260).
	if !course.SampleAt(210, 250).IsHazard {
		t.Error("center of the water tile should sample as hazard")
	}
	if course.SampleAt(190, 250).IsHazard {
		t.Error("neighboring tile should not sample as hazard")
	}
}

func TestSampleAtClampsOutOfBounds(t *testing.T) {
	course := DefaultCourse()
	if course.SampleAt(-500, -500) != course.SampleAt(0, 0) {
		t.Error("negative coordinates should clamp to the top-left sample")
	}
	if course.SampleAt(1e6, 1e6) != course.SampleAt(CourseWidth-1, CourseHeight-1) {
		t.Error("oversized coordinates should clamp to the bottom-right sample")
	}
}

func TestDefaultCourseMarkers(t *testing.T) {
	course := DefaultCourse()

	hole, ok := course.FindHole()
	if !ok {
		t.Fatal("built-in course must carry a hole marker")
	}
	if hole.X != 510 || hole.Y != 110 {
		t.Errorf("hole at (%.0f,%.0f), want (510,110)", hole.X, hole.Y)
	}

	start := course.FindStart()
	if start.X != 110 || start.Y != 510 {
		t.Errorf("start at (%.0f,%.0f), want (110,510)", start.X, start.Y)
	}

	// Both markers must be playable ground.
	for _, p := range []Vec2{hole, start} {
		props := course.SampleAt(p.X, p.Y)
		if props.IsHazard || props.IsSolid || props.IsSand {
			t.Errorf("marker at (%.0f,%.0f) sits on unplayable terrain: %+v", p.X, p.Y, props)
		}
	}
}

func TestFindStartFallsBackToCenter(t *testing.T) {
	course := uniformCourse(fairwayColor)
	start := course.FindStart()
	if start.X != CourseWidth/2 || start.Y != CourseHeight/2 {
		t.Errorf("start fallback at (%.0f,%.0f), want course center", start.X, start.Y)
	}
	if _, ok := course.FindHole(); ok {
		t.Error("uniform course should report no hole marker")
	}
}
