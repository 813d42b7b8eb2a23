package game

import (
	"math"
	"math/rand"
)

// Wind is the stochastic environmental state shared by every ball in a match.
// Direction jumps at reset boundaries (gusts); strength is smoothed so it
// never changes discontinuously.
type Wind struct {
	Dir             Vec2    `json:"dir"`
	TargetStrength  float64 `json:"target_strength"`
	AppliedStrength float64 `json:"applied_strength"`
	Timer           float64 `json:"-"`

	rng *rand.Rand
}

// NewWind creates a wind state with the given random source. The source must
// not be shared with anything else; wind re-seeding is the only randomness in
// the simulation and tests pin it by seed.
func NewWind(rng *rand.Rand) *Wind {
	return &Wind{
		Dir:   Vec2{X: 1, Y: 0},
		Timer: 4.0,
		rng:   rng,
	}
}

// Tick advances the wind by dt. When the timer runs out a new direction,
// target strength and period are drawn; applied strength always relaxes
// toward the target.
func (w *Wind) Tick(dt float64) {
	w.Timer -= dt
	if w.Timer <= 0 {
		angle := w.rng.Float64() * 2 * math.Pi
		w.Dir = Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		w.TargetStrength = w.rng.Float64() * MaxWindStrength
		w.Timer = MinWindPeriod + w.rng.Float64()*WindPeriodJitter
	}
	w.AppliedStrength += (w.TargetStrength - w.AppliedStrength) * WindSmoothness
}
