package game

import "math"

// BallPhase is the explicit motion state derived from the ball's flags.
type BallPhase string

const (
	PhaseResting        BallPhase = "RESTING"
	PhaseAirborne       BallPhase = "AIRBORNE"
	PhaseGroundedMoving BallPhase = "GROUNDED_MOVING"
)

// Ball is the mutable physical state of one competitor's ball.
type Ball struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	VZ float64 `json:"vz"`

	SpinX float64 `json:"spin_x"`
	SpinY float64 `json:"spin_y"`
	SpinZ float64 `json:"spin_z"`

	Radius   float64 `json:"radius"`
	InAir    bool    `json:"in_air"`
	IsMoving bool    `json:"is_moving"`

	// Last resting ground position; the rollback anchor for hazard and solid
	// obstruction landings.
	LastX float64 `json:"last_x"`
	LastY float64 `json:"last_y"`

	// Loft angle in degrees, kept between shots and adjustable via the API.
	Loft float64 `json:"loft"`

	// UserSetSpin marks spin applied deliberately before a shot; the next
	// launch composes with it instead of overwriting it, then clears it.
	UserSetSpin bool `json:"-"`
}

// NewBall creates a resting ball at the given start position.
func NewBall(start Vec2) *Ball {
	return &Ball{
		X:      start.X,
		Y:      start.Y,
		Radius: BallRadius,
		LastX:  start.X,
		LastY:  start.Y,
		Loft:   DefaultLoft,
	}
}

// Phase reports the ball's motion state.
func (b *Ball) Phase() BallPhase {
	switch {
	case !b.IsMoving:
		return PhaseResting
	case b.Z > 1.0 || b.InAir:
		return PhaseAirborne
	default:
		return PhaseGroundedMoving
	}
}

// Speed is the horizontal speed.
func (b *Ball) Speed() float64 {
	return math.Sqrt(b.VX*b.VX + b.VY*b.VY)
}

// Position is the ball's ground-plane position.
func (b *Ball) Position() Vec2 {
	return Vec2{X: b.X, Y: b.Y}
}

// AddSpin applies deliberate pre-shot spin. The next launch adds to it rather
// than replacing it.
func (b *Ball) AddSpin(dx, dy float64) {
	b.SpinX += dx
	b.SpinY += dy
	b.UserSetSpin = true
}

// SetLoft sets the stored loft angle, clamped to the legal range.
func (b *Ball) SetLoft(deg float64) {
	b.Loft = clamp(deg, 0, MaxLoft)
}

// Shoot launches the ball. Degenerate aim defaults to straight up the course;
// power and loft are clamped, never rejected. The caller is responsible for
// checking the ball is at rest.
func (b *Ball) Shoot(course *Course, dirX, dirY, power, loftDeg float64) {
	length := math.Sqrt(dirX*dirX + dirY*dirY)
	if length < 1e-6 {
		dirX, dirY, length = 0, -1, 1
	}
	dirX /= length
	dirY /= length

	power = clamp(power, 0, MaxPower)
	loftDeg = clamp(loftDeg, 0, MaxLoft)

	terrain := course.SampleAt(b.X, b.Y)
	loftRad := loftDeg * math.Pi / 180
	baseLaunch := power * LaunchScale * terrain.LaunchFactor
	if terrain.IsSand {
		baseLaunch *= SandLaunchPenalty
	}

	horizontal := baseLaunch * math.Cos(loftRad)
	b.VX = horizontal * dirX
	b.VY = horizontal * dirY
	b.VZ = baseLaunch * math.Sin(loftRad) * ZScale

	// Fresh launch spin unless the player set spin deliberately, in which case
	// the shot adds a smaller increment on top of it.
	if !b.UserSetSpin {
		b.SpinY = baseLaunch * 0.02
		b.SpinX = -dirX * baseLaunch * 0.01
	} else {
		b.SpinY += baseLaunch * 0.005
		b.SpinX += -dirX * baseLaunch * 0.0025
	}
	b.SpinX = clamp(b.SpinX, -baseLaunch*0.08, baseLaunch*0.08)
	b.SpinY = clamp(b.SpinY, -baseLaunch*0.25, baseLaunch*0.25)

	b.InAir = b.VZ > 1.0
	b.IsMoving = true

	// Anchor the rollback point for this shot.
	if b.Z <= 0 {
		b.LastX = b.X
		b.LastY = b.Y
	}

	b.UserSetSpin = false
	b.Loft = loftDeg
}
