package game

// Physics and course constants for the golf simulation.
// Launch factors and stop thresholds are tuned against this exact integration
// order; treat the set as one unit when retuning.

const (
	GravityAccel = 800.0
	FixedDT      = 0.016

	MapSize      = 32
	TileSize     = 20
	CourseWidth  = MapSize * TileSize // 640
	CourseHeight = MapSize * TileSize

	LaunchScale = 4.0
	ZScale      = 0.6
	AirDragCoef = 1.6
	MaxPower    = 150.0
	BallRadius  = 6.0
	DefaultLoft = 45.0
	MaxLoft     = 75.0

	StopSpeed    = 2.0
	LowSpeedKill = 4.5

	MaxWindStrength  = 50.0
	WindSmoothness   = 0.25
	MinWindPeriod    = 3.0
	WindPeriodJitter = 3.0
	GroundWindFactor = 0.08

	MagnusCoef     = 0.0012
	MagnusMax      = 10.0
	SpinAirDamp    = 0.996
	SpinGroundDamp = 0.985

	SandLaunchPenalty = 0.45
	SandEmbedFactor   = 0.06
	SandStopSpeed     = 40.0
	SolidRebound      = 0.25

	HoleRadius = 15.0
)
