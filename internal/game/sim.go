package game

import "math"

// StepBall advances one ball by a single fixed timestep: integration, wind,
// Magnus lift, spin decay, landing resolution (hazard, sand, solid, bounce or
// settle), air drag, rolling friction and the stop checks. A resting ball is
// left untouched.
func StepBall(b *Ball, course *Course, w *Wind, dt float64) {
	if !b.IsMoving {
		return
	}

	bounced := false

	b.VZ -= GravityAccel * dt
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.Z += b.VZ * dt

	// Airborne is judged before the landing check so wind and lift apply to
	// the tick the ball comes down on.
	airborne := b.Z > 1.0 || b.InAir

	windFactor := GroundWindFactor
	if airborne {
		windFactor = 1.0
	}
	b.VX += w.Dir.X * w.AppliedStrength * dt * windFactor
	b.VY += w.Dir.Y * w.AppliedStrength * dt * windFactor

	// Magnus lift: backspin couples to the horizontal velocity only.
	if airborne {
		magnusX := clamp(-b.SpinY*b.VY*MagnusCoef, -MagnusMax, MagnusMax)
		magnusY := clamp(b.SpinY*b.VX*MagnusCoef, -MagnusMax, MagnusMax)
		b.VX += magnusX
		b.VY += magnusY
	}

	spinDamp := SpinGroundDamp
	if airborne {
		spinDamp = SpinAirDamp
	}
	b.SpinX *= spinDamp
	b.SpinY *= spinDamp
	b.SpinZ *= spinDamp

	terrain := course.SampleAt(b.X, b.Y)

	if b.Z <= 0 {
		b.Z = 0
		if math.Abs(b.VZ) < 6.0 {
			b.VZ = 0
			b.InAir = false
		}

		switch {
		case terrain.IsHazard:
			// Shot-ending: revert to the last resting spot. The stroke stands.
			b.X = b.LastX
			b.Y = b.LastY
			b.VX, b.VY, b.VZ = 0, 0, 0
			b.InAir = false
			b.IsMoving = false
			return

		case terrain.IsSand:
			if b.Speed() < SandStopSpeed {
				b.VX, b.VY, b.VZ = 0, 0, 0
				b.InAir = false
				b.IsMoving = false
			} else {
				// Embeds and rolls out a short way.
				b.VX *= SandEmbedFactor
				b.VY *= SandEmbedFactor
				b.VZ = 0
				b.InAir = false
			}
			b.LastX = b.X
			b.LastY = b.Y

		case terrain.IsSolid:
			b.X = b.LastX
			b.Y = b.LastY
			b.VX *= -SolidRebound
			b.VY *= -SolidRebound
			b.VZ = 0
			b.InAir = false

		default:
			b.VX *= terrain.RollDamping
			b.VY *= terrain.RollDamping

			if terrain.BounceFactor > 0.01 && b.VZ < -10.0 {
				b.VZ = -b.VZ * terrain.BounceFactor
				b.InAir = b.VZ > 4.0
				bounced = true
			} else {
				b.VZ = 0
				b.InAir = false
			}

			if !b.InAir {
				b.LastX = b.X
				b.LastY = b.Y
			}
		}
	}

	// A bounce this tick suppresses air drag this tick.
	if airborne && !bounced {
		b.VX -= b.VX * AirDragCoef * dt
		b.VY -= b.VY * AirDragCoef * dt
	}

	// Rolling friction pass. On a landing tick this re-applies roll damping a
	// second time; downstream tuning assumes that, so it stays.
	if b.Z <= 0 && !b.InAir && (math.Abs(b.VX) > 0 || math.Abs(b.VY) > 0) {
		rolling := course.SampleAt(b.X, b.Y)
		b.VX *= rolling.RollDamping
		b.VY *= rolling.RollDamping
	}

	b.X = clamp(b.X, 0, CourseWidth-1)
	b.Y = clamp(b.Y, 0, CourseHeight-1)

	speed := b.Speed()
	if speed < StopSpeed && b.Z <= 0.05 && math.Abs(b.VZ) < 0.2 {
		b.VX, b.VY, b.VZ = 0, 0, 0
		b.InAir = false
		b.IsMoving = false
	} else if speed < LowSpeedKill && b.Z <= 0.05 && !b.InAir {
		b.VX, b.VY = 0, 0
		b.IsMoving = false
	}
}
