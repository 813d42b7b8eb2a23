package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestWindStrengthStaysBounded(t *testing.T) {
	w := NewWind(rand.New(rand.NewSource(7)))
	for i := 0; i < 20000; i++ {
		w.Tick(FixedDT)
		if w.AppliedStrength < 0 || w.AppliedStrength > MaxWindStrength {
			t.Fatalf("tick %d: applied strength %.3f outside [0,%.0f]", i, w.AppliedStrength, MaxWindStrength)
		}
		if mag := w.Dir.Magnitude(); math.Abs(mag-1) > 1e-9 {
			t.Fatalf("tick %d: direction magnitude %.12f, want 1", i, mag)
		}
	}
}

func TestWindConvergesTowardTarget(t *testing.T) {
	w := NewWind(rand.New(rand.NewSource(1)))
	w.Timer = 1e9 // keep the gust schedule out of the way
	w.TargetStrength = 40

	prev := w.AppliedStrength
	for i := 0; i < 100; i++ {
		w.Tick(FixedDT)
		if w.AppliedStrength < prev {
			t.Fatalf("tick %d: applied strength decreased %.6f -> %.6f while below target", i, prev, w.AppliedStrength)
		}
		if w.AppliedStrength > 40 {
			t.Fatalf("tick %d: applied strength %.6f overshot target 40", i, w.AppliedStrength)
		}
		prev = w.AppliedStrength
	}
	if math.Abs(w.AppliedStrength-40) > 1e-6 {
		t.Errorf("applied strength %.9f after 100 ticks, want ~40", w.AppliedStrength)
	}
}

func TestWindPeriodWithinRange(t *testing.T) {
	w := NewWind(rand.New(rand.NewSource(3)))
	for i := 0; i < 50; i++ {
		w.Timer = 0.0001
		w.Tick(FixedDT)
		if w.Timer < MinWindPeriod || w.Timer >= MinWindPeriod+WindPeriodJitter {
			t.Fatalf("redrawn period %.4f outside [%.0f,%.0f)", w.Timer, MinWindPeriod, MinWindPeriod+WindPeriodJitter)
		}
	}
}

func TestWindDeterministicBySeed(t *testing.T) {
	a := NewWind(rand.New(rand.NewSource(42)))
	b := NewWind(rand.New(rand.NewSource(42)))
	for i := 0; i < 5000; i++ {
		a.Tick(FixedDT)
		b.Tick(FixedDT)
	}
	if a.Dir != b.Dir || a.AppliedStrength != b.AppliedStrength || a.TargetStrength != b.TargetStrength {
		t.Errorf("same seed diverged: a=%+v b=%+v", a, b)
	}
}
