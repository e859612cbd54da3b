package scene

import (
	"testing"

	"quad-engine/math"
)

func TestParticleEmitterSpawnsAtRate(t *testing.T) {
	e := NewParticleEmitter(100)
	e.Rate = 10
	e.MinLife, e.MaxLife = 5, 5

	e.Update(0.5)
	if e.Count() != 5 {
		t.Errorf("count = %d, want 5", e.Count())
	}
}

func TestParticleEmitterRespectsPool(t *testing.T) {
	e := NewParticleEmitter(3)
	e.Rate = 1000
	e.MinLife, e.MaxLife = 5, 5

	e.Update(1)
	if e.Count() != 3 {
		t.Errorf("count = %d, want 3", e.Count())
	}
	e.Update(0.01)
	if e.Count() != 3 {
		t.Errorf("count after second update = %d, want 3", e.Count())
	}
}

func TestParticleEmitterExpires(t *testing.T) {
	e := NewSmokeEmitter(10)
	e.Rate = 10
	e.MinLife, e.MaxLife = 0.5, 0.5

	e.Update(0.15)
	if e.Count() != 1 {
		t.Fatalf("count = %d, want 1", e.Count())
	}
	e.Active = false
	e.Update(1)
	if e.Count() != 0 {
		t.Errorf("count = %d after lifetime, want 0", e.Count())
	}
}

func TestParticleEmitterDirection(t *testing.T) {
	e := NewParticleEmitter(50)
	e.Position = math.Vec2{X: 10, Y: 10}
	e.Direction = 0 // +X
	e.Spread = 0
	e.Gravity = math.Vec2{}
	e.MinSpeed, e.MaxSpeed = 100, 100
	e.MinLife, e.MaxLife = 5, 5
	e.Rate = 10

	e.Update(0.15)
	if e.Count() != 1 {
		t.Fatalf("count = %d, want 1", e.Count())
	}
	p := e.Particles[0]
	if !approx(p.Velocity.X, 100) || !approx(p.Velocity.Y, 0) {
		t.Errorf("velocity = %v, want (100, 0)", p.Velocity)
	}
	if !approx(p.Position.X, 25) || !approx(p.Position.Y, 10) {
		t.Errorf("position = %v, want (25, 10)", p.Position)
	}
}

func TestParticleColorFades(t *testing.T) {
	e := NewParticleEmitter(10)
	e.Rate = 10
	e.MinLife, e.MaxLife = 1, 1

	e.Update(0.15)
	e.Active = false
	e.Update(0.5)
	p := e.Particles[0]
	if p.Color.A >= e.StartColor.A || p.Color.A <= e.EndColor.A {
		t.Errorf("alpha = %v, want between end and start", p.Color.A)
	}
	if p.Size >= e.MaxSize || p.Size <= e.MinSize {
		t.Errorf("size = %v, want between min and max", p.Size)
	}
}
