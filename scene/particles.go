package scene

import (
	"math/rand"

	"quad-engine/core"
	"quad-engine/math"
)

// Particle is a single live particle instance.
type Particle struct {
	Position math.Vec2
	Velocity math.Vec2
	Rotation float32    // degrees
	Spin     float32    // degrees per second
	Life     float32    // remaining lifetime in seconds
	MaxLife  float32    // total initial lifetime in seconds
	Size     float32    // edge length in world units
	Color    core.Color // updated each frame by lerping StartColor→EndColor
}

// ParticleEmitter spawns and simulates CPU particles. Callers draw
// Particles as quads centered on each Position.
type ParticleEmitter struct {
	// Spawn position + direction
	Position  math.Vec2
	Direction float32 // mean emission angle in degrees, 90 = up
	Spread    float32 // half-angle spread in degrees

	// Spawn rate
	Rate int // particles per second

	// Per-particle random ranges
	MinLife, MaxLife   float32 // lifetime range (seconds)
	MinSpeed, MaxSpeed float32 // initial speed range (units/s)
	MinSize, MaxSize   float32
	MaxSpin            float32 // spin is drawn from [-MaxSpin, MaxSpin]

	// Colour over lifetime: linearly interpolated from birth to death
	StartColor core.Color
	EndColor   core.Color

	// Constant acceleration applied every frame
	Gravity math.Vec2

	// Control
	Active bool // if false no new particles are spawned; existing ones finish out

	// Live particles
	Particles []Particle

	pool       int
	spawnAccum float32
	rng        *rand.Rand
}

// NewParticleEmitter returns a fire-like emitter sized in pixels.
// Adjust fields before the first Update to customise behaviour.
func NewParticleEmitter(maxParticles int) *ParticleEmitter {
	return &ParticleEmitter{
		Direction:  90,
		Spread:     20,
		Rate:       80,
		MinLife:    0.6,
		MaxLife:    1.8,
		MinSpeed:   60,
		MaxSpeed:   160,
		MinSize:    4,
		MaxSize:    14,
		MaxSpin:    180,
		StartColor: core.Color{R: 1.0, G: 0.7, B: 0.15, A: 1.0},
		EndColor:   core.Color{R: 0.8, G: 0.05, B: 0.0, A: 0.0},
		Gravity:    math.Vec2{Y: 20},
		Active:     true,
		Particles:  make([]Particle, 0, maxParticles),
		pool:       maxParticles,
		rng:        rand.New(rand.NewSource(42)),
	}
}

// NewSmokeEmitter returns a slow rising smoke emitter.
func NewSmokeEmitter(maxParticles int) *ParticleEmitter {
	return &ParticleEmitter{
		Direction:  90,
		Spread:     30,
		Rate:       20,
		MinLife:    2.0,
		MaxLife:    4.0,
		MinSpeed:   15,
		MaxSpeed:   45,
		MinSize:    10,
		MaxSize:    30,
		MaxSpin:    30,
		StartColor: core.Color{R: 0.3, G: 0.3, B: 0.3, A: 0.4},
		EndColor:   core.Color{R: 0.6, G: 0.6, B: 0.6, A: 0.0},
		Gravity:    math.Vec2{Y: 5},
		Active:     true,
		Particles:  make([]Particle, 0, maxParticles),
		pool:       maxParticles,
		rng:        rand.New(rand.NewSource(99)),
	}
}

// Update advances the simulation by dt seconds.
func (e *ParticleEmitter) Update(dt float32) {
	if e.Active {
		e.spawnAccum += float32(e.Rate) * dt
		for e.spawnAccum >= 1.0 && len(e.Particles) < e.pool {
			e.spawnParticle()
			e.spawnAccum -= 1.0
		}
		// a full pool does not bank spawns for later
		if len(e.Particles) >= e.pool {
			e.spawnAccum = 0
		}
	}

	// Integrate and cull dead particles (compact in-place)
	write := 0
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Velocity = p.Velocity.Add(e.Gravity.Mul(dt))
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Rotation += p.Spin * dt

		t := 1.0 - p.Life/p.MaxLife // 0 = just born, 1 = about to die
		p.Color = lerpColor(e.StartColor, e.EndColor, t)
		p.Size = e.MinSize + (e.MaxSize-e.MinSize)*(1.0-t)

		e.Particles[write] = *p
		write++
	}
	e.Particles = e.Particles[:write]
}

// Count returns the number of live particles.
func (e *ParticleEmitter) Count() int { return len(e.Particles) }

func (e *ParticleEmitter) spawnParticle() {
	life := e.MinLife + e.rng.Float32()*(e.MaxLife-e.MinLife)
	speed := e.MinSpeed + e.rng.Float32()*(e.MaxSpeed-e.MinSpeed)
	angle := e.Direction + (e.rng.Float32()*2-1)*e.Spread
	s, c := math.SinCos(angle)
	e.Particles = append(e.Particles, Particle{
		Position: e.Position,
		Velocity: math.Vec2{X: c * speed, Y: s * speed},
		Spin:     (e.rng.Float32()*2 - 1) * e.MaxSpin,
		Life:     life,
		MaxLife:  life,
		Size:     e.MaxSize,
		Color:    e.StartColor,
	})
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
