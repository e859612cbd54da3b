package main

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"quad-engine/app"
	"quad-engine/core"
	"quad-engine/ecs"
	"quad-engine/internal/opengl"
	"quad-engine/math"
	"quad-engine/renderer"
	"quad-engine/scene"
)

// Components

type Transform struct {
	Position math.Vec2
	Size     math.Vec2
	Rotation float32 // degrees
}

type Sprite struct {
	Color   core.Color
	Texture opengl.TextureHandle
}

type Spin struct {
	DegreesPerSecond float32
}

type Velocity struct {
	V math.Vec2
}

const (
	cameraSpeed = 400.0 // pixels per second
	homingRate  = 8.0   // fraction of the remaining distance per second
	stressCount = 2500  // more than one batch holds
)

// worldScene owns the sprite registry and draws it every frame.
type worldScene struct {
	engine  *app.Engine
	reg     *ecs.Registry
	checker *opengl.Texture
	extra   *opengl.Texture
	palette dayPalette
	stress  bool
	grid    bool
	time    float32
	rng     *rand.Rand
	culled  int
	homing  bool

	fire  *scene.ParticleEmitter
	smoke *scene.ParticleEmitter
}

func newWorldScene(e *app.Engine, extra *opengl.Texture) *worldScene {
	return &worldScene{
		engine: e,
		reg:    ecs.NewRegistry(),
		extra:  extra,
		rng:    rand.New(rand.NewSource(1)),
		fire:   scene.NewParticleEmitter(400),
		smoke:  scene.NewSmokeEmitter(120),
	}
}

func (w *worldScene) Name() string { return "world" }

func (w *worldScene) OnAttach() {
	checker, err := opengl.NewTexture(w.engine.Device, checkerImage(64, 8), opengl.TextureOptions{
		Filter: opengl.FilterNearest,
		Wrap:   opengl.WrapRepeat,
	})
	if err != nil {
		fmt.Printf("Checker texture failed: %v\n", err)
	}
	w.checker = checker

	spawn := func(t Transform, s Sprite) ecs.EntityID {
		id := w.reg.CreateEntity()
		ecs.Add(w.reg, id, t)
		ecs.Add(w.reg, id, s)
		return id
	}

	// ground strip
	spawn(Transform{Position: math.NewVec2(0, 0), Size: math.NewVec2(2000, 80)},
		Sprite{Color: core.Color{R: 0.25, G: 0.45, B: 0.20, A: 1}})

	// checkered crates
	for i := 0; i < 6; i++ {
		spawn(Transform{Position: math.NewVec2(80+float32(i)*140, 80), Size: math.NewVec2(96, 96)},
			Sprite{Color: core.Color{R: 1, G: 1, B: 1, A: 1}, Texture: w.checker})
	}

	// spinning squares
	for i := 0; i < 4; i++ {
		id := spawn(Transform{Position: math.NewVec2(150+float32(i)*200, 360), Size: math.NewVec2(64, 64)},
			Sprite{Color: core.Color{R: 0.9, G: 0.3 + 0.15*float32(i), B: 0.2, A: 1}})
		ecs.Add(w.reg, id, Spin{DegreesPerSecond: 45 * float32(i+1)})
	}

	w.fire.Position = math.NewVec2(1000, 80)
	w.smoke.Position = math.NewVec2(1000, 120)

	if w.extra != nil {
		spawn(Transform{Position: math.NewVec2(900, 300), Size: math.NewVec2(float32(w.extra.Width()), float32(w.extra.Height()))},
			Sprite{Color: core.Color{R: 1, G: 1, B: 1, A: 1}, Texture: w.extra})
	}
}

func (w *worldScene) OnDetach() {
	w.checker.Destroy()
	w.checker = nil
}

// toggleStress spawns or removes a field of moving quads large enough to
// force mid-frame flushes.
func (w *worldScene) toggleStress() {
	w.stress = !w.stress
	if !w.stress {
		var doomed []ecs.EntityID
		ecs.Each(w.reg, func(id ecs.EntityID, _ Velocity) {
			doomed = append(doomed, id)
		})
		for _, id := range doomed {
			w.reg.DeleteEntity(id)
		}
		return
	}

	width, height := w.engine.Size()
	for i := 0; i < stressCount; i++ {
		id := w.reg.CreateEntity()
		ecs.Add(w.reg, id, Transform{
			Position: math.NewVec2(w.rng.Float32()*float32(width), w.rng.Float32()*float32(height)),
			Size:     math.NewVec2(6, 6),
		})
		ecs.Add(w.reg, id, Sprite{Color: core.Color{R: w.rng.Float32(), G: w.rng.Float32(), B: w.rng.Float32(), A: 0.8}})
		ecs.Add(w.reg, id, Velocity{V: math.NewVec2(w.rng.Float32()*200-100, w.rng.Float32()*200-100)})
	}
}

// OnInput handles the world's toggle keys and reports whether one fired.
func (w *worldScene) OnInput(in *core.Input) bool {
	switch {
	case in.IsKeyPressed(core.KeyR):
		w.homing = true
	case in.IsKeyPressed(core.KeyG):
		w.grid = !w.grid
	case in.IsKeyPressed(core.KeyF2):
		w.toggleStress()
	default:
		return false
	}
	return true
}

func (w *worldScene) OnUpdate(dt float64) {
	step := float32(dt)
	w.time += step
	in := w.engine.Input

	var pan math.Vec2
	if in.IsKeyDown(core.KeyLeft) || in.IsKeyDown(core.KeyA) {
		pan.X -= 1
	}
	if in.IsKeyDown(core.KeyRight) || in.IsKeyDown(core.KeyD) {
		pan.X += 1
	}
	if in.IsKeyDown(core.KeyDown) || in.IsKeyDown(core.KeyS) {
		pan.Y -= 1
	}
	if in.IsKeyDown(core.KeyUp) || in.IsKeyDown(core.KeyW) {
		pan.Y += 1
	}
	if pan != (math.Vec2{}) {
		w.homing = false
		w.engine.Camera.Translate(pan.Normalize().Mul(cameraSpeed * step))
	}
	if w.homing {
		w.engine.Camera.SetPosition(easeHome(w.engine.Camera.Position(), step))
		w.homing = w.engine.Camera.Position() != math.Vec2Zero
	}

	w.fire.Update(step)
	w.smoke.Update(step)

	ecs.Each(w.reg, func(id ecs.EntityID, s Spin) {
		ecs.Update(w.reg, id, func(t Transform) Transform {
			t.Rotation += s.DegreesPerSecond * step
			return t
		})
	})

	width, height := w.engine.Size()
	ecs.Each(w.reg, func(id ecs.EntityID, v Velocity) {
		ecs.Update(w.reg, id, func(t Transform) Transform {
			t.Position = t.Position.Add(v.V.Mul(step))
			t.Position.X = wrap(t.Position.X, float32(width))
			t.Position.Y = wrap(t.Position.Y, float32(height))
			return t
		})
	})
}

func (w *worldScene) OnRender() {
	r := w.engine.Renderer

	_, height := w.engine.Size()
	sun := math.NewVec2(120, float32(height)-160)
	r.DrawQuad(sun, math.NewVec2(w.palette.sunSize, w.palette.sunSize),
		core.Color{R: 1, G: 0.9, B: 0.5, A: 1},
		renderer.WithOrigin(0.5, 0.5),
		renderer.WithRotation(w.time*10))

	cam := w.engine.Camera
	if w.grid {
		for _, l := range scene.GridLines(cam.ViewAABB(), 64, 1) {
			r.DrawQuad(l.Position, l.Size, l.Color)
		}
	}

	w.culled = 0
	ecs.Each(w.reg, func(id ecs.EntityID, t Transform) {
		s, ok := ecs.Get[Sprite](w.reg, id)
		if !ok {
			return
		}
		pivot := math.Vec2Zero
		if ecs.Has[Spin](w.reg, id) {
			pivot = math.Vec2Center
		}
		if !cam.Visible(scene.RectAABB(t.Position, t.Size, pivot, t.Rotation)) {
			w.culled++
			return
		}
		tint := mulColor(s.Color, w.palette.tint)
		origin := renderer.WithOrigin(pivot.X, pivot.Y)
		if s.Texture != nil {
			r.DrawTexturedQuad(t.Position, t.Size, s.Texture, renderer.WithTint(tint), renderer.WithRotation(t.Rotation), origin)
			return
		}
		r.DrawQuad(t.Position, t.Size, tint, renderer.WithRotation(t.Rotation), origin)
	})

	for _, em := range []*scene.ParticleEmitter{w.smoke, w.fire} {
		for _, p := range em.Particles {
			r.DrawQuad(p.Position, math.NewVec2(p.Size, p.Size), p.Color,
				renderer.WithOrigin(0.5, 0.5), renderer.WithRotation(p.Rotation))
		}
	}

	r.DrawText(defaultFont, "quad-engine", math.NewVec2(80, 220),
		renderer.WithTint(core.Color{R: 1, G: 1, B: 1, A: 1}))
	r.DrawText(defaultFont, "rotated text", math.NewVec2(600, 520),
		renderer.WithRotation(-15), renderer.WithScale(0.75),
		renderer.WithTint(core.Color{R: 0.2, G: 0.2, B: 0.3, A: 1}))
}

func (w *worldScene) quadCount() int {
	n := 0
	ecs.Each(w.reg, func(ecs.EntityID, Transform) { n++ })
	return n
}

// easeHome moves pos toward the origin, snapping once it is within half a
// pixel.
func easeHome(pos math.Vec2, dt float32) math.Vec2 {
	next := pos.Lerp(math.Vec2Zero, min(1, homingRate*dt))
	if next.Length() < 0.5 {
		return math.Vec2Zero
	}
	return next
}

func wrap(v, limit float32) float32 {
	if limit <= 0 {
		return v
	}
	for v < 0 {
		v += limit
	}
	for v >= limit {
		v -= limit
	}
	return v
}

func mulColor(a, b core.Color) core.Color {
	return core.Color{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A * b.A}
}

// checkerImage builds a size×size two-tone checkerboard with cells of cell
// pixels.
func checkerImage(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 220, G: 180, B: 120, A: 255}
	dark := color.RGBA{R: 140, G: 90, B: 50, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
