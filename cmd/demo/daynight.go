package main

import (
	"fmt"

	"quad-engine/core"
	"quad-engine/renderer"
)

// dayPalette holds the background and sprite tint for one key time of day.
type dayPalette struct {
	t       float32    // normalised time 0..1
	sky     core.Color // clear color
	tint    core.Color // multiplied into world sprites
	sunSize float32
}

// palettes defines the key states throughout the day.
// t is ordered 0→1 and wraps (0 == 1).
var palettes = []dayPalette{
	{ // noon
		t:       0.00,
		sky:     core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		tint:    core.Color{R: 1.00, G: 1.00, B: 1.00, A: 1},
		sunSize: 96,
	},
	{ // golden hour
		t:       0.22,
		sky:     core.Color{R: 0.92, G: 0.62, B: 0.32, A: 1},
		tint:    core.Color{R: 1.00, G: 0.85, B: 0.65, A: 1},
		sunSize: 120,
	},
	{ // midnight
		t:       0.50,
		sky:     core.Color{R: 0.03, G: 0.04, B: 0.10, A: 1},
		tint:    core.Color{R: 0.35, G: 0.40, B: 0.60, A: 1},
		sunSize: 64,
	},
	{ // dawn
		t:       0.78,
		sky:     core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1},
		tint:    core.Color{R: 0.95, G: 0.75, B: 0.60, A: 1},
		sunSize: 110,
	},
}

// DayNight drives the animated background cycle.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Speed  float32 // full-cycle duration in seconds
	Active bool    // auto-advance when true
}

func NewDayNight() *DayNight {
	return &DayNight{
		Time:   0.0,
		Speed:  60.0,
		Active: true,
	}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active || dn.Speed <= 0 {
		return
	}
	dn.Time += dt / dn.Speed
	for dn.Time >= 1.0 {
		dn.Time -= 1.0
	}
}

// lerpColor linearly interpolates between two colours.
func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

// samplePalette returns the palette interpolated for time t (0..1).
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	a, b := palettes[n-1], palettes[0]
	span := 1 - a.t + b.t
	local := t - a.t
	if local < 0 {
		local += 1
	}
	for i := 0; i < n-1; i++ {
		if t >= palettes[i].t && t < palettes[i+1].t {
			a, b = palettes[i], palettes[i+1]
			span = b.t - a.t
			local = t - a.t
			break
		}
	}
	f := local / span

	return dayPalette{
		t:       t,
		sky:     lerpColor(a.sky, b.sky, f),
		tint:    lerpColor(a.tint, b.tint, f),
		sunSize: a.sunSize + (b.sunSize-a.sunSize)*f,
	}
}

// Apply pushes the current sky color to the renderer and returns the
// sampled palette for the world scene to tint with.
func (dn *DayNight) Apply(r *renderer.Renderer) dayPalette {
	p := samplePalette(dn.Time)
	r.SetClearColor(p.sky)
	return p
}

// TimeOfDayStr returns a human-readable time label.
func (dn *DayNight) TimeOfDayStr() string {
	hours := dn.Time*24.0 + 12
	h := int(hours) % 24
	m := int((hours - float32(int(hours))) * 60)
	period := "AM"
	displayH := h
	if h == 0 {
		displayH = 12
	} else if h == 12 {
		period = "PM"
	} else if h > 12 {
		displayH = h - 12
		period = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", displayH, m, period)
}
