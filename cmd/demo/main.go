package main

import (
	"flag"
	"fmt"
	"os"

	"quad-engine/app"
	"quad-engine/config"
	"quad-engine/core"
	"quad-engine/internal/opengl"
	"quad-engine/math"
)

var defaultFont = "default"

// hud fills the debug overlay each frame and draws it in the top-left
// corner of the view, after every scene has rendered.
type hud struct {
	overlay *DebugOverlay
	world   *worldScene
	cycle   *DayNight
	fps     float64
}

func (h *hud) update(e *app.Engine, dt float64) {
	if dt > 0 {
		// exponential moving average keeps the readout steady
		h.fps = h.fps*0.9 + (1/dt)*0.1
	}
	h.overlay.Clear()
	h.overlay.AddLine("%.0f fps  frame %d", h.fps, e.Frames())
	h.overlay.AddStats(e.Renderer.LastFrameStats())
	h.overlay.AddLine("entities: %d  culled: %d  stress: %v", h.world.quadCount(), h.world.culled, h.world.stress)
	h.overlay.AddLine("particles: %d", h.world.fire.Count()+h.world.smoke.Count())
	h.overlay.AddLine("time of day: %s", h.cycle.TimeOfDayStr())
	h.overlay.AddLine("[arrows] pan  [R] reset  [G] grid  [F1] hud  [F2] stress  [space] pause sky")
}

func (h *hud) draw(e *app.Engine) {
	_, height := e.Size()
	lineHeight := float32(32)
	if f, ok := e.Fonts.Font(defaultFont); ok {
		lineHeight = f.LineHeight
	}
	topLeft := e.Camera.Position().Add(math.NewVec2(12, float32(height)-8))
	h.overlay.Draw(e.Renderer, topLeft, lineHeight)
}

// demo is the Application: it builds the scene stack and handles the keys
// that are not owned by a scene.
type demo struct {
	texturePath string
	extra       *opengl.Texture
	world       *worldScene
	cycle       *DayNight
	hud         *hud
}

func (d *demo) OnInit(e *app.Engine) error {
	if d.texturePath != "" {
		tex, err := e.Renderer.LoadTexture(d.texturePath, opengl.DefaultTextureOptions())
		if err != nil {
			// keep going without the extra sprite
			fmt.Printf("Texture load failed (continuing without it): %v\n", err)
		} else {
			d.extra = tex
		}
	}

	d.cycle = NewDayNight()
	d.world = newWorldScene(e, d.extra)
	e.Scenes.Set(d.world)
	d.hud = &hud{
		overlay: NewDebugOverlay(defaultFont),
		world:   d.world,
		cycle:   d.cycle,
	}
	return nil
}

func (d *demo) OnUpdate(e *app.Engine, dt float64) {
	if e.Input.IsKeyPressed(core.KeyEscape) {
		e.Quit()
	}
	if e.Input.IsKeyPressed(core.KeyF1) {
		d.hud.overlay.Visible = !d.hud.overlay.Visible
	}
	if e.Input.IsKeyPressed(core.KeySpace) {
		d.cycle.Active = !d.cycle.Active
	}

	d.cycle.Update(float32(dt))
	d.world.palette = d.cycle.Apply(e.Renderer)

	d.hud.update(e, dt)
	d.hud.draw(e)
}

func (d *demo) OnShutdown(e *app.Engine) {
	if d.extra != nil {
		d.extra.Destroy()
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	texturePath := flag.String("texture", "", "image to show as an extra sprite (png, jpeg, bmp, webp, dds)")
	flag.Parse()

	fmt.Println("Starting quad renderer demo...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Fonts) > 0 {
		defaultFont = cfg.Fonts[0].Name
	}

	engine, err := app.New(cfg)
	if err != nil {
		fmt.Printf("Failed to create engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Shutdown()

	if err := engine.Run(&demo{texturePath: *texturePath}); err != nil {
		fmt.Printf("Demo exited with error: %v\n", err)
	}
}
