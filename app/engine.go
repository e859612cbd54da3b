// Package app drives the frame loop: it owns the window, the renderer and
// the scene stack, and hands them to the application explicitly.
package app

import (
	"fmt"
	"log/slog"

	"quad-engine/config"
	"quad-engine/core"
	"quad-engine/fonts"
	"quad-engine/internal/opengl"
	"quad-engine/renderer"
	"quad-engine/scene"
)

// Application is the client program run by Engine.Run.
type Application interface {
	// OnInit runs once before the first frame; an error aborts Run.
	OnInit(e *Engine) error
	// OnUpdate runs every frame after the scenes have rendered, inside the
	// frame's batch, so it may draw.
	OnUpdate(e *Engine, dt float64)
	OnShutdown(e *Engine)
}

// Surface is the window as the loop sees it. core.Window implements it.
type Surface interface {
	core.Poller
	ShouldClose() bool
	PollEvents()
	SwapBuffers()
	Time() float64
	GetFramebufferSize() (int, int)
	OnResize(cb core.ResizeCallback)
	Destroy()
}

// Engine is the rendering context shared by the application and its scenes.
type Engine struct {
	Config   config.Config
	Surface  Surface
	Device   opengl.Device
	Renderer *renderer.Renderer
	Fonts    *fonts.Library
	Scenes   *scene.Manager
	Input    *core.Input
	Camera   *scene.Camera
	Logger   *slog.Logger

	width, height int
	lastTime      float64
	frames        uint64
	quit          bool
	closed        bool
}

// New opens the window, creates the GL context and initializes the renderer.
func New(cfg config.Config) (*Engine, error) {
	logger := cfg.Logger()

	wc := core.DefaultWindowConfig()
	wc.Width = cfg.Window.Width
	wc.Height = cfg.Window.Height
	wc.Title = cfg.Window.Title
	wc.Fullscreen = cfg.Window.Fullscreen
	if cfg.Window.VSync != nil {
		wc.VSync = *cfg.Window.VSync
	}
	if cfg.Window.Resizable != nil {
		wc.Resizable = *cfg.Window.Resizable
	}

	window, err := core.NewWindow(wc)
	if err != nil {
		return nil, err
	}

	dev, err := opengl.NewGL(logger)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	e, err := NewWithDevice(cfg, window, dev, logger)
	if err != nil {
		window.Destroy()
		return nil, err
	}
	return e, nil
}

// NewWithDevice builds an engine on an existing surface and device.
func NewWithDevice(cfg config.Config, surface Surface, dev opengl.Device, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r, err := renderer.New(dev, renderer.Options{
		MaxQuads:     cfg.Renderer.MaxQuads,
		TextureSlots: cfg.Renderer.TextureSlots,
		ClearColor:   cfg.ClearColor(),
		AssetRoot:    cfg.Assets.Root,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	e := &Engine{
		Config:   cfg,
		Surface:  surface,
		Device:   dev,
		Renderer: r,
		Fonts:    fonts.NewLibrary(dev, logger),
		Scenes:   scene.NewManager(logger),
		Input:    core.NewInput(surface),
		Camera:   scene.NewCamera(0, 1, 0, 1),
		Logger:   logger,
	}
	r.SetGlyphSource(e.Fonts)
	e.loadFonts()

	w, h := surface.GetFramebufferSize()
	e.Resize(w, h)
	surface.OnResize(e.Resize)

	return e, nil
}

// loadFonts loads the configured fonts. A font that fails to load is
// logged and skipped; text in it will not draw.
func (e *Engine) loadFonts() {
	for _, f := range e.Config.Fonts {
		var err error
		if f.Path == "" {
			err = e.Fonts.LoadDefault(f.Name, f.Size)
		} else {
			err = e.Fonts.LoadFile(f.Name, e.Renderer.ResolveAssetPath(f.Path), f.Size)
		}
		if err != nil {
			e.Logger.Warn("font load failed", "name", f.Name, "error", err)
		}
	}
}

// Resize updates the viewport and maps the camera to the new pixel size.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return // minimized
	}
	e.width, e.height = width, height
	e.Renderer.SetViewport(width, height)
	e.Camera.Resize(width, height)
}

// Size returns the current framebuffer size.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Frames returns how many frames have completed.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Quit ends Run after the current frame.
func (e *Engine) Quit() {
	e.quit = true
}

// Run calls app.OnInit, loops until the window closes or Quit is called,
// then calls app.OnShutdown.
func (e *Engine) Run(app Application) error {
	if err := app.OnInit(e); err != nil {
		return fmt.Errorf("application init: %w", err)
	}
	defer app.OnShutdown(e)

	e.lastTime = e.Surface.Time()
	for !e.quit && !e.Surface.ShouldClose() {
		now := e.Surface.Time()
		dt := now - e.lastTime
		e.lastTime = now

		e.Input.Update()
		e.Surface.PollEvents()
		e.Frame(app, dt)
		e.Surface.SwapBuffers()
	}
	return nil
}

// Frame runs one iteration of scene and application work between
// BeginFrame and EndFrame.
func (e *Engine) Frame(app Application, dt float64) {
	e.Scenes.DispatchInput(e.Input)

	e.Renderer.Clear()
	e.Renderer.BeginFrame(e.Camera)

	e.Scenes.Update(dt)
	e.Scenes.Render()
	if app != nil {
		app.OnUpdate(e, dt)
	}

	e.Renderer.EndFrame()
	e.frames++
}

// Shutdown detaches all scenes and releases GPU resources and the window.
func (e *Engine) Shutdown() {
	if e.closed {
		return
	}
	e.Scenes.Clear()
	e.Fonts.Destroy()
	e.Renderer.Shutdown()
	e.Surface.Destroy()
	e.closed = true
}
