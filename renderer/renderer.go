// Package renderer batches 2D quads and text into as few draw calls as the
// vertex capacity and texture-unit limits allow.
package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"quad-engine/assets"
	"quad-engine/core"
	"quad-engine/internal/opengl"
	"quad-engine/math"
	"quad-engine/scene"
)

const (
	DefaultMaxQuads     = 1000
	DefaultTextureSlots = 32
	maxTextureSlots     = 32
)

// ErrTooFewSlots is returned by New when fewer than two texture units are
// available: slot 0 always holds the white texture.
var ErrTooFewSlots = errors.New("quad batching needs at least two texture slots")

type Options struct {
	MaxQuads     int
	TextureSlots int
	ClearColor   core.Color
	AssetRoot    string
	Logger       *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxQuads:     DefaultMaxQuads,
		TextureSlots: DefaultTextureSlots,
		ClearColor:   core.ColorBlack,
	}
}

// Renderer is the rendering context: one per GL context, passed explicitly
// to whatever draws.
type Renderer struct {
	dev        opengl.Device
	logger     *slog.Logger
	shader     *opengl.Shader
	white      *opengl.Texture
	batch      *batch
	resolver   *assets.Resolver
	glyphs     GlyphSource
	clearColor core.Color
	slots      int
	closed     bool
}

// New creates the GPU resources for batching on dev: the quad shader, the
// white texture, and the vertex and index buffers.
func New(dev opengl.Device, opts Options) (*Renderer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxQuads <= 0 {
		opts.MaxQuads = DefaultMaxQuads
	}
	slots := opts.TextureSlots
	if slots <= 0 {
		slots = DefaultTextureSlots
	}
	if units := dev.MaxTextureUnits(); units > 0 && slots > units {
		logger.Warn("texture slots clamped to device limit", "requested", slots, "units", units)
		slots = units
	}
	if slots > maxTextureSlots {
		slots = maxTextureSlots
	}
	if slots < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSlots, slots)
	}

	resolver, err := assets.NewResolver(opts.AssetRoot)
	if err != nil {
		return nil, err
	}

	shader, err := opengl.CreateFromSource(dev, quadVertexShader, quadFragmentShader(slots), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad shader: %w", err)
	}

	white := opengl.NewSolidTexture(dev, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	r := &Renderer{
		dev:        dev,
		logger:     logger,
		shader:     shader,
		white:      white,
		batch:      newBatch(dev, shader, white.Handle(), opts.MaxQuads, slots, logger),
		resolver:   resolver,
		clearColor: opts.ClearColor,
		slots:      slots,
	}

	dev.SetBlending(true)
	dev.SetDepthTest(false)

	logger.Debug("renderer initialized", "max_quads", opts.MaxQuads, "texture_slots", slots)
	return r, nil
}

// Shutdown releases every GPU resource the renderer created.
func (r *Renderer) Shutdown() {
	if r.closed {
		return
	}
	r.batch.close()
	r.white.Destroy()
	r.shader.Destroy()
	r.closed = true
}

func (r *Renderer) SetViewport(width, height int) {
	r.dev.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) SetClearColor(c core.Color) {
	r.clearColor = c
}

// Clear clears the color and depth targets.
func (r *Renderer) Clear() {
	r.dev.ClearColor(r.clearColor)
	r.dev.Clear()
}

// BeginFrame opens a batch using the camera's view-projection.
func (r *Renderer) BeginFrame(camera *scene.Camera) {
	vp := math.Mat4Identity()
	if camera != nil {
		vp = camera.ViewProjectionMatrix()
	}
	r.batch.begin(vp)
}

// EndFrame draws whatever is left in the batch.
func (r *Renderer) EndFrame() {
	r.batch.end()
}

// Stats returns the counters for the current or most recent frame.
func (r *Renderer) Stats() FrameStats {
	return r.batch.stats
}

// LastFrameStats returns the counters of the most recently ended frame.
func (r *Renderer) LastFrameStats() FrameStats {
	return r.batch.last
}

// TextureSlots is the sampler array size in use, white texture included.
func (r *Renderer) TextureSlots() int {
	return r.slots
}

// Submit queues a fully specified quad.
func (r *Renderer) Submit(q Quad) {
	r.batch.submit(q)
}

// DrawRect draws a white rectangle anchored at its bottom-left corner.
func (r *Renderer) DrawRect(pos, size math.Vec2) {
	r.batch.submit(Quad{Position: pos, Size: size, Color: core.ColorWhite})
}

// DrawRectRGB draws an opaque rectangle anchored at its bottom-left corner.
func (r *Renderer) DrawRectRGB(pos, size math.Vec2, red, green, blue float32) {
	r.batch.submit(Quad{Position: pos, Size: size, Color: core.RGB(red, green, blue)})
}

func (r *Renderer) DrawQuad(pos, size math.Vec2, c core.Color, opts ...DrawOption) {
	p := applyOptions(opts)
	r.batch.submit(Quad{
		Position: pos,
		Size:     size,
		Color:    c,
		Rotation: p.rotation,
		Origin:   p.origin,
		FlipUV:   p.flipUV,
	})
}

func (r *Renderer) DrawTexturedRect(pos, size math.Vec2, tex opengl.TextureHandle, opts ...DrawOption) {
	p := applyOptions(opts)
	r.batch.submit(Quad{
		Position: pos,
		Size:     size,
		Color:    p.tint,
		Texture:  handleOf(tex),
	})
}

func (r *Renderer) DrawTexturedQuad(pos, size math.Vec2, tex opengl.TextureHandle, opts ...DrawOption) {
	p := applyOptions(opts)
	r.batch.submit(Quad{
		Position: pos,
		Size:     size,
		Color:    p.tint,
		Rotation: p.rotation,
		Origin:   p.origin,
		Texture:  handleOf(tex),
		FlipUV:   p.flipUV,
	})
}

// SetGlyphSource sets where DrawText gets glyph metrics from.
func (r *Renderer) SetGlyphSource(src GlyphSource) {
	r.glyphs = src
}

// DrawText lays out text on the baseline starting at pos and returns the
// horizontal advance it consumed. Characters the font lacks are skipped.
func (r *Renderer) DrawText(font, text string, pos math.Vec2, opts ...DrawOption) float32 {
	if r.glyphs == nil {
		r.logger.Warn("DrawText without a glyph source", "font", font)
		return 0
	}
	p := applyOptions(opts)
	style := TextStyle{Scale: p.scale, Rotation: p.rotation, Color: p.tint}
	return layoutText(r.glyphs, font, text, pos, style, r.batch.submit)
}

// SetAssetRoot sets the directory relative asset paths are resolved against.
func (r *Renderer) SetAssetRoot(root string) error {
	return r.resolver.SetRoot(root)
}

func (r *Renderer) ResolveAssetPath(path string) string {
	return r.resolver.Resolve(path)
}

// LoadTexture decodes the image at an asset path and uploads it flipped so
// that UV (0,0) is its bottom-left corner. The caller owns the texture.
func (r *Renderer) LoadTexture(path string, opts opengl.TextureOptions) (*opengl.Texture, error) {
	full := r.resolver.Resolve(path)
	img, err := assets.LoadImage(full, true)
	if err != nil {
		r.logger.Warn("texture load failed", "path", full, "error", err)
		return nil, err
	}
	tex, err := opengl.NewTexture(r.dev, img, opts)
	if err != nil {
		r.logger.Warn("texture upload failed", "path", full, "error", err)
		return nil, fmt.Errorf("failed to upload %q: %w", full, err)
	}
	return tex, nil
}

func handleOf(tex opengl.TextureHandle) uint32 {
	if tex == nil {
		return 0
	}
	return tex.Handle()
}
