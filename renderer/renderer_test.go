package renderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quad-engine/assets"
	"quad-engine/core"
	"quad-engine/internal/opengl"
	"quad-engine/internal/opengl/gltest"
	"quad-engine/math"
	"quad-engine/scene"
)

func newTestRenderer(t *testing.T, opts Options) (*Renderer, *gltest.Device) {
	t.Helper()
	dev := gltest.New()
	r, err := New(dev, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Shutdown)
	return r, dev
}

func unitSize() math.Vec2 { return math.Vec2{X: 1, Y: 1} }

func TestInitState(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())

	if !dev.Blending || dev.DepthTest {
		t.Errorf("blending=%v depth=%v, want blending on and depth off", dev.Blending, dev.DepthTest)
	}
	if len(dev.Indices) != DefaultMaxQuads*6 {
		t.Errorf("index buffer has %d entries, want %d", len(dev.Indices), DefaultMaxQuads*6)
	}
	if dev.VertexBufSize != DefaultMaxQuads*4*int(core.VertexStride) {
		t.Errorf("vertex buffer size = %d", dev.VertexBufSize)
	}
	if len(dev.Attributes) != 4 || dev.AttribStride != 36 {
		t.Errorf("attributes = %v stride = %d", dev.Attributes, dev.AttribStride)
	}
	if got := dev.IntArrays[uniformTextures]; len(got) != r.TextureSlots() || got[len(got)-1] != int32(r.TextureSlots()-1) {
		t.Errorf("sampler array = %v", got)
	}

	white := dev.Textures[r.white.Handle()]
	if white == nil || white.Width != 1 || string(white.Pixels) != "\xff\xff\xff\xff" {
		t.Errorf("white texture = %+v", white)
	}
}

func TestSlotsClampedToDevice(t *testing.T) {
	dev := gltest.New()
	dev.MaxUnits = 16
	r, err := New(dev, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Shutdown()

	if r.TextureSlots() != 16 {
		t.Errorf("slots = %d, want 16", r.TextureSlots())
	}
	var frag string
	for _, s := range dev.Shaders {
		if s.Stage == opengl.StageFragment {
			frag = s.Source
		}
	}
	if !strings.Contains(frag, "uTextures[16]") {
		t.Errorf("fragment shader not sized for 16 units:\n%s", frag)
	}
}

func TestNewRejectsSingleSlot(t *testing.T) {
	dev := gltest.New()
	if _, err := New(dev, Options{TextureSlots: 1}); !errors.Is(err, ErrTooFewSlots) {
		t.Errorf("explicit single slot: err = %v", err)
	}
	dev = gltest.New()
	dev.MaxUnits = 1
	if _, err := New(dev, DefaultOptions()); !errors.Is(err, ErrTooFewSlots) {
		t.Errorf("single-unit device: err = %v", err)
	}
}

func TestNewShaderFailure(t *testing.T) {
	dev := gltest.New()
	dev.FailCompile[opengl.StageFragment] = "syntax error"
	_, err := New(dev, DefaultOptions())
	var serr *opengl.ShaderError
	if !errors.As(err, &serr) || serr.Stage != opengl.StageFragment {
		t.Fatalf("err = %v, want fragment ShaderError", err)
	}
}

func TestSingleDrawCall(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	cam := scene.NewCamera(0, 800, 0, 600)

	r.BeginFrame(cam)
	const n = 50
	for i := 0; i < n; i++ {
		tex := opengl.TextureID(1000 + i%5)
		r.DrawTexturedQuad(math.Vec2{X: float32(i)}, unitSize(), tex)
	}
	r.EndFrame()

	if len(dev.DrawCalls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(dev.DrawCalls))
	}
	dc := dev.DrawCalls[0]
	if len(dc.Vertices) != 4*n || dc.IndexCount != 6*n {
		t.Errorf("vertices=%d indices=%d, want %d and %d", len(dc.Vertices), dc.IndexCount, 4*n, 6*n)
	}
	if len(dc.Textures) != 6 {
		t.Errorf("bound %d texture units, want white + 5", len(dc.Textures))
	}
	if dev.Matrices[uniformViewProjection] != cam.ViewProjectionMatrix() {
		t.Errorf("view-projection uniform not written")
	}

	st := r.Stats()
	if st.DrawCalls != 1 || st.Quads != n || st.Vertices != 4*n || st.Indices != 6*n || st.Flushes != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCapacityOverflowPreservesOrder(t *testing.T) {
	const capacity = 10
	r, dev := newTestRenderer(t, Options{MaxQuads: capacity})

	r.BeginFrame(scene.NewCamera(0, 100, 0, 100))
	r.DrawQuad(math.Vec2{}, unitSize(), core.ColorRed)
	for i := 0; i < capacity; i++ {
		r.DrawQuad(math.Vec2{X: 1}, unitSize(), core.ColorGreen)
	}
	r.DrawQuad(math.Vec2{X: 2}, unitSize(), core.ColorBlue)
	r.EndFrame()

	if len(dev.DrawCalls) < 2 {
		t.Fatalf("draw calls = %d, want at least 2", len(dev.DrawCalls))
	}
	first := dev.DrawCalls[0]
	if first.Vertices[0].Color != core.ColorRed {
		t.Errorf("first flush starts with %v, want red", first.Vertices[0].Color)
	}
	if len(first.Vertices) != capacity*4 {
		t.Errorf("first flush has %d vertices, want a full batch", len(first.Vertices))
	}
	last := dev.DrawCalls[len(dev.DrawCalls)-1]
	if last.Vertices[len(last.Vertices)-1].Color != core.ColorBlue {
		t.Errorf("last flush should end with blue")
	}
	for _, v := range first.Vertices {
		if v.Color == core.ColorBlue {
			t.Errorf("blue quad drawn before the overflow")
		}
	}

	total := 0
	for _, dc := range dev.DrawCalls {
		if len(dc.Vertices)%4 != 0 {
			t.Errorf("flush with %d vertices is not a multiple of 4", len(dc.Vertices))
		}
		if int(dc.IndexCount) != len(dc.Vertices)/4*6 {
			t.Errorf("index count %d for %d vertices", dc.IndexCount, len(dc.Vertices))
		}
		total += len(dc.Vertices)
	}
	if total != (capacity+2)*4 {
		t.Errorf("drew %d vertices, want %d", total, (capacity+2)*4)
	}
	if r.Stats().Flushes != 1 {
		t.Errorf("flushes = %d, want 1", r.Stats().Flushes)
	}
}

func TestSlotExhaustionFlushes(t *testing.T) {
	r, dev := newTestRenderer(t, Options{MaxQuads: 100, TextureSlots: 4})

	r.BeginFrame(nil)
	for i := 0; i < 4; i++ {
		r.DrawTexturedRect(math.Vec2{X: float32(i)}, unitSize(), opengl.TextureID(500+i))
	}
	r.EndFrame()

	if len(dev.DrawCalls) != 2 {
		t.Fatalf("draw calls = %d, want 2", len(dev.DrawCalls))
	}
	first, second := dev.DrawCalls[0], dev.DrawCalls[1]
	for i, want := range []float32{1, 2, 3} {
		if got := first.Vertices[i*4].TexIndex; got != want {
			t.Errorf("quad %d slot = %v, want %v", i, got, want)
		}
	}
	if first.Textures[3] != 502 {
		t.Errorf("unit 3 bound to %d, want 502", first.Textures[3])
	}
	if second.Vertices[0].TexIndex != 1 || second.Textures[1] != 503 {
		t.Errorf("restarted batch should put the fourth texture in slot 1")
	}
	if second.Textures[0] != r.white.Handle() {
		t.Errorf("slot 0 must stay white after restart")
	}
	if r.Stats().SlotOverflows != 0 {
		t.Errorf("batch should never force a slot assignment")
	}
}

func TestFlushesCountOnlyDraws(t *testing.T) {
	r, dev := newTestRenderer(t, Options{MaxQuads: 100, TextureSlots: 2})

	// the first texture fits; each later one forces a flush that draws
	r.BeginFrame(nil)
	for i := 0; i < 3; i++ {
		r.DrawTexturedRect(math.Vec2{X: float32(i)}, unitSize(), opengl.TextureID(700+i))
	}
	r.EndFrame()

	stats := r.LastFrameStats()
	if stats.Flushes != 2 || stats.DrawCalls != 3 || len(dev.DrawCalls) != 3 {
		t.Errorf("flushes=%d draws=%d device draws=%d, want 2/3/3", stats.Flushes, stats.DrawCalls, len(dev.DrawCalls))
	}
	if stats.Flushes > stats.DrawCalls {
		t.Errorf("more flushes (%d) than draw calls (%d)", stats.Flushes, stats.DrawCalls)
	}
}

func TestSameTextureSameSlot(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	tex := opengl.TextureID(77)
	other := opengl.TextureID(78)

	r.BeginFrame(nil)
	r.DrawTexturedRect(math.Vec2{}, unitSize(), tex)
	r.DrawTexturedRect(math.Vec2{}, unitSize(), tex)
	r.EndFrame()
	v := dev.DrawCalls[0].Vertices
	if v[0].TexIndex != 1 || v[4].TexIndex != 1 {
		t.Errorf("slots = %v and %v, want 1 and 1", v[0].TexIndex, v[4].TexIndex)
	}

	dev.ResetFrame()
	r.BeginFrame(nil)
	r.DrawTexturedRect(math.Vec2{}, unitSize(), other)
	r.EndFrame()
	if got := dev.DrawCalls[0].Vertices[0].TexIndex; got != 1 {
		t.Errorf("slot table not reset between frames: got slot %v", got)
	}
}

func TestUntexturedUsesWhite(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	var missing *opengl.Texture

	r.BeginFrame(nil)
	r.DrawRect(math.Vec2{}, unitSize())
	r.DrawRectRGB(math.Vec2{}, unitSize(), 1, 0, 0)
	r.DrawTexturedQuad(math.Vec2{}, unitSize(), missing)
	r.EndFrame()

	for i, v := range dev.DrawCalls[0].Vertices {
		if v.TexIndex != 0 {
			t.Fatalf("vertex %d uses slot %v, want 0", i, v.TexIndex)
		}
	}
	if dev.DrawCalls[0].Vertices[4].Color != core.ColorRed {
		t.Errorf("DrawRectRGB color = %v", dev.DrawCalls[0].Vertices[4].Color)
	}
}

func TestEmptyFrameSkipsDraw(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	r.BeginFrame(nil)
	r.EndFrame()
	if len(dev.DrawCalls) != 0 {
		t.Errorf("empty frame issued %d draw calls", len(dev.DrawCalls))
	}
}

func TestLastFrameStatsSurviveBegin(t *testing.T) {
	r, _ := newTestRenderer(t, DefaultOptions())
	r.BeginFrame(nil)
	r.DrawRect(math.Vec2{}, unitSize())
	r.DrawRect(math.Vec2{X: 2}, unitSize())
	r.EndFrame()

	r.BeginFrame(nil)
	if r.Stats().Quads != 0 {
		t.Errorf("current stats not reset: %+v", r.Stats())
	}
	if last := r.LastFrameStats(); last.Quads != 2 || last.DrawCalls != 1 {
		t.Errorf("last frame = %+v, want 2 quads in 1 draw call", last)
	}
	r.EndFrame()
}

func TestSubmitOutsideFrame(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	r.DrawRect(math.Vec2{}, unitSize())
	if r.Stats().DroppedQuads != 1 {
		t.Errorf("dropped = %d, want 1", r.Stats().DroppedQuads)
	}

	r.BeginFrame(nil)
	r.EndFrame()
	if len(dev.DrawCalls) != 0 {
		t.Errorf("dropped quad was drawn")
	}
}

func TestDrawQuadOptions(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	r.BeginFrame(nil)
	r.DrawQuad(math.Vec2{}, math.Vec2{X: 2, Y: 2}, core.ColorWhite,
		WithRotation(180), WithOrigin(0.5, 0.5), WithFlipUV(true))
	r.DrawTexturedQuad(math.Vec2{}, unitSize(), opengl.TextureID(9), WithTint(core.ColorYellow))
	r.EndFrame()

	v := dev.DrawCalls[0].Vertices
	if !nearVec(v[cornerTR].Position, math.Vec2{X: -1, Y: -1}) {
		t.Errorf("rotated corner = %v", v[cornerTR].Position)
	}
	if v[cornerBL].UV != (math.Vec2{X: 0, Y: 1}) {
		t.Errorf("flip not applied: uv = %v", v[cornerBL].UV)
	}
	if v[4].Color != core.ColorYellow {
		t.Errorf("tint = %v", v[4].Color)
	}
}

func TestClear(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	r.Clear()
	if dev.Clears != 1 || dev.ClearedTo != core.ColorBlack {
		t.Errorf("clears=%d color=%v", dev.Clears, dev.ClearedTo)
	}
	r.SetClearColor(core.ColorBlue)
	r.Clear()
	if dev.ClearedTo != core.ColorBlue {
		t.Errorf("clear color = %v", dev.ClearedTo)
	}
}

func TestShutdownReleasesResources(t *testing.T) {
	dev := gltest.New()
	r, err := New(dev, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	r.Shutdown()
	r.Shutdown()

	if dev.LiveTextures() != 0 {
		t.Errorf("%d textures still alive", dev.LiveTextures())
	}
	for id, p := range dev.Programs {
		if !p.Deleted {
			t.Errorf("program %d leaked", id)
		}
	}
	if len(dev.DeletedVAOs) != 1 || len(dev.DeletedBuffers) != 2 {
		t.Errorf("deleted vaos=%v buffers=%v", dev.DeletedVAOs, dev.DeletedBuffers)
	}
}

func TestFrameCallsAfterShutdown(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	r.BeginFrame(nil)
	r.DrawRect(math.Vec2{}, unitSize())
	r.EndFrame()
	if len(dev.DrawCalls) != 1 {
		t.Fatalf("draw calls = %d before shutdown", len(dev.DrawCalls))
	}

	r.Shutdown()
	r.BeginFrame(nil)
	r.DrawRect(math.Vec2{}, unitSize())
	r.Submit(Quad{Size: unitSize(), Color: core.ColorWhite})
	r.EndFrame()

	if len(dev.DrawCalls) != 1 {
		t.Errorf("draw calls after shutdown = %d, want still 1", len(dev.DrawCalls))
	}
	if r.Stats().DroppedQuads != 2 {
		t.Errorf("dropped = %d, want 2", r.Stats().DroppedQuads)
	}
	if len(dev.DeletedVAOs) != 1 {
		t.Errorf("shutdown frame calls touched GPU objects: deleted vaos %v", dev.DeletedVAOs)
	}
}

func TestAssetPaths(t *testing.T) {
	r, _ := newTestRenderer(t, DefaultOptions())
	if got := r.ResolveAssetPath("a/b.png"); got != "a/b.png" {
		t.Errorf("without root: %q", got)
	}

	root := t.TempDir()
	if err := r.SetAssetRoot(root); err != nil {
		t.Fatal(err)
	}
	if got := r.ResolveAssetPath("a/b.png"); got != filepath.Join(root, "a", "b.png") {
		t.Errorf("with root: %q", got)
	}
	abs := filepath.Join(root, "x.png")
	if got := r.ResolveAssetPath(abs); got != abs {
		t.Errorf("absolute: %q", got)
	}
}

func TestLoadTexture(t *testing.T) {
	r, dev := newTestRenderer(t, Options{AssetRoot: t.TempDir()})

	tex, err := r.LoadTexture("missing.png", opengl.DefaultTextureOptions())
	if tex != nil || !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("missing asset: tex=%v err=%v", tex, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(r.ResolveAssetPath("red.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tex, err = r.LoadTexture("red.png", opengl.DefaultTextureOptions())
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	defer tex.Destroy()
	obj := dev.Textures[tex.Handle()]
	if obj.Width != 1 || obj.Height != 1 || obj.Pixels[0] != 255 || obj.Pixels[1] != 0 {
		t.Errorf("uploaded %+v", obj)
	}
}
