// Package fonts rasterizes TrueType and OpenType fonts into one texture per
// glyph and serves the metrics to the renderer's text layout.
package fonts

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"quad-engine/internal/opengl"
	"quad-engine/math"
	"quad-engine/renderer"
)

// Rasterized ranges: printable ASCII and Latin-1.
var defaultRanges = [][2]rune{
	{0x20, 0x7e},
	{0xa0, 0xff},
}

// Font is one face at one pixel size.
type Font struct {
	Name       string
	Size       float64
	Ascent     float32
	Descent    float32
	LineHeight float32

	glyphs   map[rune]renderer.Glyph
	textures []*opengl.Texture
}

func (f *Font) destroy() {
	for _, tex := range f.textures {
		tex.Destroy()
	}
	f.textures = nil
}

// Library owns every loaded font and its glyph textures.
type Library struct {
	dev     opengl.Device
	logger  *slog.Logger
	fonts   map[string]*Font
	missing map[string]bool
}

var _ renderer.GlyphSource = (*Library)(nil)

func NewLibrary(dev opengl.Device, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Library{
		dev:     dev,
		logger:  logger,
		fonts:   make(map[string]*Font),
		missing: make(map[string]bool),
	}
}

// LoadFile loads a font file under name at the given pixel size.
func (l *Library) LoadFile(name, path string, px float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font %q: %w", path, err)
	}
	return l.LoadData(name, data, px)
}

// LoadDefault loads the embedded Go Regular face.
func (l *Library) LoadDefault(name string, px float64) error {
	return l.LoadData(name, goregular.TTF, px)
}

// LoadData parses ttf and rasterizes its glyphs. Loading over an existing
// name replaces that font and releases its textures.
func (l *Library) LoadData(name string, ttf []byte, px float64) error {
	if px <= 0 {
		return fmt.Errorf("font %q: invalid pixel size %v", name, px)
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", name, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create face for %q: %w", name, err)
	}
	defer face.Close()

	metrics := face.Metrics()
	f := &Font{
		Name:       name,
		Size:       px,
		Ascent:     fixedToFloat(metrics.Ascent),
		Descent:    fixedToFloat(metrics.Descent),
		LineHeight: fixedToFloat(metrics.Height),
		glyphs:     make(map[rune]renderer.Glyph),
	}

	var buf sfnt.Buffer
	for _, rng := range defaultRanges {
		for r := rng[0]; r <= rng[1]; r++ {
			// Index 0 is .notdef; the face would draw a box for it.
			if idx, err := parsed.GlyphIndex(&buf, r); err != nil || idx == 0 {
				continue
			}
			l.rasterize(f, face, r)
		}
	}

	if old, ok := l.fonts[name]; ok {
		old.destroy()
	}
	l.fonts[name] = f
	delete(l.missing, name)

	l.logger.Info("font loaded", "name", name, "size", px, "glyphs", len(f.glyphs))
	return nil
}

// rasterize renders r into its own texture. Rows are stored top first; the
// text layout flips UVs to match.
func (l *Library) rasterize(f *Font, face font.Face, r rune) {
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		// Blank glyphs may have no outline to draw but still advance.
		adv, ok := face.GlyphAdvance(r)
		if ok {
			f.glyphs[r] = renderer.Glyph{Advance: fixedToFloat(adv)}
		}
		return
	}

	g := renderer.Glyph{Advance: fixedToFloat(advance)}
	if !dr.Empty() {
		w, h := dr.Dx(), dr.Dy()
		alpha := image.NewAlpha(image.Rect(0, 0, w, h))
		draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)

		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		for i, a := range alpha.Pix {
			rgba.Pix[i*4+0] = 0xff
			rgba.Pix[i*4+1] = 0xff
			rgba.Pix[i*4+2] = 0xff
			rgba.Pix[i*4+3] = a
		}

		tex, err := opengl.NewTexture(l.dev, rgba, opengl.TextureOptions{
			Filter: opengl.FilterLinear,
			Wrap:   opengl.WrapClamp,
		})
		if err != nil {
			l.logger.Warn("glyph upload failed", "rune", string(r), "error", err)
			f.glyphs[r] = g
			return
		}
		f.textures = append(f.textures, tex)

		g.Texture = tex.Handle()
		g.Size = math.Vec2{X: float32(w), Y: float32(h)}
		g.Bearing = math.Vec2{X: float32(dr.Min.X), Y: float32(-dr.Min.Y)}
	}
	f.glyphs[r] = g
}

// Glyph implements renderer.GlyphSource.
func (l *Library) Glyph(name string, r rune) (renderer.Glyph, bool) {
	f, ok := l.fonts[name]
	if !ok {
		if !l.missing[name] {
			l.missing[name] = true
			l.logger.Warn("font not loaded", "name", name)
		}
		return renderer.Glyph{}, false
	}
	g, ok := f.glyphs[r]
	return g, ok
}

func (l *Library) Font(name string) (*Font, bool) {
	f, ok := l.fonts[name]
	return f, ok
}

// Measure returns the advance text would consume at scale, laid out the
// same way DrawText lays it out.
func (l *Library) Measure(name, text string, scale float32) float32 {
	return renderer.MeasureText(l, name, text, scale)
}

// Unload releases one font's glyph textures.
func (l *Library) Unload(name string) {
	if f, ok := l.fonts[name]; ok {
		f.destroy()
		delete(l.fonts, name)
	}
}

// Destroy releases every glyph texture.
func (l *Library) Destroy() {
	for name := range l.fonts {
		l.Unload(name)
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
