package opengl

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidImage is returned for an image whose pixel buffer cannot hold
// its bounds.
var ErrInvalidImage = errors.New("invalid texture image")

// TextureHandle is anything that names a GPU texture.
type TextureHandle interface {
	Handle() uint32
}

// TextureID is a raw texture name owned elsewhere.
type TextureID uint32

func (id TextureID) Handle() uint32 { return uint32(id) }

// Texture exclusively owns one GPU texture. Copying a *Texture shares the
// owner; Destroy releases the handle once.
type Texture struct {
	dev    Device
	handle uint32
	width  int
	height int
}

// NewTexture uploads img. Rows are uploaded in image order, so callers that
// want bottom-left UV origin must flip the image first.
func NewTexture(dev Device, img *image.RGBA, opts TextureOptions) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrInvalidImage, b)
	}
	// division keeps huge bounds from overflowing
	if img.Stride/4 < w || len(img.Pix) < w*4 || (len(img.Pix)-w*4)/img.Stride < h-1 {
		return nil, fmt.Errorf("%w: %d bytes with stride %d cannot hold %dx%d pixels",
			ErrInvalidImage, len(img.Pix), img.Stride, w, h)
	}

	pix := img.Pix
	if img.Stride != w*4 || b.Min != (image.Point{}) {
		pix = make([]byte, 0, w*h*4)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := img.PixOffset(b.Min.X, y)
			pix = append(pix, img.Pix[off:off+w*4]...)
		}
	}

	return &Texture{
		dev:    dev,
		handle: dev.CreateTexture(w, h, pix, opts),
		width:  w,
		height: h,
	}, nil
}

// NewSolidTexture creates a 1x1 texture of the given color.
func NewSolidTexture(dev Device, c color.RGBA) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	tex, err := NewTexture(dev, img, TextureOptions{Filter: FilterNearest, Wrap: WrapRepeat})
	if err != nil {
		panic(err) // a fresh 1x1 image is always valid
	}
	return tex
}

// Handle returns the GPU name, or 0 for a nil or destroyed texture.
func (t *Texture) Handle() uint32 {
	if t == nil {
		return 0
	}
	return t.handle
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Destroy releases the GPU texture. Safe to call more than once.
func (t *Texture) Destroy() {
	if t == nil || t.handle == 0 {
		return
	}
	t.dev.DeleteTexture(t.handle)
	t.handle = 0
}
