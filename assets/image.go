package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotFound is returned when an asset path does not name a readable file.
	ErrNotFound = errors.New("asset not found")
	// ErrUnsupportedFormat is returned for files no decoder recognizes.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrMalformedImage is returned for an image whose pixel buffer does not
	// cover its bounds.
	ErrMalformedImage = errors.New("malformed image")
)

// LoadImage reads and decodes the image at path. When flip is set the rows
// are reversed so that row 0 is the bottom of the picture, matching the
// bottom-left UV origin used by quads.
func LoadImage(path string, flip bool) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	img, err := DecodeImage(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	if flip {
		if err := FlipVertical(img); err != nil {
			return nil, fmt.Errorf("failed to flip %q: %w", path, err)
		}
	}
	return img, nil
}

// DecodeImage decodes data into RGBA. ext is used to route formats without
// a registered magic number (DDS); everything else is sniffed.
func DecodeImage(data []byte, ext string) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".dds") || bytes.HasPrefix(data, ddsMagic) {
		return decodeDDS(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as a zero-origin *image.RGBA, converting if needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// CheckRGBA reports ErrMalformedImage unless every row inside img's bounds
// lies within img.Pix.
func CheckRGBA(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrMalformedImage)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: inverted bounds %v", ErrMalformedImage, img.Rect)
	}
	if w == 0 || h == 0 {
		return nil
	}
	// compared by division so huge bounds cannot overflow
	if img.Stride <= 0 || img.Stride/4 < w {
		return fmt.Errorf("%w: stride %d too small for width %d", ErrMalformedImage, img.Stride, w)
	}
	if len(img.Pix) < w*4 || (len(img.Pix)-w*4)/img.Stride < h-1 {
		return fmt.Errorf("%w: %d bytes cannot hold %dx%d pixels", ErrMalformedImage, len(img.Pix), w, h)
	}
	return nil
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) error {
	if err := CheckRGBA(img); err != nil {
		return err
	}
	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top):][:rowLen]
		u := img.Pix[img.PixOffset(b.Min.X, bottom):][:rowLen]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
	return nil
}
