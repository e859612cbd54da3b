package assets

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/mauserzjeh/dxt"
)

var ddsMagic = []byte("DDS ")

const (
	ddsHeaderSize = 128 // magic + 124-byte header
	ddpfFourCC    = 0x4
	ddpfRGB       = 0x40

	// maxDDSDimension bounds width and height before any size arithmetic.
	maxDDSDimension = 16384
)

// decodeDDS handles the DDS layouts textures are commonly shipped in:
// DXT1, DXT5 and uncompressed 32-bit BGRA/RGBA. Only the top mip level is read.
func decodeDDS(data []byte) (*image.RGBA, error) {
	if len(data) < ddsHeaderSize || string(data[:4]) != string(ddsMagic) {
		return nil, fmt.Errorf("%w: truncated or missing DDS header", ErrUnsupportedFormat)
	}
	le := binary.LittleEndian
	height := le.Uint32(data[12:])
	width := le.Uint32(data[16:])
	pfFlags := le.Uint32(data[80:])
	fourCC := string(data[84:88])
	bitCount := le.Uint32(data[88:])
	rMask := le.Uint32(data[92:])

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty DDS image", ErrUnsupportedFormat)
	}
	if width > maxDDSDimension || height > maxDDSDimension {
		return nil, fmt.Errorf("%w: DDS image %dx%d exceeds %d", ErrUnsupportedFormat, width, height, maxDDSDimension)
	}
	payload := data[ddsHeaderSize:]
	blocks := uint64((width+3)/4) * uint64((height+3)/4)

	var pix []byte
	var err error
	switch {
	case pfFlags&ddpfFourCC != 0 && fourCC == "DXT1":
		if uint64(len(payload)) < blocks*8 {
			return nil, fmt.Errorf("%w: short DXT1 payload", ErrUnsupportedFormat)
		}
		pix, err = dxt.DecodeDXT1(payload, uint(width), uint(height))
	case pfFlags&ddpfFourCC != 0 && fourCC == "DXT5":
		if uint64(len(payload)) < blocks*16 {
			return nil, fmt.Errorf("%w: short DXT5 payload", ErrUnsupportedFormat)
		}
		pix, err = dxt.DecodeDXT5(payload, uint(width), uint(height))
	case pfFlags&ddpfRGB != 0 && bitCount == 32:
		pix, err = decodeRGBA32(payload, width, height, rMask)
	default:
		return nil, fmt.Errorf("%w: DDS pixel format %q", ErrUnsupportedFormat, fourCC)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode DDS: %w", err)
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	if err := CheckRGBA(img); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeRGBA32 copies uncompressed pixels, swizzling BGRA to RGBA when the
// red mask says red is the third byte.
func decodeRGBA32(payload []byte, width, height, rMask uint32) ([]byte, error) {
	size := uint64(width) * uint64(height) * 4
	if uint64(len(payload)) < size {
		return nil, fmt.Errorf("%w: short RGBA payload", ErrUnsupportedFormat)
	}
	n := int(size)
	pix := make([]byte, n)
	copy(pix, payload[:n])
	if rMask == 0x00ff0000 {
		for i := 0; i < n; i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
	}
	return pix, nil
}
