package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PixelBuffer is a raster image stored as row-major, non-premultiplied
// RGBA samples, 4 bytes per pixel.
//
// A PixelBuffer is owned by exactly one holder at a time. Copies are always
// explicit (Clone); two buffers never share their Pix slice.
type PixelBuffer struct {
	Width  int
	Height int

	// Pix holds Width*Height*4 bytes: R, G, B, A for each pixel.
	Pix []uint8
}

// NewPixelBuffer allocates a fully transparent buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies any image.Image into a new PixelBuffer. The origin of
// the result is always (0,0) regardless of img.Bounds().Min.
func FromImage(img image.Image) *PixelBuffer {
	// Clone always returns a tightly packed NRGBA anchored at (0,0).
	n := imaging.Clone(img)
	return &PixelBuffer{
		Width:  n.Rect.Dx(),
		Height: n.Rect.Dy(),
		Pix:    n.Pix,
	}
}

// Clone returns a deep copy of b.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Validate checks that Pix has the length implied by Width and Height.
func (b *PixelBuffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid buffer dimensions %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("buffer %dx%d needs %d bytes, has %d",
			b.Width, b.Height, b.Width*b.Height*4, len(b.Pix))
	}
	return nil
}

// Bounds returns the buffer rectangle, always anchored at the origin.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// InBounds reports whether (x, y) addresses a pixel of b.
func (b *PixelBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Equal reports whether both buffers have the same size and bytes.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Width == o.Width && b.Height == o.Height && bytes.Equal(b.Pix, o.Pix)
}

// NRGBAAt returns the color of pixel (x, y). The coordinates must be in bounds.
func (b *PixelBuffer) NRGBAAt(x, y int) color.NRGBA {
	i := (y*b.Width + x) * 4
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// SetNRGBA writes the color of pixel (x, y). The coordinates must be in bounds.
func (b *PixelBuffer) SetNRGBA(x, y int, c color.NRGBA) {
	i := (y*b.Width + x) * 4
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
}

// NRGBA returns an image view of b. The view shares b's pixels, so it must
// only be used for reading while b is in use elsewhere.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   b.Bounds(),
	}
}
