package imaging

import (
	"errors"
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
)

// Recolor returns a copy of src in which every pixel inside mask takes the
// hue and saturation of target while keeping its own lightness. Shading and
// texture survive because they live in the lightness channel. Alpha is never
// changed, and pixels outside the mask are copied verbatim.
//
// src and mask are only read. The scan is limited to mask.Bounds(), so
// besides the copy of src the cost is proportional to the polygon's bounding
// box rather than the image. Rows of the box are split across goroutines;
// each goroutine writes a disjoint set of output rows.
func Recolor(src *PixelBuffer, mask *Mask, target Color) (*PixelBuffer, error) {
	if src == nil || mask == nil {
		return nil, errors.New("recolor needs a source buffer and a mask")
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if src.Width != mask.Width() || src.Height != mask.Height() {
		return nil, fmt.Errorf("mask %dx%d does not match buffer %dx%d",
			mask.Width(), mask.Height(), src.Width, src.Height)
	}

	dst := src.Clone()
	box := mask.Bounds().Intersect(src.Bounds())
	if box.Empty() {
		return dst, nil
	}

	th, ts, _ := target.HSL()
	stride := src.Width * 4

	parallel.Line(box.Dy(), func(start, end int) {
		for y := box.Min.Y + start; y < box.Min.Y+end; y++ {
			row := y * stride
			for x := box.Min.X; x < box.Max.X; x++ {
				if !mask.Inside(x, y) {
					continue
				}
				i := row + x*4
				_, _, l := RGBToHSL(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = HSLToRGB(th, ts, l)
			}
		}
	})

	return dst, nil
}
