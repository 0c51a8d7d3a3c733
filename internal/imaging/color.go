package imaging

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string is not a 6-digit hex color.
var ErrInvalidColor = errors.New("invalid color")

// Color is an opaque 8-bit RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseHexColor parses a color of the form "#RRGGBB" or "RRGGBB".
//
// Hex digits are case-insensitive. Short forms ("#F00") and alpha forms
// ("#FF000080") are rejected. The returned error wraps ErrInvalidColor.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
		return Color{}, fmt.Errorf("%w: %q is not a 6-digit hex color", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HSL returns the color's hue, saturation and lightness, each in [0,1].
func (c Color) HSL() (h, s, l float64) {
	return RGBToHSL(c.R, c.G, c.B)
}

// RGBToHSL converts 8-bit RGB values to HSL with all components in [0,1].
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Lightness is the midpoint of the largest and smallest component
//  3. Saturation depends on which half of the lightness range we are in
//  4. Hue is the 0-6 sector of the largest component, divided by 6
//
// Grays (r == g == b) have zero hue and saturation.
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	hi := max(rf, gf, bf)
	lo := min(rf, gf, bf)
	l = (hi + lo) / 2.0

	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2.0 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6

	return h, s, l
}

// HSLToRGB converts HSL (each component in [0,1]) back to 8-bit RGB.
// Channels are rounded to the nearest integer.
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := toByte(l)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return toByte(hueToChannel(p, q, h+1.0/3)),
		toByte(hueToChannel(p, q, h)),
		toByte(hueToChannel(p, q, h-1.0/3))
}

// hueToChannel evaluates one RGB channel for the hue offset t.
func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toByte(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor is an HSL color in the units people usually read them in.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor reads the pixel at (x, y) of buf.
//
// It is mostly useful for checking a recolor result: the lightness of a
// recolored pixel matches the lightness of the pixel it replaced, while the
// hue and saturation match the target color.
func SampleColor(buf *PixelBuffer, x, y int) (*ColorResult, error) {
	if !buf.InBounds(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := buf.NRGBAAt(x, y)
	h, s, l := RGBToHSL(c.R, c.G, c.B)

	return &ColorResult{
		Hex:  Color{R: c.R, G: c.G, B: c.B}.Hex(),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(h*360)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}
