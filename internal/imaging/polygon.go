package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// ErrInsufficientPoints is returned when a polygon has fewer than three vertices.
var ErrInsufficientPoints = errors.New("insufficient points")

// MinPolygonPoints is the smallest vertex count that encloses an area.
const MinPolygonPoints = 3

// Point is a pixel coordinate in buffer space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Polygon is an ordered, implicitly closed vertex list. Consecutive
// vertices are joined by edges and the last vertex connects to the first.
type Polygon []Point

// Bounds returns the axis-aligned bounding box of the vertices, clamped to
// a width x height image. Max is exclusive, matching image.Rectangle.
//
// Vertices lie on pixel corners, so a vertex at x=7 closes the shape on
// the left edge of column 7 and column 7 itself is outside the box.
func (p Polygon) Bounds(width, height int) image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}

	box := image.Rectangle{Min: image.Point(p[0]), Max: image.Point(p[0])}
	for _, v := range p[1:] {
		box.Min.X = min(box.Min.X, v.X)
		box.Min.Y = min(box.Min.Y, v.Y)
		box.Max.X = max(box.Max.X, v.X)
		box.Max.Y = max(box.Max.Y, v.Y)
	}
	return box.Intersect(image.Rect(0, 0, width, height))
}

// Mask is a read-only inclusion grid produced by Rasterize.
type Mask struct {
	coverage *image.Alpha
	bounds   image.Rectangle
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.coverage.Rect.Dx() }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.coverage.Rect.Dy() }

// Bounds returns the bounding box of the polygon the mask was built from.
// No pixel outside it is inside the mask.
func (m *Mask) Bounds() image.Rectangle { return m.bounds }

// Inside reports whether pixel (x, y) is covered by the polygon.
func (m *Mask) Inside(x, y int) bool {
	if !image.Pt(x, y).In(m.coverage.Rect) {
		return false
	}
	return m.coverage.Pix[y*m.coverage.Stride+x] > 0
}

// Count returns the number of pixels inside the mask.
func (m *Mask) Count() int {
	n := 0
	for y := m.bounds.Min.Y; y < m.bounds.Max.Y; y++ {
		for x := m.bounds.Min.X; x < m.bounds.Max.X; x++ {
			if m.Inside(x, y) {
				n++
			}
		}
	}
	return n
}

// Rasterize fills poly onto an off-screen width x height coverage surface
// and returns the resulting mask. A pixel is inside when any part of it is
// covered, so partially covered edge pixels count as inside.
//
// The fill uses the nonzero winding rule. Self-intersecting polygons are
// accepted: both lobes of a bow tie are inside, and so is the doubly wound
// center of a pentagram.
func Rasterize(poly Polygon, width, height int) (*Mask, error) {
	if len(poly) < MinPolygonPoints {
		return nil, fmt.Errorf("%w: polygon has %d points, need at least %d",
			ErrInsufficientPoints, len(poly), MinPolygonPoints)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid mask dimensions %dx%d", width, height)
	}

	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Src
	r.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, v := range poly[1:] {
		r.LineTo(float32(v.X), float32(v.Y))
	}
	r.ClosePath()

	surface := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(surface, surface.Bounds(), image.Opaque, image.Point{})

	return &Mask{
		coverage: surface,
		bounds:   poly.Bounds(width, height),
	}, nil
}
