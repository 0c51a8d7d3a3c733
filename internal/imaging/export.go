package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// RegionFromRect converts an image.Rectangle to a Region.
func RegionFromRect(r image.Rectangle) Region {
	return Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// ImageResult contains an encoded image for the rendering side.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes buf, or the given region of it, as base64 PNG.
// A nil region encodes the whole buffer.
func EncodePNG(buf *PixelBuffer, region *Region) (*ImageResult, error) {
	img, err := cropRegion(buf, region)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes buf, or the given region of it, to path and returns the
// size written. The format is chosen from the file extension.
func Save(buf *PixelBuffer, path string, region *Region) (image.Point, error) {
	img, err := cropRegion(buf, region)
	if err != nil {
		return image.Point{}, err
	}
	if err := imaging.Save(img, path); err != nil {
		return image.Point{}, fmt.Errorf("failed to save image: %w", err)
	}
	return img.Bounds().Size(), nil
}

func cropRegion(buf *PixelBuffer, region *Region) (image.Image, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if region == nil {
		return buf.NRGBA(), nil
	}
	if err := validateRegion(buf, *region); err != nil {
		return nil, err
	}
	return imaging.Crop(buf.NRGBA(), region.Rect()), nil
}

func validateRegion(buf *PixelBuffer, r Region) error {
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > buf.Width || r.Y2 > buf.Height {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, buf.Width, buf.Height)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}
