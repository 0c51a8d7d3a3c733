package imaging

import (
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultMaxDisplayWidth is the widest image kept at full resolution.
// Wider images are downscaled proportionally when loaded for editing.
const DefaultMaxDisplayWidth = 1024

// ImageInfo describes an image loaded for editing.
type ImageInfo struct {
	// Width and Height are the dimensions of the editable buffer. All
	// polygon coordinates are expressed in this space.
	Width  int `json:"width"`
	Height int `json:"height"`

	// OriginalWidth and OriginalHeight are the dimensions of the file.
	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`

	// Scale is Width / OriginalWidth: 1 unless the image was downscaled.
	Scale float64 `json:"scale"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadForDisplay decodes the image at path into a PixelBuffer ready for
// editing.
//
// EXIF orientation is applied so phone photos come out upright. If the
// image is wider than maxWidth it is resized with a Lanczos filter so its
// width becomes maxWidth; the height keeps the aspect ratio. A maxWidth of
// zero or less disables downscaling.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
func LoadForDisplay(path string, maxWidth int) (*PixelBuffer, *ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		Scale:          1,
		Format:         formatFromExt(path),
		FileSizeBytes:  stat.Size(),
	}
	if info.OriginalWidth == 0 || info.OriginalHeight == 0 {
		return nil, nil, fmt.Errorf("image %s is empty", path)
	}

	var buf *PixelBuffer
	if maxWidth > 0 && info.OriginalWidth > maxWidth {
		info.Scale = float64(maxWidth) / float64(info.OriginalWidth)
		h := max(int(float64(info.OriginalHeight)*info.Scale), 1)
		buf = FromImage(imaging.Resize(img, maxWidth, h, imaging.Lanczos))
	} else {
		buf = FromImage(img)
	}

	info.Width = buf.Width
	info.Height = buf.Height
	return buf, info, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}
