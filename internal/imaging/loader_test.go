package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestLoadForDisplay(t *testing.T) {
	imgPath := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	buf, info, err := LoadForDisplay(imgPath, DefaultMaxDisplayWidth)
	if err != nil {
		t.Fatalf("LoadForDisplay failed: %v", err)
	}

	if buf.Width != 100 || buf.Height != 80 {
		t.Errorf("buffer dimensions: got %dx%d, want 100x80", buf.Width, buf.Height)
	}
	if info.Width != 100 || info.Height != 80 || info.OriginalWidth != 100 || info.OriginalHeight != 80 {
		t.Errorf("info dimensions: got %+v", info)
	}
	if info.Scale != 1 {
		t.Errorf("Scale: got %v, want 1", info.Scale)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
	if got := buf.NRGBAAt(50, 40); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want red", got)
	}
}

func TestLoadForDisplay_Downscale(t *testing.T) {
	imgPath := createTestImage(t, 400, 120, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	buf, info, err := LoadForDisplay(imgPath, 200)
	if err != nil {
		t.Fatalf("LoadForDisplay failed: %v", err)
	}

	if buf.Width != 200 || buf.Height != 60 {
		t.Errorf("buffer dimensions: got %dx%d, want 200x60", buf.Width, buf.Height)
	}
	if info.Scale != 0.5 {
		t.Errorf("Scale: got %v, want 0.5", info.Scale)
	}
	if info.OriginalWidth != 400 || info.OriginalHeight != 120 {
		t.Errorf("original dimensions: got %dx%d, want 400x120", info.OriginalWidth, info.OriginalHeight)
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("downscaled buffer invalid: %v", err)
	}
}

func TestLoadForDisplay_NoLimit(t *testing.T) {
	imgPath := createTestImage(t, 300, 10, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	buf, info, err := LoadForDisplay(imgPath, 0)
	if err != nil {
		t.Fatalf("LoadForDisplay failed: %v", err)
	}
	if buf.Width != 300 || info.Scale != 1 {
		t.Errorf("got width %d scale %v, want 300 and 1", buf.Width, info.Scale)
	}
}

func TestLoadForDisplay_NonExistent(t *testing.T) {
	if _, _, err := LoadForDisplay("/nonexistent/path/to/image.png", 0); err == nil {
		t.Error("LoadForDisplay should fail for non-existent file")
	}
}

func TestLoadForDisplay_InvalidImage(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	if _, _, err := LoadForDisplay(tmpFile.Name(), 0); err == nil {
		t.Error("LoadForDisplay should fail for invalid image data")
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := map[string]string{
		"a.png":  "png",
		"a.PNG":  "png",
		"b.jpg":  "jpeg",
		"b.jpeg": "jpeg",
		"c.gif":  "gif",
		"d.bmp":  "unknown",
		"noext":  "unknown",
	}
	for path, want := range tests {
		if got := formatFromExt(path); got != want {
			t.Errorf("formatFromExt(%q): got %s, want %s", path, got, want)
		}
	}
}
