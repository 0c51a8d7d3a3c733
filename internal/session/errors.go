package session

import (
	"errors"

	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
)

// Failures reported by Editor and Selection. All of them are recoverable:
// a rejected operation leaves the current buffer, the undo history and the
// selection exactly as they were.
var (
	// ErrNoImageLoaded is returned by every operation before LoadImage.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrInvalidColor is returned when the target color is not a hex color.
	ErrInvalidColor = imaging.ErrInvalidColor

	// ErrInsufficientPoints is returned when committing fewer than three
	// vertices, or committing with no selection in progress.
	ErrInsufficientPoints = imaging.ErrInsufficientPoints

	// ErrInvalidPoint is returned for vertices outside the image.
	ErrInvalidPoint = errors.New("point outside image bounds")

	// ErrNotCollecting is returned when adding a vertex with no selection
	// in progress.
	ErrNotCollecting = errors.New("no selection in progress")

	// ErrEmptyUndoStack signals that there is nothing to undo. It is not a
	// failure of the session; callers typically disable their undo action.
	ErrEmptyUndoStack = errors.New("nothing to undo")
)

// Kind returns the name of the failure kind err belongs to, or "" if err is
// nil or not one of the session failures.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoImageLoaded):
		return "NoImageLoaded"
	case errors.Is(err, ErrInvalidColor):
		return "InvalidColor"
	case errors.Is(err, ErrInsufficientPoints):
		return "InsufficientPoints"
	case errors.Is(err, ErrInvalidPoint):
		return "InvalidPoint"
	case errors.Is(err, ErrNotCollecting):
		return "NotCollecting"
	case errors.Is(err, ErrEmptyUndoStack):
		return "EmptyUndoStack"
	}
	return ""
}
