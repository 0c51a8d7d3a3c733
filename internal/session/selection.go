package session

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-recolor-mcp/internal/history"
	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
)

// State is the selection state.
type State int

const (
	// Idle means no selection is in progress.
	Idle State = iota
	// Collecting means vertices are being added to a new polygon.
	Collecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Overlay describes what the UI should draw on top of the image while a
// polygon is being collected. It is never part of the pixel buffer.
type Overlay struct {
	Active bool            `json:"active"`
	Points []imaging.Point `json:"points"`

	// Closed asks the UI to draw the edge from the last vertex back to
	// the first; set once the polygon has enough vertices to enclose an area.
	Closed bool `json:"closed"`
}

// Selection collects polygon vertices for one image and applies a recolor
// when the polygon is committed.
//
// Operations that are invalid in the current state are rejected without
// changing anything.
type Selection struct {
	width, height int
	state         State
	points        imaging.Polygon
	undo          *history.Stack
}

// NewSelection creates an idle selection for a width x height image.
// Committed edits push their pre-edit buffers onto undo.
func NewSelection(width, height int, undo *history.Stack) *Selection {
	return &Selection{width: width, height: height, undo: undo}
}

// State returns the current state.
func (s *Selection) State() State { return s.state }

// Start begins a new polygon, discarding any stale vertices.
func (s *Selection) Start() {
	s.state = Collecting
	s.points = nil
}

// AddPoint appends a vertex to the polygon being collected.
func (s *Selection) AddPoint(p imaging.Point) error {
	if s.state != Collecting {
		return ErrNotCollecting
	}
	if p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return fmt.Errorf("%w: (%d,%d) not within %dx%d", ErrInvalidPoint, p.X, p.Y, s.width, s.height)
	}
	s.points = append(s.points, p)
	return nil
}

// Cancel abandons the polygon being collected. The image is not touched.
func (s *Selection) Cancel() {
	s.state = Idle
	s.points = nil
}

// Points returns a copy of the vertices collected so far.
func (s *Selection) Points() imaging.Polygon {
	pts := make(imaging.Polygon, len(s.points))
	copy(pts, s.points)
	return pts
}

// Preview returns the overlay for the polygon being collected.
func (s *Selection) Preview() Overlay {
	return Overlay{
		Active: s.state == Collecting,
		Points: s.Points(),
		Closed: len(s.points) >= imaging.MinPolygonPoints,
	}
}

// Commit recolors the collected polygon on current and returns the new
// buffer.
//
// On success current is pushed onto the undo stack, which takes ownership
// of it, and the selection returns to Idle with no vertices. On failure
// nothing changes, current included.
func (s *Selection) Commit(current *imaging.PixelBuffer, target imaging.Color) (*imaging.PixelBuffer, error) {
	if s.state != Collecting {
		return nil, fmt.Errorf("%w: no selection in progress", ErrInsufficientPoints)
	}
	if len(s.points) < imaging.MinPolygonPoints {
		return nil, fmt.Errorf("%w: selection has %d points, need at least %d",
			ErrInsufficientPoints, len(s.points), imaging.MinPolygonPoints)
	}
	if current == nil {
		return nil, errors.New("commit needs a current buffer")
	}
	if current.Width != s.width || current.Height != s.height {
		return nil, fmt.Errorf("buffer %dx%d does not match selection %dx%d",
			current.Width, current.Height, s.width, s.height)
	}

	mask, err := imaging.Rasterize(s.points, s.width, s.height)
	if err != nil {
		return nil, err
	}
	next, err := imaging.Recolor(current, mask, target)
	if err != nil {
		return nil, err
	}
	if err := s.undo.Push(current); err != nil {
		return nil, fmt.Errorf("failed to record undo snapshot: %w", err)
	}

	s.state = Idle
	s.points = nil
	return next, nil
}

// clearPoints drops collected vertices but keeps the state.
func (s *Selection) clearPoints() {
	s.points = nil
}
