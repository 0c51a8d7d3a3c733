package session

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/image-recolor-mcp/internal/history"
	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
)

// Editor is the state of one editing session: the current buffer, its undo
// history and the selection in progress.
//
// The current buffer is tracked explicitly. It is never rebuilt from the
// undo history; commit replaces it with the recolored buffer and undo
// replaces it with the popped snapshot.
//
// Editor methods are safe to call from multiple goroutines, but they are
// serialized: each runs to completion before the next starts.
type Editor struct {
	mu sync.Mutex

	opts      history.Options
	current   *imaging.PixelBuffer
	scale     float64
	undo      *history.Stack
	selection *Selection
}

// CommitResult describes a committed recolor.
type CommitResult struct {
	// Buffer is the new current buffer.
	Buffer *imaging.PixelBuffer

	// Color is the parsed target color.
	Color imaging.Color

	// Bounds is the bounding box of the polygon; no pixel outside it changed.
	Bounds image.Rectangle

	// UndoDepth is the number of snapshots after the commit.
	UndoDepth int
}

// Status summarizes the editor state.
type Status struct {
	Loaded    bool    `json:"loaded"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	State     string  `json:"state"`
	Points    int     `json:"points"`
	UndoDepth int     `json:"undo_depth"`
	UndoBytes int     `json:"undo_bytes"`
}

// NewEditor creates an editor with no image. opts configures the undo
// history created for every loaded image.
func NewEditor(opts history.Options) *Editor {
	return &Editor{opts: opts}
}

// LoadImage makes buf the current image. scale is the factor that was
// applied to fit the image for display; all later coordinates are in buf's
// pixel space. Any selection and undo history of a previous image are
// discarded. The editor takes ownership of buf.
func (e *Editor) LoadImage(buf *imaging.PixelBuffer, scale float64) error {
	if buf == nil {
		return errors.New("no image to load")
	}
	if err := buf.Validate(); err != nil {
		return err
	}
	if scale <= 0 {
		return fmt.Errorf("invalid display scale %v", scale)
	}

	stack, err := history.New(e.opts)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.undo != nil {
		e.undo.Close()
	}
	e.current = buf
	e.scale = scale
	e.undo = stack
	e.selection = NewSelection(buf.Width, buf.Height, stack)
	return nil
}

// StartSelection begins collecting a new polygon.
func (e *Editor) StartSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return ErrNoImageLoaded
	}
	e.selection.Start()
	return nil
}

// AddPoint appends a vertex, in buffer pixel coordinates, to the polygon
// being collected and returns the updated overlay.
func (e *Editor) AddPoint(p imaging.Point) (Overlay, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return Overlay{}, ErrNoImageLoaded
	}
	if err := e.selection.AddPoint(p); err != nil {
		return Overlay{}, err
	}
	return e.selection.Preview(), nil
}

// CancelSelection abandons the polygon being collected.
func (e *Editor) CancelSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return ErrNoImageLoaded
	}
	e.selection.Cancel()
	return nil
}

// CommitSelection recolors the collected polygon with the hex color and
// makes the result the current buffer.
func (e *Editor) CommitSelection(hexColor string) (*CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return nil, ErrNoImageLoaded
	}
	target, err := imaging.ParseHexColor(hexColor)
	if err != nil {
		return nil, err
	}

	bounds := e.selection.Points().Bounds(e.current.Width, e.current.Height)
	next, err := e.selection.Commit(e.current, target)
	if err != nil {
		return nil, err
	}
	e.current = next

	return &CommitResult{
		Buffer:    next,
		Color:     target,
		Bounds:    bounds,
		UndoDepth: e.undo.Len(),
	}, nil
}

// Undo restores the buffer as it was before the most recent commit and
// returns it. Vertices of a selection in progress are dropped.
//
// With nothing to undo it returns ErrEmptyUndoStack and changes nothing.
func (e *Editor) Undo() (*imaging.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return nil, ErrNoImageLoaded
	}
	prev, err := e.undo.Pop()
	if errors.Is(err, history.ErrEmpty) {
		return nil, ErrEmptyUndoStack
	}
	if err != nil {
		return nil, err
	}

	e.current = prev
	e.selection.clearPoints()
	return prev, nil
}

// Current returns the current buffer. The buffer belongs to the editor and
// must not be modified.
func (e *Editor) Current() (*imaging.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return nil, ErrNoImageLoaded
	}
	return e.current, nil
}

// Scale returns the display scale the current image was loaded with, or
// zero before an image is loaded.
func (e *Editor) Scale() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scale
}

// UndoDepth returns the number of commits that can be undone.
func (e *Editor) UndoDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.undo == nil {
		return 0
	}
	return e.undo.Len()
}

// Preview returns the overlay for the polygon being collected.
func (e *Editor) Preview() (Overlay, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return Overlay{}, ErrNoImageLoaded
	}
	return e.selection.Preview(), nil
}

// Status returns a summary of the editor state.
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return Status{State: Idle.String()}
	}
	return Status{
		Loaded:    true,
		Width:     e.current.Width,
		Height:    e.current.Height,
		Scale:     e.scale,
		State:     e.selection.State().String(),
		Points:    len(e.selection.points),
		UndoDepth: e.undo.Len(),
		UndoBytes: e.undo.Bytes(),
	}
}

// Close releases the undo history.
func (e *Editor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.undo == nil {
		return nil
	}
	err := e.undo.Close()
	e.undo = nil
	e.current = nil
	e.selection = nil
	return err
}
