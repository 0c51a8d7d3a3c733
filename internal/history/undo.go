// Package history keeps the undo snapshots of an editing session.
//
// Each snapshot is the full pixel buffer as it was immediately before a
// recolor. Snapshots are full-resolution copies, so the stack can be bounded
// in depth and can optionally keep them zstd-compressed.
package history

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
)

// ErrEmpty is returned by Pop when there is nothing to restore.
var ErrEmpty = errors.New("undo stack is empty")

// DefaultMaxDepth is the number of snapshots kept when Options.MaxDepth is
// not set explicitly by the configuration layer.
const DefaultMaxDepth = 20

// Options configures a Stack.
type Options struct {
	// MaxDepth bounds the number of snapshots. When a push would exceed
	// it, the oldest snapshot is discarded. Zero or less means unbounded.
	MaxDepth int

	// Compress keeps snapshots zstd-compressed in memory.
	Compress bool
}

type snapshot struct {
	width, height int
	data          []byte
	compressed    bool
}

// Stack is an ordered sequence of buffer snapshots, most recent last.
//
// A Stack is not safe for concurrent use.
type Stack struct {
	opts    Options
	entries []snapshot
	enc     *zstd.Encoder
	dec     *zstd.Decoder
}

// New creates an empty stack.
func New(opts Options) (*Stack, error) {
	s := &Stack{opts: opts}
	if opts.Compress {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedFastest),
			zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("failed to create snapshot encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			enc.Close()
			return nil, fmt.Errorf("failed to create snapshot decoder: %w", err)
		}
		s.enc, s.dec = enc, dec
	}
	return s, nil
}

// Push appends buf as the newest snapshot. Ownership of buf passes to the
// stack: the caller must not modify it afterwards.
func (s *Stack) Push(buf *imaging.PixelBuffer) error {
	if buf == nil {
		return errors.New("cannot push a nil snapshot")
	}
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	snap := snapshot{width: buf.Width, height: buf.Height, data: buf.Pix}
	if s.enc != nil {
		snap.data = s.enc.EncodeAll(buf.Pix, make([]byte, 0, len(buf.Pix)/4))
		snap.compressed = true
	}

	s.entries = append(s.entries, snap)
	if s.opts.MaxDepth > 0 && len(s.entries) > s.opts.MaxDepth {
		n := copy(s.entries, s.entries[len(s.entries)-s.opts.MaxDepth:])
		clear(s.entries[n:])
		s.entries = s.entries[:n]
	}
	return nil
}

// Pop removes and returns the newest snapshot. It returns ErrEmpty if the
// stack holds no snapshots, leaving the stack unchanged.
func (s *Stack) Pop() (*imaging.PixelBuffer, error) {
	if len(s.entries) == 0 {
		return nil, ErrEmpty
	}

	last := len(s.entries) - 1
	snap := s.entries[last]

	pix := snap.data
	if snap.compressed {
		var err error
		pix, err = s.dec.DecodeAll(snap.data, make([]byte, 0, snap.width*snap.height*4))
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
	}

	buf := &imaging.PixelBuffer{Width: snap.width, Height: snap.height, Pix: pix}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}

	s.entries[last] = snapshot{}
	s.entries = s.entries[:last]
	return buf, nil
}

// Len returns the number of snapshots.
func (s *Stack) Len() int { return len(s.entries) }

// Bytes returns the memory held by snapshot pixel data.
func (s *Stack) Bytes() int {
	n := 0
	for _, e := range s.entries {
		n += len(e.data)
	}
	return n
}

// Clear drops all snapshots.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Close releases the compressor, if any. The stack must not be used
// afterwards.
func (s *Stack) Close() error {
	s.Clear()
	if s.dec != nil {
		s.dec.Close()
	}
	if s.enc != nil {
		return s.enc.Close()
	}
	return nil
}
