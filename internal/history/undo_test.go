package history

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
)

// createBuffer creates a small buffer whose bytes depend on seed
func createBuffer(width, height int, seed uint8) *imaging.PixelBuffer {
	buf := imaging.NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetNRGBA(x, y, color.NRGBA{
				R: seed,
				G: uint8(x * 7),
				B: uint8(y * 11),
				A: 255,
			})
		}
	}
	return buf
}

func newStack(t *testing.T, opts Options) *Stack {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStack_PushPopOrder(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "zstd"
		}
		t.Run(name, func(t *testing.T) {
			s := newStack(t, Options{Compress: compress})

			b0 := createBuffer(16, 12, 0)
			b1 := createBuffer(16, 12, 1)
			want0, want1 := b0.Clone(), b1.Clone()

			if err := s.Push(b0); err != nil {
				t.Fatalf("Push failed: %v", err)
			}
			if err := s.Push(b1); err != nil {
				t.Fatalf("Push failed: %v", err)
			}
			if s.Len() != 2 {
				t.Fatalf("Len: got %d, want 2", s.Len())
			}

			got, err := s.Pop()
			if err != nil {
				t.Fatalf("Pop failed: %v", err)
			}
			if !got.Equal(want1) {
				t.Error("first Pop should return the most recent snapshot")
			}

			got, err = s.Pop()
			if err != nil {
				t.Fatalf("Pop failed: %v", err)
			}
			if !got.Equal(want0) {
				t.Error("second Pop should return the oldest snapshot")
			}

			if s.Len() != 0 {
				t.Errorf("Len after popping everything: got %d, want 0", s.Len())
			}
		})
	}
}

func TestStack_PopEmpty(t *testing.T) {
	s := newStack(t, Options{})
	if _, err := s.Pop(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Pop on empty stack: got %v, want ErrEmpty", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
}

func TestStack_MaxDepth(t *testing.T) {
	s := newStack(t, Options{MaxDepth: 3})

	for i := 0; i < 5; i++ {
		if err := s.Push(createBuffer(4, 4, uint8(i))); err != nil {
			t.Fatalf("Push %d failed: %v", i, err)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", s.Len())
	}

	// snapshots 4, 3 and 2 survive; 0 and 1 were dropped
	for _, want := range []uint8{4, 3, 2} {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if got.Pix[0] != want {
			t.Errorf("Pop: got snapshot %d, want %d", got.Pix[0], want)
		}
	}
	if _, err := s.Pop(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Pop past the bound: got %v, want ErrEmpty", err)
	}
}

func TestStack_Unbounded(t *testing.T) {
	s := newStack(t, Options{MaxDepth: 0})
	for i := 0; i < 50; i++ {
		if err := s.Push(createBuffer(2, 2, uint8(i))); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	if s.Len() != 50 {
		t.Errorf("Len: got %d, want 50", s.Len())
	}
}

func TestStack_CompressionSavesMemory(t *testing.T) {
	s := newStack(t, Options{Compress: true})

	// a flat buffer compresses to a tiny fraction of its size
	buf := imaging.NewPixelBuffer(256, 256)
	raw := len(buf.Pix)
	if err := s.Push(buf); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if s.Bytes() >= raw/10 {
		t.Errorf("compressed snapshot holds %d bytes, raw is %d", s.Bytes(), raw)
	}

	got, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if len(got.Pix) != raw {
		t.Errorf("decompressed length: got %d, want %d", len(got.Pix), raw)
	}
}

func TestStack_Bytes(t *testing.T) {
	s := newStack(t, Options{})
	if err := s.Push(createBuffer(10, 10, 1)); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if s.Bytes() != 400 {
		t.Errorf("Bytes: got %d, want 400", s.Bytes())
	}
}

func TestStack_PushInvalid(t *testing.T) {
	s := newStack(t, Options{})
	if err := s.Push(nil); err == nil {
		t.Error("Push(nil) should fail")
	}
	if err := s.Push(&imaging.PixelBuffer{Width: 2, Height: 2, Pix: make([]uint8, 3)}); err == nil {
		t.Error("Push of a malformed buffer should fail")
	}
	if s.Len() != 0 {
		t.Errorf("failed pushes should not add snapshots, Len = %d", s.Len())
	}
}

func TestStack_Clear(t *testing.T) {
	s := newStack(t, Options{Compress: true})
	for i := 0; i < 3; i++ {
		if err := s.Push(createBuffer(8, 8, uint8(i))); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	s.Clear()
	if s.Len() != 0 || s.Bytes() != 0 {
		t.Errorf("after Clear: Len %d, Bytes %d", s.Len(), s.Bytes())
	}
}
