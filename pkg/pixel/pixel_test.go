package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 77, A: 255})
		}
	}
	return img
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"byte", KindByte, false},
		{"short", KindShort, false},
		{"float", KindFloat, false},
		{"", KindByte, false},
		{"double", KindByte, true},
	}

	for _, tt := range tests {
		kind, err := ParseKind(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("ParseKind(%q): expected ErrUnknownKind, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", tt.input, err)
		}
		if kind != tt.expected {
			t.Errorf("ParseKind(%q): expected %s, got %s", tt.input, tt.expected, kind)
		}
	}
}

func TestFromImage_AllKinds(t *testing.T) {
	src := gradient(5, 3)

	for _, kind := range []Kind{KindByte, KindShort, KindFloat} {
		buf, err := FromImage(kind, src)
		if err != nil {
			t.Fatalf("FromImage(%s) failed: %v", kind, err)
		}
		if buf.Kind() != kind {
			t.Errorf("expected kind %s, got %s", kind, buf.Kind())
		}
		if !buf.IsAllocated() {
			t.Errorf("%s: expected allocated", kind)
		}
		if buf.Width() != 5 || buf.Height() != 3 {
			t.Errorf("%s: expected 5x3, got %dx%d", kind, buf.Width(), buf.Height())
		}
		if buf.Image() == nil {
			t.Errorf("%s: expected non-nil image", kind)
		}
	}
}

func TestFromImage_UnknownKind(t *testing.T) {
	_, err := FromImage(Kind(42), gradient(1, 1))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFromImage_PreservesPixels(t *testing.T) {
	src := gradient(3, 2)

	for _, kind := range []Kind{KindByte, KindShort, KindFloat} {
		buf, err := FromImage(kind, src)
		if err != nil {
			t.Fatalf("FromImage(%s) failed: %v", kind, err)
		}
		got := buf.Image()
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				wr, wg, wb, wa := src.At(x, y).RGBA()
				gr, gg, gb, ga := got.At(x, y).RGBA()
				if diff(wr, gr) > 0x101 || diff(wg, gg) > 0x101 || diff(wb, gb) > 0x101 || diff(wa, ga) > 0x101 {
					t.Errorf("%s: pixel (%d,%d) changed: want %v got %v", kind, x, y, src.At(x, y), got.At(x, y))
				}
			}
		}
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestFloatBuffer_At(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	buf, err := FromImage(KindFloat, img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	fb := buf.(*FloatBuffer)
	r, g, _, a := fb.At(1, 0)
	if r < 0.99 || g > 0.01 || a < 0.99 {
		t.Errorf("unexpected channels: r=%g g=%g a=%g", r, g, a)
	}
}

func TestZeroValueBuffers_Unallocated(t *testing.T) {
	buffers := []Buffer{&ByteBuffer{}, &ShortBuffer{}, &FloatBuffer{}}
	for _, buf := range buffers {
		if buf.IsAllocated() {
			t.Errorf("%s: zero value must be unallocated", buf.Kind())
		}
		if buf.Width() != 0 || buf.Height() != 0 {
			t.Errorf("%s: expected 0x0", buf.Kind())
		}
		if buf.Image() != nil {
			t.Errorf("%s: expected nil image", buf.Kind())
		}
	}
}
