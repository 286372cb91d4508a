// Package pixel provides decoded pixel buffers in a closed set of element kinds.
package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Kind selects the element type of a pixel buffer. The kind of a sequence is
// fixed at construction time; there is no runtime type switching.
type Kind int

const (
	// KindByte stores 8 bits per channel (RGBA).
	KindByte Kind = iota
	// KindShort stores 16 bits per channel (RGBA).
	KindShort
	// KindFloat stores 32-bit floating point channels (RGBA).
	KindFloat
)

// ErrUnknownKind is returned when a Kind outside the supported set is used.
var ErrUnknownKind = errors.New("pixel: unknown buffer kind")

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k == KindByte || k == KindShort || k == KindFloat
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "byte", "":
		return KindByte, nil
	case "short":
		return KindShort, nil
	case "float":
		return KindFloat, nil
	default:
		return KindByte, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Buffer is a decoded frame in one of the supported element kinds.
type Buffer interface {
	// Kind returns the element kind of the buffer.
	Kind() Kind

	// Width returns the buffer width in pixels, 0 when unallocated.
	Width() int

	// Height returns the buffer height in pixels, 0 when unallocated.
	Height() int

	// IsAllocated reports whether the buffer holds pixel data.
	IsAllocated() bool

	// Image returns the buffer contents as an image.Image for display or
	// texture upload. Returns nil when unallocated.
	Image() image.Image
}

// FromImage converts a decoded image into a buffer of the given kind.
func FromImage(kind Kind, src image.Image) (Buffer, error) {
	switch kind {
	case KindByte:
		return newByteBuffer(src), nil
	case KindShort:
		return newShortBuffer(src), nil
	case KindFloat:
		return newFloatBuffer(src), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// ByteBuffer holds 8-bit RGBA pixels.
type ByteBuffer struct {
	img *image.RGBA
}

func newByteBuffer(src image.Image) *ByteBuffer {
	if rgba, ok := src.(*image.RGBA); ok {
		return &ByteBuffer{img: rgba}
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return &ByteBuffer{img: dst}
}

func (b *ByteBuffer) Kind() Kind { return KindByte }

func (b *ByteBuffer) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

func (b *ByteBuffer) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

func (b *ByteBuffer) IsAllocated() bool { return b.img != nil }

func (b *ByteBuffer) Image() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

// ShortBuffer holds 16-bit RGBA pixels.
type ShortBuffer struct {
	img *image.RGBA64
}

func newShortBuffer(src image.Image) *ShortBuffer {
	if rgba, ok := src.(*image.RGBA64); ok {
		return &ShortBuffer{img: rgba}
	}
	b := src.Bounds()
	dst := image.NewRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return &ShortBuffer{img: dst}
}

func (b *ShortBuffer) Kind() Kind { return KindShort }

func (b *ShortBuffer) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

func (b *ShortBuffer) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

func (b *ShortBuffer) IsAllocated() bool { return b.img != nil }

func (b *ShortBuffer) Image() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

// FloatBuffer holds 32-bit floating point RGBA channels in [0,1].
type FloatBuffer struct {
	data          []float32
	width, height int
}

func newFloatBuffer(src image.Image) *FloatBuffer {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, w*h*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			data[i] = float32(r) / 0xffff
			data[i+1] = float32(g) / 0xffff
			data[i+2] = float32(bl) / 0xffff
			data[i+3] = float32(a) / 0xffff
			i += 4
		}
	}
	return &FloatBuffer{data: data, width: w, height: h}
}

func (b *FloatBuffer) Kind() Kind { return KindFloat }

func (b *FloatBuffer) Width() int {
	if b.data == nil {
		return 0
	}
	return b.width
}

func (b *FloatBuffer) Height() int {
	if b.data == nil {
		return 0
	}
	return b.height
}

func (b *FloatBuffer) IsAllocated() bool { return b.data != nil }

// At returns the RGBA channels at (x, y) in [0,1].
func (b *FloatBuffer) At(x, y int) (r, g, bl, a float32) {
	i := (y*b.width + x) * 4
	return b.data[i], b.data[i+1], b.data[i+2], b.data[i+3]
}

func (b *FloatBuffer) Image() image.Image {
	if b.data == nil {
		return nil
	}
	dst := image.NewRGBA64(image.Rect(0, 0, b.width, b.height))
	i := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			dst.SetRGBA64(x, y, color.RGBA64{
				R: floatToShort(b.data[i]),
				G: floatToShort(b.data[i+1]),
				B: floatToShort(b.data[i+2]),
				A: floatToShort(b.data[i+3]),
			})
			i += 4
		}
	}
	return dst
}

func floatToShort(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}

// Compile-time checks that all kinds implement Buffer.
var (
	_ Buffer = (*ByteBuffer)(nil)
	_ Buffer = (*ShortBuffer)(nil)
	_ Buffer = (*FloatBuffer)(nil)
)
