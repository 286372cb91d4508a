package mocks

import (
	"image"
	"sync"

	"github.com/user/imageseq/pkg/pixel"
	"github.com/user/imageseq/pkg/ports"
)

// Decoder is a mock implementation of ports.ImageDecoder. By default every
// path decodes to a solid image of the configured size; DecodeFunc overrides
// the behavior entirely. Calls are counted per path so tests can assert
// decode idempotence.
type Decoder struct {
	mu    sync.Mutex
	calls map[string]int

	// Width and Height of the generated images (default 4x2).
	Width  int
	Height int

	DecodeFunc func(path string, kind pixel.Kind) (pixel.Buffer, error)
}

// NewDecoder creates a new mock Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		calls:  make(map[string]int),
		Width:  4,
		Height: 2,
	}
}

func (m *Decoder) Decode(path string, kind pixel.Kind) (pixel.Buffer, error) {
	m.mu.Lock()
	m.calls[path]++
	m.mu.Unlock()

	if m.DecodeFunc != nil {
		return m.DecodeFunc(path, kind)
	}
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	return pixel.FromImage(kind, img)
}

// Calls returns how many times path has been decoded.
func (m *Decoder) Calls(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}

// TotalCalls returns the total number of decode calls.
func (m *Decoder) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

var _ ports.ImageDecoder = (*Decoder)(nil)
