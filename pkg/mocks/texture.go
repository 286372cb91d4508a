package mocks

import (
	"errors"
	"image"
	"sync"

	"github.com/user/imageseq/pkg/pixel"
	"github.com/user/imageseq/pkg/ports"
)

// Uploader is a mock implementation of ports.TextureUploader. It records
// every upload so tests can assert that texture traffic only happens on the
// caller's side.
type Uploader struct {
	mu      sync.Mutex
	uploads int

	UploadFunc func(buf pixel.Buffer, existing ports.Texture) (ports.Texture, error)
}

// NewUploader creates a new mock Uploader.
func NewUploader() *Uploader {
	return &Uploader{}
}

func (m *Uploader) Upload(buf pixel.Buffer, existing ports.Texture) (ports.Texture, error) {
	m.mu.Lock()
	m.uploads++
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(buf, existing)
	}
	if buf == nil || !buf.IsAllocated() {
		return nil, errors.New("mocks: upload of unallocated buffer")
	}
	if tex, ok := existing.(*Texture); ok && tex != nil && !tex.released &&
		tex.width == buf.Width() && tex.height == buf.Height() {
		tex.img = buf.Image()
		return tex, nil
	}
	return &Texture{width: buf.Width(), height: buf.Height(), img: buf.Image()}, nil
}

// Uploads returns how many uploads have happened.
func (m *Uploader) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads
}

// Texture is the mock texture produced by Uploader.
type Texture struct {
	width, height int
	img           image.Image
	min, mag      ports.TextureFilter
	released      bool
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

func (t *Texture) SetFilter(min, mag ports.TextureFilter) {
	t.min = min
	t.mag = mag
}

// Filters returns the last filters set (for test verification).
func (t *Texture) Filters() (min, mag ports.TextureFilter) {
	return t.min, t.mag
}

func (t *Texture) Image() image.Image { return t.img }

func (t *Texture) Release() {
	t.released = true
	t.img = nil
}

// Released reports whether Release has been called (for test verification).
func (t *Texture) Released() bool { return t.released }

var (
	_ ports.TextureUploader = (*Uploader)(nil)
	_ ports.Texture         = (*Texture)(nil)
)
