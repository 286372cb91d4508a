// Package softtexture provides a software TextureUploader. The "GPU" is an
// RGBA image slot that is re-filled on every upload, mirroring how a single
// hardware texture would be reused frame to frame.
package softtexture

import (
	"errors"
	"image"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/user/imageseq/pkg/pixel"
	"github.com/user/imageseq/pkg/ports"
)

// ErrEmptyBuffer is returned when uploading an unallocated buffer.
var ErrEmptyBuffer = errors.New("softtexture: cannot upload unallocated buffer")

// Uploader implements ports.TextureUploader.
type Uploader struct{}

// New creates a new Uploader.
func New() *Uploader {
	return &Uploader{}
}

// Upload copies buf into a texture. When existing is a softtexture texture
// with matching dimensions its storage is reused.
func (u *Uploader) Upload(buf pixel.Buffer, existing ports.Texture) (ports.Texture, error) {
	if buf == nil || !buf.IsAllocated() {
		return nil, ErrEmptyBuffer
	}

	src := buf.Image()
	w, h := buf.Width(), buf.Height()

	tex, ok := existing.(*Texture)
	if !ok || tex == nil || tex.img == nil || tex.Width() != w || tex.Height() != h {
		tex = &Texture{img: image.NewRGBA(image.Rect(0, 0, w, h))}
		if prev, ok := existing.(*Texture); ok && prev != nil {
			prev.Release()
		}
	}

	stddraw.Draw(tex.img, tex.img.Bounds(), src, src.Bounds().Min, stddraw.Src)
	return tex, nil
}

// Texture implements ports.Texture over an RGBA image.
type Texture struct {
	img      *image.RGBA
	min, mag ports.TextureFilter
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dx()
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dy()
}

// SetFilter sets the minification and magnification filters.
func (t *Texture) SetFilter(min, mag ports.TextureFilter) {
	t.min = min
	t.mag = mag
}

// Image returns the texture contents.
func (t *Texture) Image() image.Image {
	if t.img == nil {
		return nil
	}
	return t.img
}

// Scaled samples the texture at the given size using the filter that a GPU
// would apply: the mag filter when scaling up, the min filter when scaling
// down.
func (t *Texture) Scaled(width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if t.img == nil {
		return dst
	}

	filter := t.mag
	if width < t.Width() || height < t.Height() {
		filter = t.min
	}

	var scaler xdraw.Scaler
	switch filter {
	case ports.FilterLinear:
		scaler = xdraw.BiLinear
	default:
		scaler = xdraw.NearestNeighbor
	}

	scaler.Scale(dst, dst.Bounds(), t.img, t.img.Bounds(), xdraw.Src, nil)
	return dst
}

// Release frees the texture storage.
func (t *Texture) Release() {
	t.img = nil
}

// Ensure interfaces are implemented
var (
	_ ports.TextureUploader = (*Uploader)(nil)
	_ ports.Texture         = (*Texture)(nil)
)
