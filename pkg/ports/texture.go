package ports

import (
	"image"

	"github.com/user/imageseq/pkg/pixel"
)

// TextureFilter selects the sampling filter for texture minification and
// magnification.
type TextureFilter int

const (
	// FilterNearest samples the nearest texel.
	FilterNearest TextureFilter = iota
	// FilterLinear interpolates between neighboring texels.
	FilterLinear
)

// String returns the string representation of the filter.
func (f TextureFilter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Texture is a display-side copy of a pixel buffer. A sequence owns exactly
// one texture slot that is re-filled as the current frame changes.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// SetFilter sets the minification and magnification filters.
	SetFilter(min, mag TextureFilter)

	// Image returns the texture contents for drawing.
	Image() image.Image

	// Release frees the texture storage. The texture must not be used after.
	Release()
}

// TextureUploader abstracts texture creation and upload.
//
// Upload must only be called from the execution context that owns display
// resources, never from a background goroutine.
type TextureUploader interface {
	// Upload copies buf into a texture. When existing is non-nil and its
	// dimensions match, implementations should reuse it instead of
	// allocating a new one.
	Upload(buf pixel.Buffer, existing Texture) (Texture, error)
}
