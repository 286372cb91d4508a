package ports

import (
	"github.com/user/imageseq/pkg/pixel"
)

// ImageDecoder abstracts still-image decoding.
//
// Implementations must be safe to call from a background goroutine and must
// not touch GPU resources.
type ImageDecoder interface {
	// Decode reads the image file at path into a buffer of the given kind.
	Decode(path string, kind pixel.Kind) (pixel.Buffer, error)
}
