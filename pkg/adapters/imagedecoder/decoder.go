// Package imagedecoder provides an ImageDecoder implementation backed by the
// standard image package and the extended golang.org/x/image codecs.
package imagedecoder

import (
	"fmt"
	"image"
	"os"

	// Register decodable formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/imageseq/pkg/pixel"
	"github.com/user/imageseq/pkg/ports"
)

// Decoder implements ports.ImageDecoder.
type Decoder struct{}

// New creates a new Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode reads and decodes the image file at path into a buffer of the given
// kind. The format is sniffed from the file contents, so a mismatched
// extension still decodes.
func (d *Decoder) Decode(path string, kind pixel.Kind) (pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	buf, err := pixel.FromImage(kind, img)
	if err != nil {
		return nil, fmt.Errorf("convert %s image: %w", format, err)
	}
	return buf, nil
}

// Ensure Decoder implements ports.ImageDecoder
var _ ports.ImageDecoder = (*Decoder)(nil)
