// Package contactsheet renders a grid overview of sequence frames.
package contactsheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Frame is one cell of the sheet.
type Frame struct {
	Image image.Image
	Label string
}

// Options configures the sheet layout.
type Options struct {
	Columns    int         // Number of columns (default: 4)
	CellWidth  int         // Cell width in pixels; cell height follows the frame aspect (default: 192)
	Gap        int         // Gap between cells (default: 8)
	Padding    int         // Padding around the sheet (default: 8)
	Background color.Color // Sheet background (default: dark gray)
	Labels     bool        // Draw frame labels under each cell
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		Columns:    4,
		CellWidth:  192,
		Gap:        8,
		Padding:    8,
		Background: color.RGBA{R: 32, G: 32, B: 32, A: 255},
		Labels:     true,
	}
}

// ErrNoFrames is returned when rendering a sheet with no frames.
var ErrNoFrames = errors.New("contactsheet: no frames to render")

// labelHeight is the vertical space reserved for a cell label.
const labelHeight = 14

// Render draws the frames into a grid and returns the sheet image. The cell
// height is derived from the first frame's aspect ratio; frames with other
// aspects are stretched to fit their cell.
func Render(frames []Frame, opts Options) (image.Image, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if opts.Columns <= 0 {
		opts.Columns = 1
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultOptions().CellWidth
	}
	if opts.Background == nil {
		opts.Background = DefaultOptions().Background
	}

	first := frames[0].Image
	if first == nil {
		return nil, fmt.Errorf("%w: frame 0 has no image", ErrNoFrames)
	}
	cellW := opts.CellWidth
	cellH := cellW * first.Bounds().Dy() / first.Bounds().Dx()

	rows := (len(frames) + opts.Columns - 1) / opts.Columns
	rowH := cellH
	if opts.Labels {
		rowH += labelHeight
	}

	sheetW := opts.Padding*2 + opts.Columns*cellW + (opts.Columns-1)*opts.Gap
	sheetH := opts.Padding*2 + rows*rowH + (rows-1)*opts.Gap

	dc := gg.NewContext(sheetW, sheetH)
	dc.SetColor(opts.Background)
	dc.Clear()

	for i, frame := range frames {
		col := i % opts.Columns
		row := i / opts.Columns
		x := opts.Padding + col*(cellW+opts.Gap)
		y := opts.Padding + row*(rowH+opts.Gap)

		if frame.Image != nil {
			dc.DrawImage(scaleInto(frame.Image, cellW, cellH), x, y)
		} else {
			// Missing frame: keep the grid position, mark the cell.
			dc.SetColor(color.RGBA{R: 64, G: 16, B: 16, A: 255})
			dc.DrawRectangle(float64(x), float64(y), float64(cellW), float64(cellH))
			dc.Fill()
		}

		if opts.Labels {
			dc.SetColor(color.White)
			dc.DrawStringAnchored(frame.Label, float64(x)+float64(cellW)/2, float64(y+cellH)+labelHeight/2, 0.5, 0.4)
		}
	}

	return dc.Image(), nil
}

// SheetSize returns the dimensions Render will produce for n frames of the
// given frame aspect, without rendering.
func SheetSize(n, frameW, frameH int, opts Options) (width, height int) {
	if opts.Columns <= 0 {
		opts.Columns = 1
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultOptions().CellWidth
	}

	cellW := opts.CellWidth
	cellH := cellW * frameH / frameW
	rows := (n + opts.Columns - 1) / opts.Columns
	rowH := cellH
	if opts.Labels {
		rowH += labelHeight
	}

	width = opts.Padding*2 + opts.Columns*cellW + (opts.Columns-1)*opts.Gap
	height = opts.Padding*2 + rows*rowH + (rows-1)*opts.Gap
	return width, height
}

func scaleInto(src image.Image, w, h int) image.Image {
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
