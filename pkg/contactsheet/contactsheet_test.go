package contactsheet

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRender_Geometry(t *testing.T) {
	frames := make([]Frame, 5)
	for i := range frames {
		frames[i] = Frame{Image: solid(64, 32, color.RGBA{R: 200, A: 255}), Label: "f"}
	}

	opts := Options{
		Columns:   3,
		CellWidth: 64,
		Gap:       10,
		Padding:   20,
		Labels:    false,
	}

	sheet, err := Render(frames, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// 3 columns of 64 + 2 gaps of 10 + 2*20 padding = 252
	// 2 rows of 32 (cell aspect follows 64x32) + 1 gap + 2*20 padding = 114
	wantW, wantH := 252, 114
	if got := sheet.Bounds(); got.Dx() != wantW || got.Dy() != wantH {
		t.Errorf("expected %dx%d, got %dx%d", wantW, wantH, got.Dx(), got.Dy())
	}

	gotW, gotH := SheetSize(len(frames), 64, 32, opts)
	if gotW != wantW || gotH != wantH {
		t.Errorf("SheetSize: expected %dx%d, got %dx%d", wantW, wantH, gotW, gotH)
	}

	// First cell starts at the padding offset and carries frame content.
	r, _, _, _ := sheet.At(21, 21).RGBA()
	if r>>8 < 150 {
		t.Errorf("expected frame content at cell origin, red=%d", r>>8)
	}
}

func TestRender_LabelsReserveSpace(t *testing.T) {
	frames := []Frame{{Image: solid(32, 32, color.White), Label: "0"}}

	plain, err := Render(frames, Options{Columns: 1, CellWidth: 32, Labels: false})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	labelled, err := Render(frames, Options{Columns: 1, CellWidth: 32, Labels: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if labelled.Bounds().Dy() <= plain.Bounds().Dy() {
		t.Error("expected labels to add height")
	}
}

func TestRender_MissingFrameKeepsGrid(t *testing.T) {
	frames := []Frame{
		{Image: solid(32, 32, color.White)},
		{Image: nil},
		{Image: solid(32, 32, color.White)},
	}

	sheet, err := Render(frames, Options{Columns: 3, CellWidth: 32, Labels: false})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if sheet.Bounds().Dx() != 32*3 {
		t.Errorf("expected 3 cells wide, got %d", sheet.Bounds().Dx())
	}
}

func TestRender_NoFrames(t *testing.T) {
	_, err := Render(nil, DefaultOptions())
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
