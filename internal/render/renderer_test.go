package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
)

func TestRenderPNGStandardBoard(t *testing.T) {
	r := NewBoardRenderer()
	sel := checkers.Square{Row: 5, Col: 0}
	data, err := r.RenderPNG(context.Background(), checkers.NewGame().Grid(), Options{
		Header:       "alice vs bob",
		Turn:         "light to move",
		Selected:     &sel,
		Destinations: []checkers.Square{{Row: 4, Col: 1}},
	})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := 64*8 + sideMargin*2
	if img.Bounds().Dx() != want {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), want)
	}
}

func TestRenderPiecesChangeImage(t *testing.T) {
	r := NewBoardRenderer()
	ctx := context.Background()
	empty, err := r.RenderPNG(ctx, checkers.NewBoard().Grid(), Options{})
	if err != nil {
		t.Fatalf("RenderPNG empty: %v", err)
	}
	full, err := r.RenderPNG(ctx, checkers.StandardBoard().Grid(), Options{})
	if err != nil {
		t.Fatalf("RenderPNG full: %v", err)
	}
	if bytes.Equal(empty, full) {
		t.Fatalf("pieces did not change the image")
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBoardRenderer().RenderPNG(ctx, checkers.NewBoard().Grid(), Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestPieceIconsRasterize(t *testing.T) {
	for _, c := range []checkers.Color{checkers.Light, checkers.Dark} {
		img, err := renderPieceImage(c, 48)
		if err != nil {
			t.Fatalf("renderPieceImage(%s): %v", c, err)
		}
		_, _, _, a := img.At(24, 20).RGBA()
		if a == 0 {
			t.Fatalf("%s piece center is transparent", c)
		}
	}
}

func TestBlendPixelOpaque(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	blendPixel(img, 0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("opaque blend = %v", got)
	}
	blendPixel(img, 5, 5, color.Black)
}
