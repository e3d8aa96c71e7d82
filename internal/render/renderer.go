package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"
	"strings"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options decorates a board image. The zero value draws a bare board.
type Options struct {
	Header       string
	Turn         string
	Selected     *checkers.Square
	Destinations []checkers.Square
	LastFrom     *checkers.Square
	LastTo       *checkers.Square
	HideNumbers  bool
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, grid checkers.Grid, opts Options) ([]byte, error)
}

type pngRenderer struct {
	squareSize int
}

func NewBoardRenderer() BoardRenderer {
	return &pngRenderer{squareSize: 64}
}

const (
	sideMargin   = 24
	topMargin    = 76
	bottomMargin = 24
	panelHeight  = 40
	panelRadius  = 10
)

var (
	lightSquare      = color.RGBA{240, 217, 181, 255}
	darkSquare       = color.RGBA{118, 150, 86, 255}
	backgroundColor  = color.RGBA{22, 25, 37, 255}
	hudPanelColor    = color.NRGBA{R: 32, G: 35, B: 52, A: 245}
	hudTextColor     = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	numberTextColor  = color.NRGBA{R: 226, G: 236, B: 210, A: 200}
	selectedFill     = color.NRGBA{R: 255, G: 228, B: 120, A: 150}
	lastMoveFill     = color.NRGBA{R: 148, G: 207, B: 255, A: 110}
	destinationColor = color.NRGBA{R: 20, G: 20, B: 20, A: 110}
)

func (r *pngRenderer) RenderPNG(ctx context.Context, grid checkers.Grid, opts Options) ([]byte, error) {
	sq := r.squareSize
	boardSize := sq * checkers.BoardSize
	origin := image.Point{X: sideMargin, Y: topMargin}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, boardSize+sideMargin*2, boardSize+topMargin+bottomMargin))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	drawHUD(img, opts, image.Rect(origin.X, origin.Y, origin.X+boardSize, origin.Y+boardSize))
	drawSquares(img, sq, origin)
	if opts.LastFrom != nil {
		drawSquareOverlay(img, *opts.LastFrom, sq, origin, lastMoveFill)
	}
	if opts.LastTo != nil {
		drawSquareOverlay(img, *opts.LastTo, sq, origin, lastMoveFill)
	}
	if opts.Selected != nil {
		drawSquareOverlay(img, *opts.Selected, sq, origin, selectedFill)
	}
	if !opts.HideNumbers {
		drawSquareNumbers(img, sq, origin)
	}
	if err := drawPieces(img, grid, sq, origin); err != nil {
		return nil, err
	}
	for _, d := range opts.Destinations {
		rect := squareRect(d, sq, origin)
		center := image.Pt(rect.Min.X+sq/2, rect.Min.Y+sq/2)
		drawDisc(img, center, sq/7, destinationColor)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSquares(dst imagedraw.Image, squareSize int, origin image.Point) {
	for row := 0; row < checkers.BoardSize; row++ {
		for col := 0; col < checkers.BoardSize; col++ {
			clr := lightSquare
			if (checkers.Square{Row: row, Col: col}).Playable() {
				clr = darkSquare
			}
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			imagedraw.Draw(dst, image.Rect(x, y, x+squareSize, y+squareSize), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, grid checkers.Grid, squareSize int, origin image.Point) error {
	for row := range grid {
		for col, p := range grid[row] {
			if p.ID == checkers.NoPiece {
				continue
			}
			img, err := renderPieceImage(p.Color, squareSize)
			if err != nil {
				return err
			}
			rect := squareRect(checkers.Square{Row: row, Col: col}, squareSize, origin)
			imagedraw.Draw(dst, rect, img, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

// drawSquareNumbers writes the draughts number in the corner of each playable square.
func drawSquareNumbers(dst imagedraw.Image, squareSize int, origin image.Point) {
	drawer := &font.Drawer{Dst: dst, Face: basicfont.Face7x13, Src: image.NewUniform(numberTextColor)}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	for n := 1; n <= 32; n++ {
		sq, _ := checkers.SquareFromNumber(n)
		rect := squareRect(sq, squareSize, origin)
		drawer.Dot = fixed.P(rect.Min.X+3, rect.Min.Y+ascent+1)
		drawer.DrawString(strconv.Itoa(n))
	}
}

func drawHUD(img *image.RGBA, opts Options, boardRect image.Rectangle) {
	title := strings.TrimSpace(opts.Header)
	turn := strings.TrimSpace(opts.Turn)
	if title == "" && turn == "" {
		return
	}
	panel := image.Rect(boardRect.Min.X, boardRect.Min.Y-panelHeight-18, boardRect.Max.X, boardRect.Min.Y-18)
	drawRoundedPanel(img, panel, panelRadius, hudPanelColor)

	drawer := &font.Drawer{Dst: img, Face: basicfont.Face7x13, Src: image.NewUniform(hudTextColor)}
	metrics := basicfont.Face7x13.Metrics()
	baseline := panel.Min.Y + (panel.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	if title != "" {
		drawer.Dot = fixed.P(panel.Min.X+14, baseline)
		drawer.DrawString(title)
	}
	if turn != "" {
		w := drawer.MeasureString(turn).Round()
		drawer.Dot = fixed.P(panel.Max.X-14-w, baseline)
		drawer.DrawString(turn)
	}
}

func drawSquareOverlay(img *image.RGBA, sq checkers.Square, squareSize int, origin image.Point, clr color.Color) {
	if !sq.InBounds() {
		return
	}
	imagedraw.Draw(img, squareRect(sq, squareSize, origin), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func squareRect(sq checkers.Square, squareSize int, origin image.Point) image.Rectangle {
	x := origin.X + sq.Col*squareSize
	y := origin.Y + sq.Row*squareSize
	return image.Rect(x, y, x+squareSize, y+squareSize)
}
