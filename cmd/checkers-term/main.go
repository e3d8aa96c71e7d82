package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/render"
)

func main() {
	pngPath := flag.String("png", "", "write the board as PNG to this path after every command")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()
	if *noColor {
		color.NoColor = true
	}

	t := &term{
		sess: checkers.NewGame(),
		out:  color.Output,
		png:  *pngPath,
	}
	if err := t.run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "checkers-term: %v\n", err)
		os.Exit(1)
	}
}

var (
	lightPiece = color.New(color.FgHiWhite, color.Bold)
	darkPiece  = color.New(color.FgRed, color.Bold)
	selected   = color.New(color.BgBlue)
	target     = color.New(color.FgGreen)
	warn       = color.New(color.FgYellow)
	notice     = color.New(color.FgCyan)
)

// term is a hot-seat game on one terminal.
type term struct {
	sess  *checkers.Session
	moves []string
	out   io.Writer
	png   string
}

func (t *term) run(in io.Reader) error {
	t.help()
	t.show()
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintf(t.out, "%s> ", t.sess.Turn())
		if !sc.Scan() {
			return sc.Err()
		}
		if quit := t.exec(strings.TrimSpace(sc.Text())); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the loop should stop.
func (t *term) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		t.help()
	case "board", "b":
		t.show()
	case "log":
		fmt.Fprintln(t.out, strings.Join(t.moves, " "))
	case "new":
		t.sess, t.moves = checkers.NewGame(), nil
		t.show()
	case "select", "s":
		if len(fields) < 2 {
			warn.Fprintln(t.out, "usage: select <square>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			warn.Fprintln(t.out, "not a square number:", fields[1])
			return false
		}
		sq, ok := checkers.SquareFromNumber(n)
		if !ok {
			warn.Fprintln(t.out, "square out of range:", n)
			return false
		}
		t.apply(t.sess.SelectAt(sq))
	case "clear", "c":
		t.apply(t.sess.ClearSelection())
	default:
		t.play(strings.Join(fields, ""))
	}
	return false
}

func (t *term) apply(next *checkers.Session, err error) {
	if err != nil {
		t.reject(err)
		return
	}
	t.sess = next
	t.show()
}

func (t *term) play(text string) {
	next, out, err := t.sess.Play(text)
	if err != nil {
		t.reject(err)
		return
	}
	t.sess = next
	t.moves = append(t.moves, checkers.FormatMove(out.Move))
	t.show()
	switch {
	case out.GameOver:
		notice.Fprintf(t.out, "%s wins. type 'new' to play again\n", out.Winner)
	case out.ChainContinues:
		notice.Fprintf(t.out, "%s must keep jumping\n", out.Mover)
	}
}

func (t *term) reject(err error) {
	if r := checkers.ReasonOf(err); r != "" {
		warn.Fprintf(t.out, "rejected: %s\n", strings.ReplaceAll(string(r), "_", " "))
		return
	}
	warn.Fprintln(t.out, err)
}

func (t *term) help() {
	fmt.Fprintln(t.out, "moves: 22-18, 15x22 or a bare destination after select")
	fmt.Fprintln(t.out, "commands: select <n>, clear, board, log, new, quit")
}

func (t *term) show() {
	fmt.Fprint(t.out, drawBoard(t.sess))
	light, dark := countPieces(t.sess.Grid())
	fmt.Fprintf(t.out, "light %d : %d dark  [%s]\n", light, dark, t.sess.State())
	if t.sess.MustCapture() && t.sess.State() == checkers.AwaitingSelection {
		warn.Fprintln(t.out, "a capture is available and must be taken")
	}
	if t.png != "" {
		if err := t.writePNG(); err != nil {
			warn.Fprintln(t.out, "png:", err)
		}
	}
}

func (t *term) writePNG() error {
	opts := render.Options{Header: "CHECKERS", Turn: string(t.sess.Turn())}
	if p, ok := t.sess.Selected(); ok {
		sq := p.Square
		opts.Selected = &sq
		opts.Destinations = t.sess.LegalDestinations()
	}
	png, err := render.NewBoardRenderer().RenderPNG(context.Background(), t.sess.Grid(), opts)
	if err != nil {
		return err
	}
	return os.WriteFile(t.png, png, 0o644)
}

// drawBoard prints the grid with square numbers on empty dark squares. Light men
// are "o", dark men are "x".
func drawBoard(s *checkers.Session) string {
	grid := s.Grid()
	var from *checkers.Square
	if p, ok := s.Selected(); ok {
		sq := p.Square
		from = &sq
	}
	dests := map[checkers.Square]bool{}
	for _, d := range s.LegalDestinations() {
		dests[d] = true
	}

	var sb strings.Builder
	for r := 0; r < checkers.BoardSize; r++ {
		for c := 0; c < checkers.BoardSize; c++ {
			sq := checkers.Square{Row: r, Col: c}
			sb.WriteString(cell(grid[r][c], sq, from, dests[sq]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cell(p checkers.Piece, sq checkers.Square, from *checkers.Square, dest bool) string {
	if !sq.Playable() {
		return "    "
	}
	var text string
	switch {
	case p.ID != checkers.NoPiece && p.Color == checkers.Light:
		text = lightPiece.Sprint("  o ")
	case p.ID != checkers.NoPiece:
		text = darkPiece.Sprint("  x ")
	case dest:
		n, _ := checkers.SquareNumber(sq)
		text = target.Sprintf(" *%2d", n)
	default:
		n, _ := checkers.SquareNumber(sq)
		text = fmt.Sprintf("  %2d", n)
	}
	if from != nil && *from == sq {
		return selected.Sprint(text)
	}
	return text
}

func countPieces(g checkers.Grid) (light, dark int) {
	for _, row := range g {
		for _, p := range row {
			switch {
			case p.ID == checkers.NoPiece:
			case p.Color == checkers.Light:
				light++
			default:
				dark++
			}
		}
	}
	return light, dark
}
