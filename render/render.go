// Package render draws positions and bitboards as SVG diagrams.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	bb "chess-core/bitboard"
	"chess-core/board"
)

const (
	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	defaultTint   = "#e63946"
	defaultSquare = 48
)

// Options controls the diagram. The zero value draws a 384px board from
// White's side without overlay.
type Options struct {
	SquareSize  int
	Highlight   bb.Bitboard // squares tinted with Color
	Color       string      // CSS colour of the tint
	Flip        bool        // Black at the bottom
	Coordinates bool        // file letters and rank digits along the edges
	Title       string
}

func (o *Options) defaults() {
	if o.SquareSize <= 0 {
		o.SquareSize = defaultSquare
	}
	if o.Color == "" {
		o.Color = defaultTint
	}
}

var glyphs = map[board.Piece]string{
	board.WhitePawn: "♙", board.WhiteKnight: "♘", board.WhiteBishop: "♗",
	board.WhiteRook: "♖", board.WhiteQueen: "♕", board.WhiteKing: "♔",
	board.BlackPawn: "♟", board.BlackKnight: "♞", board.BlackBishop: "♝",
	board.BlackRook: "♜", board.BlackQueen: "♛", board.BlackKing: "♚",
}

// errWriter remembers the first write error so svgo's unchecked writes can be reported.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// origin returns the top-left pixel of sq.
func origin(sq bb.Square, size int, flip bool) (x, y int) {
	file, rank := sq.File(), 7-sq.Rank()
	if flip {
		file, rank = 7-sq.File(), sq.Rank()
	}
	return file * size, rank * size
}

// Board writes an SVG diagram of the current position of b.
func Board(w io.Writer, b *board.Board, opt Options) error {
	return draw(w, opt, func(canvas *svg.SVG, size int) {
		for sq := bb.A1; sq <= bb.H8; sq++ {
			p := b.PieceAt(sq)
			if p == board.NoPiece {
				continue
			}
			x, y := origin(sq, size, opt.Flip)
			canvas.Text(x+size/2, y+size*4/5, glyphs[p],
				fmt.Sprintf("text-anchor:middle;font-size:%dpx", size*4/5))
		}
	})
}

// Bitboard writes an empty board with the squares of set tinted.
// opt.Highlight is ignored.
func Bitboard(w io.Writer, set bb.Bitboard, opt Options) error {
	opt.Highlight = set
	return draw(w, opt, nil)
}

func draw(w io.Writer, opt Options, pieces func(*svg.SVG, int)) error {
	opt.defaults()
	size := opt.SquareSize
	margin := 0
	if opt.Coordinates {
		margin = size / 2
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(8*size+margin, 8*size+margin)
	if opt.Title != "" {
		canvas.Title(opt.Title)
	}
	canvas.Translate(margin, 0)
	for sq := bb.A1; sq <= bb.H8; sq++ {
		x, y := origin(sq, size, opt.Flip)
		fill := lightFill
		if (sq.File()+sq.Rank())%2 == 0 {
			fill = darkFill
		}
		canvas.Rect(x, y, size, size, fill)
	}
	for set := opt.Highlight; set != 0; {
		x, y := origin(set.PopLSB(), size, opt.Flip)
		canvas.Rect(x, y, size, size, "fill:"+opt.Color+";fill-opacity:0.45")
	}
	if pieces != nil {
		pieces(canvas, size)
	}
	canvas.Gend()

	if opt.Coordinates {
		style := fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:#444", size/3)
		for i := 0; i < 8; i++ {
			file, rank := i, 7-i
			if opt.Flip {
				file, rank = 7-i, i
			}
			canvas.Text(margin+i*size+size/2, 8*size+margin*2/3, string(rune('a'+file)), style)
			canvas.Text(margin/2, i*size+size*3/5, string(rune('1'+rank)), style)
		}
	}
	canvas.End()
	return ew.err
}
