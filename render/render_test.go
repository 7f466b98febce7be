package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	bb "chess-core/bitboard"
	"chess-core/board"
)

func TestBoardDiagram(t *testing.T) {
	var buf bytes.Buffer
	if err := Board(&buf, board.New(), Options{Title: "start", Coordinates: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("got %d squares, want 64", n)
	}
	if strings.Count(out, "♙") != 8 || strings.Count(out, "♚") != 1 {
		t.Fatal("piece glyphs missing")
	}
	if !strings.Contains(out, "<title>start</title>") {
		t.Fatal("title missing")
	}
	// Eight pieces per side on the back ranks, plus 16 coordinate labels.
	if n := strings.Count(out, "<text"); n != 32+16 {
		t.Fatalf("got %d text elements, want 48", n)
	}
}

func TestBitboardOverlay(t *testing.T) {
	var buf bytes.Buffer
	set := bb.A1.Bitboard() | bb.H8.Bitboard() | bb.E4.Bitboard()
	if err := Bitboard(&buf, set, Options{SquareSize: 10, Color: "#00ff00"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "#00ff00"); n != 3 {
		t.Fatalf("got %d tinted squares, want 3", n)
	}
	// a1 sits in the bottom-left corner from White's side.
	if !strings.Contains(out, `<rect x="0" y="70" width="10" height="10" style="fill:#00ff00`) {
		t.Fatalf("a1 overlay misplaced:\n%s", out)
	}

	buf.Reset()
	if err := Bitboard(&buf, bb.A1.Bitboard(), Options{SquareSize: 10, Flip: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<rect x="70" y="0" width="10" height="10" style="fill:`+defaultTint) {
		t.Fatalf("flipped a1 overlay misplaced:\n%s", buf.String())
	}
}

type failWriter struct{}

var errDiskFull = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteErrorReported(t *testing.T) {
	if err := Board(failWriter{}, board.New(), Options{}); !errors.Is(err, errDiskFull) {
		t.Fatalf("got %v, want the writer's error", err)
	}
}
