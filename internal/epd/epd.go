// Package epd reads perft suites written one position per line:
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
//
// Files compressed with zstd are decompressed transparently.
package epd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/slices"
)

var ErrMalformed = errors.New("epd: malformed line")

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Expect is one depth/node-count pair of an entry.
type Expect struct {
	Depth int
	Nodes uint64
}

// Entry is a position with its expected perft counts, sorted by depth.
type Entry struct {
	Line    int
	FEN     string
	Expects []Expect
}

// MaxDepth returns the deepest depth listed for the entry.
func (e Entry) MaxDepth() int {
	if len(e.Expects) == 0 {
		return 0
	}
	return e.Expects[len(e.Expects)-1].Depth
}

// Open reads a suite file, decompressing it when it starts with the zstd magic.
func Open(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a suite from r, which may be zstd-compressed.
func Read(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("epd: %w", err)
		}
		defer dec.Close()
		return parse(dec)
	}
	return parse(br)
}

func parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		e.Line = lineNo
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("epd: %w", err)
	}
	return entries, nil
}

// ParseLine parses a single "FEN ;D1 n ;D2 m" line. The FEN itself is not
// validated here.
func ParseLine(line string) (Entry, error) {
	parts := strings.Split(line, ";")
	e := Entry{FEN: strings.TrimSpace(parts[0])}
	if e.FEN == "" {
		return e, fmt.Errorf("%w: no position", ErrMalformed)
	}
	seen := make(map[int]bool)
	for _, p := range parts[1:] {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 || len(fields[0]) < 2 || fields[0][0] != 'D' {
			return e, fmt.Errorf("%w: bad operation %q", ErrMalformed, strings.TrimSpace(p))
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil || depth < 1 {
			return e, fmt.Errorf("%w: bad depth %q", ErrMalformed, fields[0])
		}
		nodes, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return e, fmt.Errorf("%w: bad node count %q", ErrMalformed, fields[1])
		}
		if seen[depth] {
			return e, fmt.Errorf("%w: depth %d listed twice", ErrMalformed, depth)
		}
		seen[depth] = true
		e.Expects = append(e.Expects, Expect{Depth: depth, Nodes: nodes})
	}
	slices.SortFunc(e.Expects, func(a, b Expect) bool { return a.Depth < b.Depth })
	return e, nil
}

// Write emits entries in the line format Read accepts.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(e.FEN)
		for _, x := range e.Expects {
			fmt.Fprintf(bw, " ;D%d %d", x.Depth, x.Nodes)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteCompressed is Write through a zstd encoder.
func WriteCompressed(w io.Writer, entries []Entry) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("epd: %w", err)
	}
	if err := Write(enc, entries); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
