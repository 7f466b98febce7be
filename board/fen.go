package board

import (
	"fmt"
	"strconv"
	"strings"

	"chess-core/attacks"
	bb "chess-core/bitboard"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// New returns a board set to the initial position.
func New() *Board { return MustParseFEN(StartFEN) }

// ParseFEN builds a board from a FEN string using the shared attack tables.
// The halfmove clock and fullmove number may be omitted.
func ParseFEN(fen string) (*Board, error) {
	return ParseFENWithTables(attacks.Default(), fen)
}

// ParseFENWithTables is ParseFEN with explicitly supplied tables.
func ParseFENWithTables(tab *attacks.Tables, fen string) (*Board, error) {
	b := &Board{tab: tab}
	if err := b.SetFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// MustParseFEN is ParseFEN for known-good input. It panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// SetFEN replaces the position and clears the history. On error the board is
// left untouched.
//
// Castling rights whose king or rook is off its home square are dropped, and
// the en-passant square is kept only when a pawn of the side to move attacks it.
func (b *Board) SetFEN(fen string) error {
	if b.tab == nil {
		b.tab = attacks.Default()
	}
	var s State
	if err := parseFEN(&s, fen); err != nil {
		return err
	}
	s.normalize(b.tab)
	s.key, s.pawnKey, s.nonPawnKey = s.computeKeys()
	if err := s.checkLegalPosition(b.tab); err != nil {
		return err
	}
	s.updateCheckInfo(b.tab)
	b.stack[0] = s
	b.top = 0
	return nil
}

func invalidFEN(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

func parseFEN(s *State, fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return invalidFEN("not enough fields")
	}
	if len(fields) > 6 {
		return invalidFEN("too many fields")
	}
	s.ep = bb.NoSquare

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return invalidFEN("incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return invalidFEN("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return invalidFEN("too many squares in rank %d", rank+1)
			}
			s.addPiece(bb.NewSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return invalidFEN("rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		s.side = White
	case "b":
		s.side = Black
	default:
		return invalidFEN("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				s.castling |= CastlingWhiteK
			case 'Q':
				s.castling |= CastlingWhiteQ
			case 'k':
				s.castling |= CastlingBlackK
			case 'q':
				s.castling |= CastlingBlackQ
			default:
				return invalidFEN("invalid castling rights character %q", fields[2][i])
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := bb.ParseSquare(fields[3])
		if err != nil {
			return invalidFEN("invalid en passant square %q", fields[3])
		}
		wantRank := 5
		if s.side == Black {
			wantRank = 2
		}
		if sq.Rank() != wantRank {
			return invalidFEN("en passant square %v on the wrong rank", sq)
		}
		s.ep = sq
	}

	// 5. Halfmove clock, 6. Fullmove number
	s.fullmove = 1
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return invalidFEN("halfmove clock %q is not a number", fields[4])
		}
		s.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 0 {
			return invalidFEN("fullmove number %q is not a number", fields[5])
		}
		if n > 0 {
			s.fullmove = n
		}
	}
	s.pliesFromNull = s.halfmove
	return nil
}

// normalize drops castling rights and en-passant squares that can never be used.
func (s *State) normalize(tab *attacks.Tables) {
	if s.pieces[bb.E1] != WhiteKing {
		s.castling &^= CastlingWhiteK | CastlingWhiteQ
	}
	if s.pieces[bb.H1] != WhiteRook {
		s.castling &^= CastlingWhiteK
	}
	if s.pieces[bb.A1] != WhiteRook {
		s.castling &^= CastlingWhiteQ
	}
	if s.pieces[bb.E8] != BlackKing {
		s.castling &^= CastlingBlackK | CastlingBlackQ
	}
	if s.pieces[bb.H8] != BlackRook {
		s.castling &^= CastlingBlackK
	}
	if s.pieces[bb.A8] != BlackRook {
		s.castling &^= CastlingBlackQ
	}

	if s.ep == bb.NoSquare {
		return
	}
	us, them := s.side, s.side.Other()
	// pushed holds the pawn that just moved two squares from origin.
	pushed, origin := s.ep-8, s.ep+8
	if us == Black {
		pushed, origin = s.ep+8, s.ep-8
	}
	ok := s.pieces[pushed] == NewPiece(them, Pawn) &&
		s.pieces[s.ep] == NoPiece && s.pieces[origin] == NoPiece &&
		tab.Pawn(int(them), s.ep)&s.of(us, Pawn) != 0
	if !ok {
		s.ep = bb.NoSquare
	}
}

func (s *State) checkLegalPosition(tab *attacks.Tables) error {
	for _, c := range []Color{White, Black} {
		if n := s.of(c, King).PopCount(); n != 1 {
			return invalidFEN("%v has %d kings", c, n)
		}
	}
	if s.byType[Pawn]&(bb.Rank1|bb.Rank8) != 0 {
		return invalidFEN("pawn on the first or last rank")
	}
	them := s.side.Other()
	if s.attackersTo(tab, s.kingSquare(them), s.occupied())&s.byColor[s.side] != 0 {
		return invalidFEN("side not to move is in check")
	}
	return nil
}

// FEN serializes the current position.
func (b *Board) FEN() string {
	s := b.st()
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := s.pieces[bb.NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if s.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(s.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(s.ep.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.fullmove))
	return sb.String()
}

// String renders the board as eight ranks of FEN letters followed by the FEN.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			p := b.PieceAt(bb.NewSquare(file, rank))
			if p == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.Char())
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(b.FEN())
	return sb.String()
}
