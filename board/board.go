// Package board holds the chess position: a stack of value-copied snapshots
// with incrementally maintained bitboards, zobrist keys and check/pin info,
// plus the legal move generator that runs on top of it.
package board

import (
	"errors"

	"chess-core/attacks"
	bb "chess-core/bitboard"
)

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidMove   = errors.New("invalid move")
	ErrMoveNotFound  = errors.New("move not found")
	ErrAmbiguousMove = errors.New("ambiguous move")
)

// MaxPly is the depth of the snapshot stack, counting the root.
const MaxPly = 1024

// State is one snapshot of the position. MakeMove copies the top State and
// edits the copy, so UnmakeMove is a pop.
type State struct {
	pieces  [64]Piece
	byType  [King + 1]bb.Bitboard
	byColor [2]bb.Bitboard

	side          Color
	castling      CastlingRights
	ep            bb.Square
	halfmove      int
	fullmove      int
	pliesFromNull int

	key        uint64
	pawnKey    uint64
	nonPawnKey [2]uint64

	checkers bb.Bitboard
	pinned   [2]bb.Bitboard // pieces of each side pinned to their own king
	pinners  [2]bb.Bitboard // sliders of each side pinning an enemy piece
	threats  bb.Bitboard    // squares attacked by the side not to move

	move     Move  // move that produced this snapshot
	captured Piece // piece it captured
}

// Board is a position with its history. A Board is not safe for concurrent
// use; give each goroutine its own Clone.
type Board struct {
	tab   *attacks.Tables
	top   int
	stack [MaxPly]State
}

func (b *Board) st() *State { return &b.stack[b.top] }

func (b *Board) push() *State {
	if b.top+1 >= MaxPly {
		panic("board: snapshot stack overflow")
	}
	b.stack[b.top+1] = b.stack[b.top]
	b.top++
	return &b.stack[b.top]
}

func (b *Board) pop() {
	if b.top == 0 {
		panic("board: unmake without a matching make")
	}
	b.top--
}

// Clone returns an independent copy sharing only the read-only attack tables.
func (b *Board) Clone() *Board {
	c := &Board{tab: b.tab, top: b.top}
	copy(c.stack[:b.top+1], b.stack[:b.top+1])
	return c
}

// Tables exposes the attack tables the board was built with.
func (b *Board) Tables() *attacks.Tables { return b.tab }

// Ply returns how many moves (including null moves) are on the stack.
func (b *Board) Ply() int { return b.top }

func (b *Board) PieceAt(sq bb.Square) Piece { return b.stack[b.top].pieces[sq] }

// Pieces returns the bitboard of c's pieces of type pt.
func (b *Board) Pieces(c Color, pt PieceType) bb.Bitboard { return b.st().of(c, pt) }

// PiecesOfType returns the pieces of type pt for both sides.
func (b *Board) PiecesOfType(pt PieceType) bb.Bitboard { return b.st().byType[pt] }

func (b *Board) Occupancy(c Color) bb.Bitboard { return b.st().byColor[c] }
func (b *Board) All() bb.Bitboard              { return b.st().occupied() }

func (b *Board) SideToMove() Color              { return b.st().side }
func (b *Board) CastlingRights() CastlingRights { return b.st().castling }

// EnPassant returns the en-passant target square, or NoSquare. It is only
// set when a pawn of the side to move attacks it.
func (b *Board) EnPassant() bb.Square { return b.st().ep }

func (b *Board) HalfmoveClock() int  { return b.st().halfmove }
func (b *Board) FullmoveNumber() int { return b.st().fullmove }
func (b *Board) PliesFromNull() int  { return b.st().pliesFromNull }

// Checkers returns the enemy pieces giving check to the side to move.
func (b *Board) Checkers() bb.Bitboard { return b.st().checkers }

// Pinned returns c's pieces that are pinned to c's king.
func (b *Board) Pinned(c Color) bb.Bitboard { return b.st().pinned[c] }

// Pinners returns c's sliders that pin an enemy piece to the enemy king.
func (b *Board) Pinners(c Color) bb.Bitboard { return b.st().pinners[c] }

// Threats returns the squares attacked by the side not to move, computed with
// the mover's king lifted off the board.
func (b *Board) Threats() bb.Bitboard { return b.st().threats }

func (b *Board) Hash() uint64     { return b.st().key }
func (b *Board) PawnHash() uint64 { return b.st().pawnKey }

// NonPawnHash covers c's pieces other than pawns, king included.
func (b *Board) NonPawnHash(c Color) uint64 { return b.st().nonPawnKey[c] }

// LastMove returns the move that led to the current position, or NullMove.
func (b *Board) LastMove() Move { return b.st().move }

// Captured returns the piece taken by the last move, or NoPiece.
func (b *Board) Captured() Piece { return b.st().captured }

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) bb.Square { return b.st().kingSquare(c) }

// The helpers below keep bitboards and keys in step with the square array.

func (s *State) addPiece(sq bb.Square, p Piece) {
	bit := sq.Bitboard()
	s.pieces[sq] = p
	s.byType[p.Type()] |= bit
	s.byColor[p.Color()] |= bit
	s.hashPiece(p, sq)
}

func (s *State) removePiece(sq bb.Square) Piece {
	p := s.pieces[sq]
	bit := sq.Bitboard()
	s.pieces[sq] = NoPiece
	s.byType[p.Type()] &^= bit
	s.byColor[p.Color()] &^= bit
	s.hashPiece(p, sq)
	return p
}

func (s *State) movePiece(from, to bb.Square) {
	p := s.pieces[from]
	mask := from.Bitboard() | to.Bitboard()
	s.pieces[from] = NoPiece
	s.pieces[to] = p
	s.byType[p.Type()] ^= mask
	s.byColor[p.Color()] ^= mask
	s.hashPiece(p, from)
	s.hashPiece(p, to)
}

func (s *State) hashPiece(p Piece, sq bb.Square) {
	k := zobristPiece[p][sq]
	s.key ^= k
	if p.Type() == Pawn {
		s.pawnKey ^= k
	} else {
		s.nonPawnKey[p.Color()] ^= k
	}
}

func (s *State) occupied() bb.Bitboard { return s.byColor[White] | s.byColor[Black] }

func (s *State) of(c Color, pt PieceType) bb.Bitboard { return s.byType[pt] & s.byColor[c] }

func (s *State) kingSquare(c Color) bb.Square { return s.of(c, King).LSB() }
