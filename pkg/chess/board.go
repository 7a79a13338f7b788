package chess

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Board owns the pieces, king cache, castling rights, en-passant record,
// fifty-move counter, game state and position-hash multiset that make up a
// position. It does not own turn history; that belongs to the Game facade in
// pkg/engine, which drives this Board through play/undo. The legal-turn list
// is not cached anywhere: the facade enumerates it on each request.
//
// This mirrors the teacher's Board in API spirit (a facade mutated via
// push/pop-style operations, backed by a Zobrist table and a repetition
// count), but the internals are an in-place, mutable board with explicit
// speculative-mutation-and-rollback rather than the teacher's persistent
// linked-list history: the spec requires byte-identical in-place undo, which
// a dense array board map can give cheaply and a bitboard position tree
// cannot without reintroducing the array.
type Board struct {
	zt *HashTable

	m    *BoardMap
	king [NumSides]Square

	castling  CastlingRights
	enpassant lang.Optional[EnPassant]
	active    Side

	state      GameState
	noProgress uint

	hashes map[PositionHash]int
}

// NewBoard wraps an already-populated map and king cache into a fresh,
// Ongoing board with the given rights and side to move.
func NewBoard(zt *HashTable, m *BoardMap, king [NumSides]Square, castling CastlingRights, active Side) *Board {
	b := &Board{
		zt:       zt,
		m:        m,
		king:     king,
		castling: castling,
		active:   active,
		state:    GameState{Kind: Ongoing},
		hashes:   map[PositionHash]int{},
	}
	b.hashes[zt.Hash(b)] = 1
	return b
}

func (b *Board) Map() *BoardMap            { return b.m }
func (b *Board) Active() Side              { return b.active }
func (b *Board) King(side Side) Square     { return b.king[side] }
func (b *Board) Castling() CastlingRights  { return b.castling }
func (b *Board) State() GameState          { return b.state }
func (b *Board) NoProgress() uint          { return b.noProgress }
func (b *Board) Hash() PositionHash        { return b.zt.Hash(b) }
func (b *Board) RepetitionCount() int      { return b.hashes[b.Hash()] }

// EnPassant returns the current en-passant record, if one is active.
func (b *Board) EnPassant() (EnPassant, bool) {
	return b.enpassant.V()
}

func (b *Board) SetCastling(c CastlingRights)                  { b.castling = c }
func (b *Board) SetEnPassant(ep lang.Optional[EnPassant])       { b.enpassant = ep }
func (b *Board) ClearEnPassant()                                { b.enpassant = lang.Optional[EnPassant]{} }
func (b *Board) SetActive(s Side)                               { b.active = s }
func (b *Board) SetState(s GameState)                           { b.state = s }
func (b *Board) SetNoProgress(n uint)                           { b.noProgress = n }

// MovePiece relocates the piece at src to dst, updating the king cache if
// the king moved, and returns whatever was captured at dst (if anything).
func (b *Board) MovePiece(src, dst Square) (Cell, bool) {
	cell, _ := b.m.Remove(src)
	captured, had := b.m.Insert(dst, cell)
	if cell.Piece == King {
		b.king[cell.Side] = dst
	}
	return captured, had
}

// PlacePiece sets sq to c directly (used for setup and promotion), updating
// the king cache if a king is placed.
func (b *Board) PlacePiece(sq Square, c Cell) (Cell, bool) {
	if c.Piece == King {
		b.king[c.Side] = sq
	}
	return b.m.Insert(sq, c)
}

// RemovePiece clears sq, returning whatever was there.
func (b *Board) RemovePiece(sq Square) (Cell, bool) {
	return b.m.Remove(sq)
}

// PushHash records the board's current hash in the repetition multiset and
// returns the recorded hash (for later PopHash on undo).
func (b *Board) PushHash() PositionHash {
	h := b.zt.Hash(b)
	b.hashes[h]++
	return h
}

// PopHash reverses a prior PushHash.
func (b *Board) PopHash(h PositionHash) {
	b.hashes[h]--
	if b.hashes[h] <= 0 {
		delete(b.hashes, h)
	}
}

// HashCount returns how many times h is currently recorded in the
// repetition multiset.
func (b *Board) HashCount(h PositionHash) int {
	return b.hashes[h]
}

// InsufficientMatingMaterial reports true iff the remaining material can
// never deliver checkmate: K-v-K, K+B-v-K, or K+N-v-K.
func (b *Board) InsufficientMatingMaterial() bool {
	if b.m.Len() > 3 {
		return false
	}
	if b.m.Len() == 2 {
		return true // lone kings
	}

	// Exactly 3 pieces: the two kings plus one minor.
	ok := true
	b.m.Each(func(_ Square, c Cell) {
		if c.Piece != King && c.Piece != Bishop && c.Piece != Knight {
			ok = false
		}
	})
	return ok
}

func (b *Board) String() string {
	return fmt.Sprintf("{active=%v, castling=%v, state=%v, noProgress=%v}", b.active, b.castling, b.state, b.noProgress)
}
