package chess

import "math/rand"

// PositionHash is a position hash over (side-to-move, board map, en-passant,
// castling rights). It deliberately excludes the fifty-move counter:
// repetitions depend only on position, not on ply.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type PositionHash uint64

// HashTable is a pseudo-randomized table for computing a position hash.
type HashTable struct {
	pieces    [NumSides][NumPieces][NumSquares]PositionHash
	castling  [FullCastlingRights + 1]PositionHash
	enpassant [NumSquares]PositionHash
	turn      [NumSides]PositionHash
}

// NewHashTable builds a table from the given seed. Any stable hash suffices;
// collisions are tolerable because the consequence is a false early draw,
// which tests would catch.
func NewHashTable(seed int64) *HashTable {
	z := &HashTable{}
	r := rand.New(rand.NewSource(seed))

	for s := Side(0); s < NumSides; s++ {
		for p := Piece(0); p < NumPieces; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				z.pieces[s][p][sq] = PositionHash(r.Uint64())
			}
		}
		z.turn[s] = PositionHash(r.Uint64())
	}
	for c := range z.castling {
		z.castling[c] = PositionHash(r.Uint64())
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		z.enpassant[sq] = PositionHash(r.Uint64())
	}
	return z
}

// Hash computes the position hash for the board's current state.
func (z *HashTable) Hash(b *Board) PositionHash {
	var hash PositionHash

	b.Map().Each(func(sq Square, c Cell) {
		hash ^= z.pieces[c.Side][c.Piece][sq]
	})
	hash ^= z.castling[b.Castling()]
	if ep, ok := b.EnPassant(); ok {
		hash ^= z.enpassant[ep.CapturePos]
	}
	hash ^= z.turn[b.Active()]

	return hash
}
