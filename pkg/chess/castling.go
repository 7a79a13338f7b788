package chess

import "strings"

// CastlingRights represents the set of four castling rights, packed as a bitfield. 4 bits.
type CastlingRights uint8

const (
	WhiteShort CastlingRights = 1 << iota
	WhiteLong
	BlackShort
	BlackLong
)

const FullCastlingRights = WhiteShort | WhiteLong | BlackShort | BlackLong

// ShortRight returns the kingside right for the given side.
func ShortRight(s Side) CastlingRights {
	if s == White {
		return WhiteShort
	}
	return BlackShort
}

// LongRight returns the queenside right for the given side.
func LongRight(s Side) CastlingRights {
	if s == White {
		return WhiteLong
	}
	return BlackLong
}

// BothRights returns both rights for the given side.
func BothRights(s Side) CastlingRights {
	return ShortRight(s) | LongRight(s)
}

// Has returns true iff all of the given rights are held.
func (c CastlingRights) Has(right CastlingRights) bool {
	return c&right == right
}

// Remove drops the given rights, returning the narrowed set. Rights may only shrink
// during play; this helper never adds bits.
func (c CastlingRights) Remove(right CastlingRights) CastlingRights {
	return c &^ right
}

func (c CastlingRights) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.Has(WhiteShort) {
		sb.WriteString("K")
	}
	if c.Has(WhiteLong) {
		sb.WriteString("Q")
	}
	if c.Has(BlackShort) {
		sb.WriteString("k")
	}
	if c.Has(BlackLong) {
		sb.WriteString("q")
	}
	return sb.String()
}
