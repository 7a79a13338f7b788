package chess

import "github.com/seekerror/stdlib/pkg/lang"

// AvailableTurn is the public shape of one legal turn: source, destination,
// the piece moving, what (if anything) it captures, and an opaque SAN
// getter. SAN may embed '+' or '#' spoilers, so it is deliberately not a
// plain field.
type AvailableTurn struct {
	Src      Square
	Dst      Square
	Piece    Piece
	Captured lang.Optional[Piece]

	san string
}

// SAN returns the canonical SAN string for this turn, including any
// check/checkmate annotation.
func (a AvailableTurn) SAN() string {
	return a.san
}
