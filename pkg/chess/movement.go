package chess

import "github.com/seekerror/stdlib/pkg/lang"

// PieceMove identifies one of the seven movement patterns used throughout
// legality checking: the five piece kinds that move the same way regardless
// of direction, plus the two direction-sensitive pawn patterns.
type PieceMove uint8

const (
	MoveKing PieceMove = iota
	MoveQueen
	MoveRook
	MoveBishop
	MoveKnight
	MovePawnNormal
	MovePawnCapture
)

type direction struct{ dx, dy int }

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []direction{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}
)

// forwardDelta is the rank delta a pawn advances for the given side.
func forwardDelta(side Side) int {
	if side == White {
		return 1
	}
	return -1
}

func startRank(side Side) Rank {
	if side == White {
		return Rank2
	}
	return Rank7
}

// twoSquareRank is the rank a two-square pawn advance lands on: rank 4 for
// White, rank 5 for Black. See the design note on the backward-direction
// check: it compares against this fixed rank rather than re-deriving "two
// squares behind", which is the orientation the original engine relies on.
func twoSquareRank(side Side) Rank {
	if side == White {
		return Rank4
	}
	return Rank5
}

// ReachableFrom returns every destination square a piece of the given kind,
// belonging to side, could move to from src. Sliding pieces stop at the
// first occupied square; an enemy piece there is included as a capture
// candidate unless it is the enemy king, which can never be captured.
func ReachableFrom(m *BoardMap, src Square, side Side, pm PieceMove) []Square {
	switch pm {
	case MoveKing:
		return rayReachable(m, src, side, kingDirs, false)
	case MoveQueen:
		return rayReachable(m, src, side, queenDirs, true)
	case MoveRook:
		return rayReachable(m, src, side, rookDirs, true)
	case MoveBishop:
		return rayReachable(m, src, side, bishopDirs, true)
	case MoveKnight:
		return rayReachable(m, src, side, knightDirs, false)
	case MovePawnNormal:
		return pawnNormalReachable(m, src, side)
	case MovePawnCapture:
		return pawnCaptureReachable(src, side)
	default:
		return nil
	}
}

// CouldReach returns every square from which a piece of the given kind,
// belonging to side, could legally arrive at dst. This is the inverse view
// of ReachableFrom: for king/queen/rook/bishop/knight it walks the same rays
// outward from dst and keeps only squares holding a matching friendly piece.
func CouldReach(m *BoardMap, dst Square, side Side, pm PieceMove) []Square {
	switch pm {
	case MoveKing:
		return rayCouldReach(m, dst, side, kingDirs, false, King)
	case MoveQueen:
		return rayCouldReach(m, dst, side, queenDirs, true, Queen)
	case MoveRook:
		return rayCouldReach(m, dst, side, rookDirs, true, Rook)
	case MoveBishop:
		return rayCouldReach(m, dst, side, bishopDirs, true, Bishop)
	case MoveKnight:
		return rayCouldReach(m, dst, side, knightDirs, false, Knight)
	case MovePawnNormal:
		return pawnNormalCouldReach(m, dst, side)
	case MovePawnCapture:
		return pawnCaptureCouldReach(m, dst, side)
	default:
		return nil
	}
}

func rayReachable(m *BoardMap, src Square, side Side, dirs []direction, sliding bool) []Square {
	var out []Square
	for _, d := range dirs {
		cur := src
		for {
			next, ok := cur.Neighbor(d.dx, d.dy)
			if !ok {
				break
			}
			cur = next

			cell, occ := m.Get(cur)
			if !occ {
				out = append(out, cur)
				if sliding {
					continue
				}
				break
			}
			if cell.Side != side && cell.Piece != King {
				out = append(out, cur)
			}
			break
		}
	}
	return out
}

// rayCouldReach walks the same rays outward from dst, looking for a friendly
// piece of the given kind that could have moved from there to dst.
func rayCouldReach(m *BoardMap, dst Square, side Side, dirs []direction, sliding bool, want Piece) []Square {
	var out []Square
	for _, d := range dirs {
		cur := dst
		for {
			next, ok := cur.Neighbor(d.dx, d.dy)
			if !ok {
				break
			}
			cur = next

			cell, occ := m.Get(cur)
			if !occ {
				if sliding {
					continue
				}
				break
			}
			if cell.Side == side && cell.Piece == want {
				out = append(out, cur)
			}
			break
		}
	}
	return out
}

func pawnNormalReachable(m *BoardMap, src Square, side Side) []Square {
	dr := forwardDelta(side)

	var out []Square
	one, ok := src.Neighbor(0, dr)
	if !ok {
		return nil
	}
	if _, occ := m.Get(one); occ {
		return nil
	}
	out = append(out, one)

	if src.Rank() == startRank(side) {
		two, ok := src.Neighbor(0, 2*dr)
		if ok {
			if _, occ := m.Get(two); !occ {
				out = append(out, two)
			}
		}
	}
	return out
}

func pawnCaptureReachable(src Square, side Side) []Square {
	dr := forwardDelta(side)

	var out []Square
	for _, dx := range [2]int{-1, 1} {
		if sq, ok := src.Neighbor(dx, dr); ok {
			out = append(out, sq)
		}
	}
	return out
}

func pawnNormalCouldReach(m *BoardMap, dst Square, side Side) []Square {
	dr := -forwardDelta(side)

	one, ok := dst.Neighbor(0, dr)
	if !ok {
		return nil
	}

	var out []Square
	if cell, occ := m.Get(one); occ {
		if cell.Side == side && cell.Piece == Pawn {
			out = append(out, one)
		}
		return out
	}

	if dst.Rank() == twoSquareRank(side) {
		two, ok := one.Neighbor(0, dr)
		if ok {
			if cell, occ := m.Get(two); occ && cell.Side == side && cell.Piece == Pawn {
				out = append(out, two)
			}
		}
	}
	return out
}

func pawnCaptureCouldReach(m *BoardMap, dst Square, side Side) []Square {
	dr := -forwardDelta(side)

	var out []Square
	for _, dx := range [2]int{-1, 1} {
		src, ok := dst.Neighbor(dx, dr)
		if !ok {
			continue
		}
		if cell, occ := m.Get(src); occ && cell.Side == side && cell.Piece == Pawn {
			out = append(out, src)
		}
	}
	return out
}

// SourceHint narrows a set of movement candidates by SAN disambiguator: an
// explicit file, rank, or both (a full square).
type SourceHint struct {
	File lang.Optional[File]
	Rank lang.Optional[Rank]
}

// ResolveSource narrows candidates by hint, requiring exactly one survivor.
func ResolveSource(candidates []Square, hint SourceHint) (Square, bool) {
	f, hasFile := hint.File.V()
	r, hasRank := hint.Rank.V()

	var filtered []Square
	for _, sq := range candidates {
		if hasFile && sq.File() != f {
			continue
		}
		if hasRank && sq.Rank() != r {
			continue
		}
		filtered = append(filtered, sq)
	}

	if len(filtered) != 1 {
		return 0, false
	}
	return filtered[0], true
}
