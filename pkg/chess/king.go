package chess

// KingState classifies how safe a king is in its current position.
type KingState uint8

const (
	// Safe: the king's square is not attacked.
	Safe KingState = iota
	// Check: attacked, but the king has at least one safe escape square.
	Check
	// SoftCheckmate: attacked, no king escape exists. Still provisional — a
	// non-king piece may yet block or capture the attacker; confirming true
	// checkmate requires a full legal-reply scan.
	SoftCheckmate
)

func (s KingState) String() string {
	switch s {
	case Safe:
		return "safe"
	case Check:
		return "check"
	case SoftCheckmate:
		return "soft-checkmate"
	default:
		return "?"
	}
}

// attackPatterns is every pattern an attacker could use against a square.
var attackPatterns = []PieceMove{MoveQueen, MoveRook, MoveBishop, MoveKnight, MoveKing, MovePawnCapture}

// IsAttacked returns true iff sq is attacked by any piece of side by.
func IsAttacked(m *BoardMap, sq Square, by Side) bool {
	for _, pm := range attackPatterns {
		if len(CouldReach(m, sq, by, pm)) > 0 {
			return true
		}
	}
	return false
}

// IsSafe returns true iff sq is not attacked by side's opponent.
func IsSafe(m *BoardMap, sq Square, side Side) bool {
	return !IsAttacked(m, sq, side.Opponent())
}

// StateOf classifies the king belonging to side, currently on kingSq.
func StateOf(m *BoardMap, kingSq Square, side Side) KingState {
	if IsSafe(m, kingSq, side) {
		return Safe
	}
	if anySafeKingMove(m, kingSq, side) {
		return Check
	}
	return SoftCheckmate
}

// anySafeKingMove scans the king's own escape squares. The king is lifted
// off the board first so sliding attackers that were only blocked by the
// king itself are correctly counted against each candidate escape square.
func anySafeKingMove(m *BoardMap, kingSq Square, side Side) bool {
	cell, _ := m.Remove(kingSq)
	defer m.Insert(kingSq, cell)

	for _, dst := range ReachableFrom(m, kingSq, side, MoveKing) {
		if IsSafe(m, dst, side) {
			return true
		}
	}
	return false
}
