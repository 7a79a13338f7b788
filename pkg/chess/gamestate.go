package chess

import "fmt"

// GameStateKind is the terminal-state sum variant for a game.
type GameStateKind uint8

const (
	Ongoing GameStateKind = iota
	Stalemate
	DrawInsufficientMatingMaterial
	DrawFiftyMoveRule
	DrawThreeFoldRepetition
	Victory
)

// GameState is the current or terminal state of a game. Winner is only
// meaningful when Kind == Victory.
type GameState struct {
	Kind   GameStateKind
	Winner Side
}

// IsTerminal returns true iff no further turns may be played.
func (g GameState) IsTerminal() bool {
	return g.Kind != Ongoing
}

func (g GameState) String() string {
	switch g.Kind {
	case Ongoing:
		return "ongoing"
	case Stalemate:
		return "stalemate"
	case DrawInsufficientMatingMaterial:
		return "draw (insufficient material)"
	case DrawFiftyMoveRule:
		return "draw (fifty-move rule)"
	case DrawThreeFoldRepetition:
		return "draw (threefold repetition)"
	case Victory:
		return fmt.Sprintf("victory (%v)", g.Winner)
	default:
		return "?"
	}
}
