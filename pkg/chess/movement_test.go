package chess_test

import (
	"testing"

	"github.com/rqnsom/chessturn/pkg/chess"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
)

func sq(s string) chess.Square {
	q, err := chess.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return q
}

func TestReachableFromRookStopsAtFirstOccupant(t *testing.T) {
	b := newGame(t)

	dsts := chess.ReachableFrom(b.Map(), sq("a1"), chess.White, chess.MoveRook)
	assert.Empty(t, dsts, "rook boxed in by its own pawn and knight at the start")
}

func TestReachableFromKnightJumpsOverOccupants(t *testing.T) {
	b := newGame(t)

	dsts := chess.ReachableFrom(b.Map(), sq("b1"), chess.White, chess.MoveKnight)
	assert.ElementsMatch(t, []chess.Square{sq("a3"), sq("c3")}, dsts)
}

func TestReachableFromExcludesEnemyKing(t *testing.T) {
	zt := chess.NewHashTable(0)
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a1,w,K d4,w,Q h8,b,K"))
	if err != nil {
		t.Fatal(err)
	}

	dsts := chess.ReachableFrom(b.Map(), sq("d4"), chess.White, chess.MoveQueen)
	assert.Contains(t, dsts, sq("g7"), "the queen still owns every empty square up to the king")
	assert.NotContains(t, dsts, sq("h8"), "queen must never list the enemy king's square as a capture candidate")
}

func TestCouldReachIsInverseOfReachableFrom(t *testing.T) {
	b := newGame(t)

	// No white bishop can reach c4 pre-game (blocked by pawns); after
	// opening e4, the inverse view for a bishop move to c4 should name f1.
	_, err := chess.PlayTurn(b, "e4")
	if err != nil {
		t.Fatal(err)
	}

	candidates := chess.CouldReach(b.Map(), sq("c4"), chess.White, chess.MoveBishop)
	assert.Equal(t, []chess.Square{sq("f1")}, candidates)
}

// TestPawnTwoSquareAdvanceBackwardOrientation pins the open question from
// spec.md §9: CouldReach's Backward pawn-normal query compares the
// destination's rank against twoSquareRank (rank 4 for White, rank 5 for
// Black), which is the landing rank of a two-square advance, not the
// starting rank. This is correct precisely because the query runs
// post-move, from the destination looking back.
func TestPawnTwoSquareAdvanceBackwardOrientation(t *testing.T) {
	zt := chess.NewHashTable(0)
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("e2,w,P e1,w,K a8,b,K"))
	if err != nil {
		t.Fatal(err)
	}

	candidates := chess.CouldReach(b.Map(), sq("e4"), chess.White, chess.MovePawnNormal)
	assert.Equal(t, []chess.Square{sq("e2")}, candidates, "a pawn on e2 can reach e4 via a two-square advance")

	bBlack, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("e7,b,P e8,b,K a1,w,K"))
	if err != nil {
		t.Fatal(err)
	}
	candidates = chess.CouldReach(bBlack.Map(), sq("e5"), chess.Black, chess.MovePawnNormal)
	assert.Equal(t, []chess.Square{sq("e7")}, candidates, "a pawn on e7 can reach e5 via a two-square advance")
}

func TestResolveSourceDisambiguation(t *testing.T) {
	candidates := []chess.Square{sq("a1"), sq("h1")}

	_, ok := chess.ResolveSource(candidates, chess.SourceHint{})
	assert.False(t, ok, "ambiguous without a hint")

	hint := chess.SourceHint{File: lang.Some(chess.FileA)}
	src, ok := chess.ResolveSource(candidates, hint)
	assert.True(t, ok)
	assert.Equal(t, sq("a1"), src)

	hint = chess.SourceHint{File: lang.Some(chess.FileD)}
	_, ok = chess.ResolveSource(candidates, hint)
	assert.False(t, ok, "neither candidate sits on the d-file")
}
