package engine_test

import (
	"context"
	"testing"

	"github.com/rqnsom/chessturn/pkg/chess"
	"github.com/rqnsom/chessturn/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameDefaultsToNormalSetup(t *testing.T) {
	ctx := context.Background()

	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)
	assert.Equal(t, chess.GameState{Kind: chess.Ongoing}, g.GameState())
	assert.Len(t, g.AvailableTurns(), 20, "White's 20 opening moves")
}

func TestNewGameRejectsInvalidCustomSetup(t *testing.T) {
	ctx := context.Background()

	_, err := engine.NewGame(ctx, chess.CustomSetup("e1,w,K"))
	assert.Error(t, err)
}

func TestGamePlayAndUndoTurn(t *testing.T) {
	ctx := context.Background()
	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)

	state, err := g.PlayTurn(ctx, "e4")
	require.NoError(t, err)
	assert.Equal(t, chess.Ongoing, state.Kind)

	last, ok := g.LastTurn()
	require.True(t, ok)
	assert.Equal(t, "e4", last)

	require.NoError(t, g.UndoTurn(ctx))
	_, ok = g.LastTurn()
	assert.False(t, ok, "history empty after undoing the only turn")

	assert.ErrorIs(t, g.UndoTurn(ctx), chess.ErrUndoNotAvailable)
}

func TestGamePlayTurnRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)

	_, err = g.PlayTurn(ctx, "Nf6")
	assert.Error(t, err, "no white knight can reach f6 from the starting position")
}

func TestGameReachesVictoryAndAvailableTurnsEmpties(t *testing.T) {
	ctx := context.Background()
	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)

	for _, san := range []string{"f3", "e5", "g4", "Qh4#"} {
		_, err := g.PlayTurn(ctx, san)
		require.NoError(t, err, san)
	}

	state := g.GameState()
	assert.Equal(t, chess.Victory, state.Kind)
	assert.Equal(t, chess.Black, state.Winner)
	assert.Empty(t, g.AvailableTurns(), "no turns available once the game is over")

	_, err = g.PlayTurn(ctx, "a4")
	var target *chess.TurnError
	assert.ErrorAs(t, err, &target)
}

func TestGameDetectsStalemate(t *testing.T) {
	ctx := context.Background()
	// Black's king on h8 is boxed in by the queen on g6 (covering g7, g8,
	// h7) without being in check itself. A harmless White king shuffle
	// hands the move to Black without disturbing that pattern.
	g, err := engine.NewGame(ctx, chess.CustomSetup("h8,b,K g6,w,Q b1,w,K"))
	require.NoError(t, err)

	state, err := g.PlayTurn(ctx, "Ka1")
	require.NoError(t, err)
	assert.Equal(t, chess.Stalemate, state.Kind)
	assert.Empty(t, g.AvailableTurns())
}

func TestGameHasCastled(t *testing.T) {
	ctx := context.Background()
	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)

	assert.False(t, g.HasCastled(chess.White))

	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "O-O"} {
		_, err := g.PlayTurn(ctx, san)
		require.NoError(t, err, san)
	}
	assert.True(t, g.HasCastled(chess.White))
	assert.False(t, g.HasCastled(chess.Black))

	require.NoError(t, g.UndoTurn(ctx))
	assert.False(t, g.HasCastled(chess.White), "undoing the castling turn revokes the record")
}

func TestGameFullMoves(t *testing.T) {
	ctx := context.Background()
	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)

	assert.Equal(t, 1, g.FullMoves())
	_, err = g.PlayTurn(ctx, "e4")
	require.NoError(t, err)
	assert.Equal(t, 1, g.FullMoves())
	_, err = g.PlayTurn(ctx, "e5")
	require.NoError(t, err)
	assert.Equal(t, 2, g.FullMoves())
}

func TestGameDisplayBoardView(t *testing.T) {
	ctx := context.Background()
	g, err := engine.NewGame(ctx, chess.NormalSetup())
	require.NoError(t, err)

	board := g.Display(chess.DisplayOption{Kind: chess.BoardView, Mode: chess.SimpleAscii})
	assert.Contains(t, board, "wK")
	assert.Contains(t, board, "bK")
}
