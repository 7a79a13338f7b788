package chess_test

import (
	"testing"

	"github.com/rqnsom/chessturn/pkg/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableTurnsEmptyOnStalemate(t *testing.T) {
	zt := chess.NewHashTable(0)
	// Classic stalemate: Black king boxed in on a8 by the White king and
	// queen, not in check, no legal reply.
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a8,b,K b6,w,K c7,w,Q"))
	require.NoError(t, err)
	b.SetActive(chess.Black)

	turns := chess.AvailableTurns(b)
	assert.Empty(t, turns)
	assert.False(t, chess.HasLegalReply(b, chess.Black))
	assert.Equal(t, chess.Safe, chess.StateOf(b.Map(), b.King(chess.Black), chess.Black))
}

func TestAvailableTurnsAgreeWithPlayTurn(t *testing.T) {
	b := newGame(t)
	playAll(t, b, "e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5")

	turns := chess.AvailableTurns(b)
	require.NotEmpty(t, turns)

	for _, turn := range turns {
		snap, err := chess.PlayTurn(b, turn.SAN())
		require.NoError(t, err, "enumerated SAN %q must play without error", turn.SAN())
		chess.UndoTurn(b, snap)
	}
}

func TestAvailableTurnsPromotionEmitsFourVariants(t *testing.T) {
	zt := chess.NewHashTable(0)
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("g7,w,P e1,w,K a8,b,K"))
	require.NoError(t, err)

	turns := chess.AvailableTurns(b)

	var promoSANs []string
	for _, turn := range turns {
		if turn.Piece == chess.Pawn && turn.Dst == chess.NewSquare(chess.FileG, chess.Rank8) {
			promoSANs = append(promoSANs, turn.SAN())
		}
	}
	// A queen or rook on g8 checks the a8 king along the back rank.
	assert.ElementsMatch(t, []string{"g8=Q+", "g8=R+", "g8=B", "g8=N"}, promoSANs)
}

func TestAvailableTurnsDisambiguatesByFile(t *testing.T) {
	zt := chess.NewHashTable(0)
	// Two white knights that can both reach d4: each is disambiguated by file
	// alone (b3 vs f3 share no file), giving the minimal "N<file>d4" form.
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("b3,w,N f3,w,N e1,w,K a8,b,K"))
	require.NoError(t, err)

	turns := chess.AvailableTurns(b)
	var sans []string
	for _, turn := range turns {
		if turn.Piece == chess.Knight && turn.Dst == chess.NewSquare(chess.FileD, chess.Rank4) {
			sans = append(sans, turn.SAN())
		}
	}
	assert.ElementsMatch(t, []string{"Nbd4", "Nfd4"}, sans)
}

func TestAvailableTurnsDisambiguatesByRankWhenFilesCollide(t *testing.T) {
	zt := chess.NewHashTable(0)
	// Two white rooks on the same file, both able to reach d5 along the
	// same file — file alone cannot disambiguate, so rank is used. The d8
	// rook checks the a8 king along the back rank, so the move that leaves
	// it there carries '+'.
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("d1,w,R d8,w,R e1,w,K a8,b,K"))
	require.NoError(t, err)

	turns := chess.AvailableTurns(b)
	var sans []string
	for _, turn := range turns {
		if turn.Piece == chess.Rook && turn.Dst == chess.NewSquare(chess.FileD, chess.Rank5) {
			sans = append(sans, turn.SAN())
		}
	}
	assert.ElementsMatch(t, []string{"R1d5+", "R8d5"}, sans)
}

func TestInsufficientMatingMaterial(t *testing.T) {
	zt := chess.NewHashTable(0)

	kk, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a1,w,K h8,b,K"))
	require.NoError(t, err)
	assert.True(t, kk.InsufficientMatingMaterial())

	kbk, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a1,w,K h8,b,K c3,w,B"))
	require.NoError(t, err)
	assert.True(t, kbk.InsufficientMatingMaterial())

	knk, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a1,w,K h8,b,K c3,w,N"))
	require.NoError(t, err)
	assert.True(t, knk.InsufficientMatingMaterial())

	krk, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a1,w,K h8,b,K c3,w,R"))
	require.NoError(t, err)
	assert.False(t, krk.InsufficientMatingMaterial(), "a lone rook can still deliver mate")
}

func TestFiftyMoveRule(t *testing.T) {
	zt := chess.NewHashTable(0)
	b, err := chess.NewBoardFromSetup(zt, chess.CustomSetup("a1,w,K h8,b,K a8,w,R"))
	require.NoError(t, err)

	// Fast-forward to one half-move short of the fifty-move threshold
	// without needing 98 played turns (and without tripping the
	// repetition counter on a bounded shuffle); the final two quiet king
	// moves exercise the real counter increment and draw classification.
	// The a8 rook checks the h8 king, so White's move carries '+'.
	b.SetNoProgress(98)

	_, err = chess.PlayTurn(b, "Kb1+")
	require.NoError(t, err)
	assert.Equal(t, chess.Ongoing, b.State().Kind)
	assert.Equal(t, uint(99), b.NoProgress())

	_, err = chess.PlayTurn(b, "Kg7")
	require.NoError(t, err)
	assert.Equal(t, chess.DrawFiftyMoveRule, b.State().Kind)
	assert.Equal(t, uint(100), b.NoProgress())
}
