package notation_test

import (
	"testing"

	"github.com/rqnsom/chessturn/pkg/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTurnSimplePawnMove(t *testing.T) {
	turn, err := notation.ParseTurn("e4")
	require.NoError(t, err)
	require.NotNil(t, turn.Move)
	assert.Equal(t, notation.NoPieceKind, turn.Move.Piece)
	assert.False(t, turn.Move.Capture)
	assert.Equal(t, 'e', turn.Move.DstFile)
	assert.Equal(t, '4', turn.Move.DstRank)
}

func TestParseTurnPieceMoveWithDisambiguator(t *testing.T) {
	turn, err := notation.ParseTurn("Nbd7")
	require.NoError(t, err)
	require.NotNil(t, turn.Move)
	assert.Equal(t, notation.Knight, turn.Move.Piece)
	f, ok := turn.Move.SrcFile.V()
	require.True(t, ok)
	assert.Equal(t, 'b', f)
}

func TestParseTurnCaptureAndPromotion(t *testing.T) {
	turn, err := notation.ParseTurn("exd8=Q+")
	require.NoError(t, err)
	require.NotNil(t, turn.Move)
	assert.True(t, turn.Move.Capture)
	f, ok := turn.Move.SrcFile.V()
	require.True(t, ok)
	assert.Equal(t, 'e', f)
	p, ok := turn.Move.Promotion.V()
	require.True(t, ok)
	assert.Equal(t, notation.Queen, p)
	assert.Equal(t, notation.FlagCheck, turn.Move.Flags)
}

func TestParseTurnCastlingAcceptsLetterAndDigitForms(t *testing.T) {
	for _, s := range []string{"O-O", "0-0"} {
		turn, err := notation.ParseTurn(s)
		require.NoError(t, err, s)
		require.NotNil(t, turn.Castling)
		assert.Equal(t, notation.KingSide, turn.Castling.Side)
	}
	for _, s := range []string{"O-O-O", "0-0-0"} {
		turn, err := notation.ParseTurn(s)
		require.NoError(t, err, s)
		require.NotNil(t, turn.Castling)
		assert.Equal(t, notation.QueenSide, turn.Castling.Side)
	}
}

func TestParseTurnStripsCommentaryAndChecksFlags(t *testing.T) {
	turn, err := notation.ParseTurn("Qh4#!!")
	require.NoError(t, err)
	require.NotNil(t, turn.Move)
	assert.Equal(t, notation.FlagCheckmate, turn.Move.Flags)

	turn, err = notation.ParseTurn("O-O-O+?")
	require.NoError(t, err)
	require.NotNil(t, turn.Castling)
	assert.Equal(t, notation.FlagCheck, turn.Castling.Flags)
}

func TestParseTurnRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "Z4", "e9", "Nx", "e4=Z"} {
		_, err := notation.ParseTurn(s)
		assert.Error(t, err, s)
	}
}

func TestFormatMoveCanonicalForm(t *testing.T) {
	m := notation.Move{
		Piece:   notation.Knight,
		Capture: true,
		DstFile: 'd',
		DstRank: '7',
		Flags:   notation.FlagCheck,
	}
	assert.Equal(t, "Nxd7+", notation.FormatMove(m))
}

func TestFormatCastlingCanonicalForm(t *testing.T) {
	assert.Equal(t, "O-O", notation.FormatCastling(notation.Castling{Side: notation.KingSide}))
	assert.Equal(t, "O-O-O#", notation.FormatCastling(notation.Castling{Side: notation.QueenSide, Flags: notation.FlagCheckmate}))
}
