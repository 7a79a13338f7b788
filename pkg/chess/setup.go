package chess

import (
	"fmt"
	"strings"
)

// NormalSetupToken selects the standard starting position when passed to NewBoardFromSetup.
const NormalSetupToken = "normal"

// Setup is either the normal starting position, or a free-form custom
// placement string: whitespace-separated triplets "<square>,<side>,<piece>".
type Setup struct {
	raw string
}

// NormalSetup returns the standard starting-position setup.
func NormalSetup() Setup {
	return Setup{raw: NormalSetupToken}
}

// CustomSetup wraps a free-form placement string.
func CustomSetup(placements string) Setup {
	return Setup{raw: placements}
}

// NewBoardFromSetup builds a fresh Board from the setup. Custom setups start
// with no castling rights: the rook/king starting-square heuristics that
// grant rights no longer apply once the layout is arbitrary.
func NewBoardFromSetup(zt *HashTable, setup Setup) (*Board, error) {
	if setup.raw == "" || setup.raw == NormalSetupToken {
		return newNormalBoard(zt), nil
	}
	return newCustomBoard(zt, setup.raw)
}

func newNormalBoard(zt *HashTable) *Board {
	m := &BoardMap{}

	backRank := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	var king [NumSides]Square

	for f := File(0); f < NumFiles; f++ {
		place(m, &king, NewSquare(f, Rank1), Cell{Piece: backRank[f], Side: White})
		place(m, &king, NewSquare(f, Rank2), Cell{Piece: Pawn, Side: White})
		place(m, &king, NewSquare(f, Rank7), Cell{Piece: Pawn, Side: Black})
		place(m, &king, NewSquare(f, Rank8), Cell{Piece: backRank[f], Side: Black})
	}

	return NewBoard(zt, m, king, FullCastlingRights, White)
}

func place(m *BoardMap, king *[NumSides]Square, sq Square, c Cell) {
	if c.Piece == King {
		king[c.Side] = sq
	}
	m.Insert(sq, c)
}

func newCustomBoard(zt *HashTable, placements string) (*Board, error) {
	m := &BoardMap{}
	var king [NumSides]Square
	seen := map[Square]bool{}
	kings := 0

	for _, token := range strings.Fields(placements) {
		parts := strings.Split(token, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid placement %q: expected <square>,<side>,<piece>", token)
		}

		sq, err := ParseSquare(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid placement %q: %w", token, err)
		}
		if seen[sq] {
			return nil, fmt.Errorf("invalid placement %q: square already occupied", token)
		}

		sideRunes := []rune(strings.TrimSpace(parts[1]))
		if len(sideRunes) != 1 {
			return nil, fmt.Errorf("invalid placement %q: invalid side", token)
		}
		side, ok := ParseSide(sideRunes[0])
		if !ok {
			return nil, fmt.Errorf("invalid placement %q: invalid side", token)
		}

		pieceRunes := []rune(strings.TrimSpace(parts[2]))
		if len(pieceRunes) != 1 {
			return nil, fmt.Errorf("invalid placement %q: invalid piece", token)
		}
		var piece Piece
		if pieceRunes[0] == 'P' || pieceRunes[0] == 'p' {
			piece = Pawn
		} else if p, ok := ParsePiece(rune(toUpper(pieceRunes[0]))); ok {
			piece = p
		} else {
			return nil, fmt.Errorf("invalid placement %q: invalid piece", token)
		}

		seen[sq] = true
		if piece == King {
			kings++
			king[side] = sq
		}
		m.Insert(sq, Cell{Piece: piece, Side: side})
	}

	if kings != 2 {
		return nil, fmt.Errorf("custom setup must have exactly two kings, got %v", kings)
	}

	return NewBoard(zt, m, king, CastlingRights(0), White), nil
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
