// Package notation tokenizes Standard Algebraic Notation turn strings into a
// structured descriptor. It is deliberately independent of pkg/chess: the
// rules engine treats SAN parsing as an external collaborator, a black box
// that hands back a Turn descriptor, the way the original engine this was
// distilled from depended on a standalone notation-parsing crate.
package notation

import (
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// PieceKind is the piece letter a Move names; pawns carry NoPieceKind since
// SAN omits the pawn letter.
type PieceKind uint8

const (
	NoPieceKind PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func parsePieceLetter(r rune) (PieceKind, bool) {
	switch r {
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	default:
		return NoPieceKind, false
	}
}

// CastlingSide distinguishes the two castling types.
type CastlingSide uint8

const (
	KingSide CastlingSide = iota
	QueenSide
)

// Flag carries the trailing check/checkmate annotation.
type Flag uint8

const (
	FlagCheck Flag = 1 << iota
	FlagCheckmate
)

// Move is a non-castling SAN turn: an optional piece (absent means pawn), an
// optional source file/rank disambiguator, capture marker, destination
// square, optional promotion, and trailing flags.
type Move struct {
	Piece   PieceKind
	SrcFile lang.Optional[rune]
	SrcRank lang.Optional[rune]
	Capture bool

	DstFile rune
	DstRank rune

	Promotion lang.Optional[PieceKind]
	Flags     Flag
}

// Castling is a SAN castling turn.
type Castling struct {
	Side  CastlingSide
	Flags Flag
}

// Turn is exactly one of Move or Castling.
type Turn struct {
	Move     *Move
	Castling *Castling
}

// ParseTurn tokenizes a SAN string. Trailing '!' and '?' commentary is
// tolerated and stripped; castling accepts both O-O/O-O-O (letter-O) and
// 0-0/0-0-0 (digit-0).
func ParseTurn(san string) (Turn, error) {
	s := strings.TrimSpace(san)
	if s == "" {
		return Turn{}, fmt.Errorf("empty turn")
	}

	for len(s) > 0 && (s[len(s)-1] == '!' || s[len(s)-1] == '?') {
		s = s[:len(s)-1]
	}

	var flags Flag
	if strings.HasSuffix(s, "#") {
		flags |= FlagCheckmate
		s = s[:len(s)-1]
	} else if strings.HasSuffix(s, "+") {
		flags |= FlagCheck
		s = s[:len(s)-1]
	}

	normalized := strings.ReplaceAll(s, "0", "O")
	switch normalized {
	case "O-O":
		return Turn{Castling: &Castling{Side: KingSide, Flags: flags}}, nil
	case "O-O-O":
		return Turn{Castling: &Castling{Side: QueenSide, Flags: flags}}, nil
	}

	m, err := parseMove(s, flags)
	if err != nil {
		return Turn{}, err
	}
	return Turn{Move: m}, nil
}

func parseMove(s string, flags Flag) (*Move, error) {
	if s == "" {
		return nil, fmt.Errorf("empty turn")
	}

	piece := NoPieceKind
	rest := s
	if p, ok := parsePieceLetter(rune(s[0])); ok {
		piece = p
		rest = s[1:]
	}

	var promotion lang.Optional[PieceKind]
	if eq := strings.IndexByte(rest, '='); eq >= 0 {
		if eq+2 != len(rest) {
			return nil, fmt.Errorf("invalid promotion in turn %q", s)
		}
		p, ok := parsePieceLetter(rune(rest[eq+1]))
		if !ok || p == King {
			return nil, fmt.Errorf("invalid promotion piece in turn %q", s)
		}
		promotion = lang.Some(p)
		rest = rest[:eq]
	}

	if len(rest) < 2 {
		return nil, fmt.Errorf("turn too short: %q", s)
	}

	dst := rest[len(rest)-2:]
	dstFile := rune(dst[0])
	dstRank := rune(dst[1])
	if dstFile < 'a' || dstFile > 'h' || dstRank < '1' || dstRank > '8' {
		return nil, fmt.Errorf("invalid destination square in turn %q", s)
	}

	prefix := rest[:len(rest)-2]
	capture := false
	if idx := strings.IndexByte(prefix, 'x'); idx >= 0 {
		capture = true
		prefix = prefix[:idx] + prefix[idx+1:]
	}

	var srcFile, srcRank lang.Optional[rune]
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'h':
			srcFile = lang.Some(r)
		case r >= '1' && r <= '8':
			srcRank = lang.Some(r)
		default:
			return nil, fmt.Errorf("invalid disambiguator in turn %q", s)
		}
	}

	return &Move{
		Piece:     piece,
		SrcFile:   srcFile,
		SrcRank:   srcRank,
		Capture:   capture,
		DstFile:   dstFile,
		DstRank:   dstRank,
		Promotion: promotion,
		Flags:     flags,
	}, nil
}

// FormatMove renders a Move back to its canonical SAN string.
func FormatMove(m Move) string {
	var sb strings.Builder

	switch m.Piece {
	case Knight:
		sb.WriteString("N")
	case Bishop:
		sb.WriteString("B")
	case Rook:
		sb.WriteString("R")
	case Queen:
		sb.WriteString("Q")
	case King:
		sb.WriteString("K")
	}

	if f, ok := m.SrcFile.V(); ok {
		sb.WriteRune(f)
	}
	if r, ok := m.SrcRank.V(); ok {
		sb.WriteRune(r)
	}
	if m.Capture {
		sb.WriteString("x")
	}
	sb.WriteRune(m.DstFile)
	sb.WriteRune(m.DstRank)

	if p, ok := m.Promotion.V(); ok {
		sb.WriteString("=")
		switch p {
		case Knight:
			sb.WriteString("N")
		case Bishop:
			sb.WriteString("B")
		case Rook:
			sb.WriteString("R")
		case Queen:
			sb.WriteString("Q")
		}
	}

	writeFlags(&sb, m.Flags)
	return sb.String()
}

// FormatCastling renders a Castling back to its canonical SAN string.
func FormatCastling(c Castling) string {
	var sb strings.Builder
	if c.Side == KingSide {
		sb.WriteString("O-O")
	} else {
		sb.WriteString("O-O-O")
	}
	writeFlags(&sb, c.Flags)
	return sb.String()
}

func writeFlags(sb *strings.Builder, flags Flag) {
	switch {
	case flags&FlagCheckmate != 0:
		sb.WriteString("#")
	case flags&FlagCheck != 0:
		sb.WriteString("+")
	}
}
