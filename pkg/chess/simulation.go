package chess

import (
	"github.com/rqnsom/chessturn/pkg/notation"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/mathx"
)

// candidateTurn is a pseudo-legal turn before own-king-safety simulation and
// SAN disambiguation.
type candidateTurn struct {
	piece       Piece
	src, dst    Square
	capture     bool
	epCaptureSq lang.Optional[Square]
	promotion   lang.Optional[Piece]

	isCastling   bool
	castlingSide notation.CastlingSide
}

type survivorTurn struct {
	c        candidateTurn
	captured lang.Optional[Piece]
	flags    notation.Flag
}

var promotionPieces = []Piece{Queen, Rook, Bishop, Knight}

// AvailableTurns enumerates every legal turn for the side to move, including
// disambiguation, promotion variants, and check/checkmate flags. Returns nil
// when the game is not Ongoing. It is also empty when the side to move has
// no legal turn; this function does not record that as a stalemate.
func AvailableTurns(b *Board) []AvailableTurn {
	if b.State().IsTerminal() {
		return nil
	}

	side := b.Active()
	opp := side.Opponent()

	var survivors []survivorTurn
	for _, c := range gatherCandidates(b, side) {
		apps, captured, ok := simulate(b, side, c)
		if !ok {
			continue
		}

		var flags notation.Flag
		switch StateOf(b.Map(), b.King(opp), opp) {
		case Check:
			flags = notation.FlagCheck
		case SoftCheckmate:
			if HasLegalReply(b, opp) {
				flags = notation.FlagCheck
			} else {
				flags = notation.FlagCheckmate
			}
		}

		for i := len(apps) - 1; i >= 0; i-- {
			apps[i].revert(b)
		}

		survivors = append(survivors, survivorTurn{c: c, captured: captured, flags: flags})
	}

	return disambiguateAndFormat(survivors)
}

// HasLegalReply reports whether side has at least one legal turn. Used both
// to distinguish stalemate/checkmate and to confirm true checkmate from a
// SoftCheckmate classification.
func HasLegalReply(b *Board, side Side) bool {
	for _, c := range gatherCandidates(b, side) {
		apps, _, ok := simulate(b, side, c)
		if !ok {
			continue
		}
		for i := len(apps) - 1; i >= 0; i-- {
			apps[i].revert(b)
		}
		return true
	}
	return false
}

func gatherCandidates(b *Board, side Side) []candidateTurn {
	// A floor-clamped capacity hint: roughly two pseudo-legal turns per
	// remaining piece, never below 8, avoids reallocation growth for the
	// common case without ever sizing a nearly-empty endgame board too high.
	out := make([]candidateTurn, 0, mathx.Max(8, 2*b.Map().Len()))
	b.Map().Each(func(sq Square, c Cell) {
		if c.Side != side {
			return
		}
		switch c.Piece {
		case King:
			out = append(out, kingCandidates(b, side, sq)...)
		case Pawn:
			out = append(out, pawnCandidates(b, side, sq)...)
		default:
			pm := pieceMovePattern(c.Piece)
			for _, dst := range ReachableFrom(b.Map(), sq, side, pm) {
				_, occ := b.Map().Get(dst)
				out = append(out, candidateTurn{piece: c.Piece, src: sq, dst: dst, capture: occ})
			}
		}
	})
	return out
}

func kingCandidates(b *Board, side Side, sq Square) []candidateTurn {
	var out []candidateTurn
	for _, dst := range ReachableFrom(b.Map(), sq, side, MoveKing) {
		_, occ := b.Map().Get(dst)
		out = append(out, candidateTurn{piece: King, src: sq, dst: dst, capture: occ})
	}

	for _, cside := range [2]notation.CastlingSide{notation.KingSide, notation.QueenSide} {
		right := ShortRight(side)
		if cside == notation.QueenSide {
			right = LongRight(side)
		}
		if !b.Castling().Has(right) {
			continue
		}

		g := castlingGeometry(side, cside)
		if !IsSafe(b.Map(), g.kingFrom, side) {
			continue
		}

		empty := true
		for _, s := range g.between {
			if _, occ := b.Map().Get(s); occ {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}

		safe := true
		for _, s := range g.crossing {
			if !IsSafe(b.Map(), s, side) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}

		out = append(out, candidateTurn{piece: King, isCastling: true, castlingSide: cside, src: g.kingFrom, dst: g.kingTo})
	}
	return out
}

func pawnCandidates(b *Board, side Side, sq Square) []candidateTurn {
	var out []candidateTurn

	for _, dst := range ReachableFrom(b.Map(), sq, side, MovePawnNormal) {
		out = append(out, pawnVariants(side, sq, dst, false, lang.Optional[Square]{})...)
	}

	for _, dst := range ReachableFrom(b.Map(), sq, side, MovePawnCapture) {
		cell, occ := b.Map().Get(dst)
		if occ && cell.Side != side {
			out = append(out, pawnVariants(side, sq, dst, true, lang.Optional[Square]{})...)
			continue
		}
		if !occ {
			if ep, ok := b.EnPassant(); ok && ep.CapturePos == dst {
				out = append(out, pawnVariants(side, sq, dst, true, lang.Some(ep.PawnSrc))...)
			}
		}
	}
	return out
}

func pawnVariants(side Side, src, dst Square, capture bool, epCaptureSq lang.Optional[Square]) []candidateTurn {
	finalRank := Rank8
	if side == Black {
		finalRank = Rank1
	}
	if dst.Rank() != finalRank {
		return []candidateTurn{{piece: Pawn, src: src, dst: dst, capture: capture, epCaptureSq: epCaptureSq}}
	}

	out := make([]candidateTurn, 0, len(promotionPieces))
	for _, p := range promotionPieces {
		out = append(out, candidateTurn{
			piece: Pawn, src: src, dst: dst, capture: capture,
			epCaptureSq: epCaptureSq, promotion: lang.Some(p),
		})
	}
	return out
}

// simulate speculatively applies a candidate and rejects it if it leaves the
// mover's own king in check. The caller is responsible for reverting the
// returned applications once it is done inspecting the resulting position.
func simulate(b *Board, side Side, c candidateTurn) ([]moveApplication, lang.Optional[Piece], bool) {
	if c.isCastling {
		g := castlingGeometry(side, c.castlingSide)
		rookApp := applyMove(b, g.rookFrom, g.rookTo, lang.Optional[Square]{}, lang.Optional[Piece]{})
		kingApp := applyMove(b, g.kingFrom, g.kingTo, lang.Optional[Square]{}, lang.Optional[Piece]{})

		if !IsSafe(b.Map(), b.King(side), side) {
			kingApp.revert(b)
			rookApp.revert(b)
			return nil, lang.Optional[Piece]{}, false
		}
		return []moveApplication{rookApp, kingApp}, lang.Optional[Piece]{}, true
	}

	var captured lang.Optional[Piece]
	if sq, ok := c.epCaptureSq.V(); ok {
		cell, _ := b.Map().Get(sq)
		captured = lang.Some(cell.Piece)
	} else if c.capture {
		cell, _ := b.Map().Get(c.dst)
		captured = lang.Some(cell.Piece)
	}

	app := applyMove(b, c.src, c.dst, c.epCaptureSq, c.promotion)
	if !IsSafe(b.Map(), b.King(side), side) {
		app.revert(b)
		return nil, lang.Optional[Piece]{}, false
	}
	return []moveApplication{app}, captured, true
}

// disambiguateAndFormat assigns each survivor the shortest SAN disambiguator
// (none < file < rank < full square) that uniquely identifies its source
// among same-kind rivals sharing its destination, then serialises.
func disambiguateAndFormat(survivors []survivorTurn) []AvailableTurn {
	out := make([]AvailableTurn, 0, len(survivors))

	for _, s := range survivors {
		var san string

		switch {
		case s.c.isCastling:
			san = notation.FormatCastling(notation.Castling{Side: s.c.castlingSide, Flags: s.flags})

		case s.c.piece == Pawn:
			var hintFile lang.Optional[rune]
			if s.c.capture {
				hintFile = lang.Some(rune(s.c.src.File().String()[0]))
			}
			san = formatMove(s, hintFile, lang.Optional[rune]{})

		default:
			hintFile, hintRank := disambiguate(survivors, s)
			san = formatMove(s, hintFile, hintRank)
		}

		out = append(out, AvailableTurn{
			Src:      s.c.src,
			Dst:      s.c.dst,
			Piece:    s.c.piece,
			Captured: s.captured,
			san:      san,
		})
	}
	return out
}

func disambiguate(all []survivorTurn, s survivorTurn) (lang.Optional[rune], lang.Optional[rune]) {
	var rivals []survivorTurn
	for _, o := range all {
		if o.c.isCastling || o.c.piece != s.c.piece || o.c.dst != s.c.dst || o.c.src == s.c.src {
			continue
		}
		rivals = append(rivals, o)
	}
	if len(rivals) == 0 {
		return lang.Optional[rune]{}, lang.Optional[rune]{}
	}

	fileUnique := true
	for _, r := range rivals {
		if r.c.src.File() == s.c.src.File() {
			fileUnique = false
			break
		}
	}
	if fileUnique {
		return lang.Some(rune(s.c.src.File().String()[0])), lang.Optional[rune]{}
	}

	rankUnique := true
	for _, r := range rivals {
		if r.c.src.Rank() == s.c.src.Rank() {
			rankUnique = false
			break
		}
	}
	if rankUnique {
		return lang.Optional[rune]{}, lang.Some(rune(s.c.src.Rank().String()[0]))
	}

	return lang.Some(rune(s.c.src.File().String()[0])), lang.Some(rune(s.c.src.Rank().String()[0]))
}

func formatMove(s survivorTurn, hintFile, hintRank lang.Optional[rune]) string {
	_, isEP := s.c.epCaptureSq.V()

	m := notation.Move{
		Piece:   notationPieceKind(s.c.piece),
		SrcFile: hintFile,
		SrcRank: hintRank,
		Capture: s.c.capture || isEP,
		DstFile: rune(s.c.dst.File().String()[0]),
		DstRank: rune(s.c.dst.Rank().String()[0]),
		Flags:   s.flags,
	}
	if p, ok := s.c.promotion.V(); ok {
		m.Promotion = lang.Some(notationPieceKind(p))
	}
	return notation.FormatMove(m)
}

func notationPieceKind(p Piece) notation.PieceKind {
	switch p {
	case Knight:
		return notation.Knight
	case Bishop:
		return notation.Bishop
	case Rook:
		return notation.Rook
	case Queen:
		return notation.Queen
	case King:
		return notation.King
	default:
		return notation.NoPieceKind
	}
}
