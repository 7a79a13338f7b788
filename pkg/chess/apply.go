package chess

import "github.com/seekerror/stdlib/pkg/lang"

// moveApplication is the centralised "apply, test, revert" unit the turn
// executor and the legal-turn enumerator both build on: every speculative
// mutation records exactly what it touched so it can be undone byte-for-byte
// on the failure path, per the design note that this pattern should not be
// reimplemented ad hoc at each call site.
type moveApplication struct {
	src, dst  Square
	movedCell Cell

	displaced lang.Optional[Cell] // whatever occupied dst before the move

	extraRemovedSq lang.Optional[Square] // e.g. the en-passant captured pawn's square
	extraRemoved   Cell
}

// applyMove relocates the piece at src to dst. If epCaptureSq is set, the
// piece there is removed first (en passant: the captured pawn is not on
// dst). If promotion is set, the piece landing on dst is replaced.
func applyMove(b *Board, src, dst Square, epCaptureSq lang.Optional[Square], promotion lang.Optional[Piece]) moveApplication {
	movedCell, _ := b.Map().Get(src)
	app := moveApplication{src: src, dst: dst, movedCell: movedCell}

	if sq, ok := epCaptureSq.V(); ok {
		cell, _ := b.RemovePiece(sq)
		app.extraRemovedSq = lang.Some(sq)
		app.extraRemoved = cell
	}

	displaced, had := b.MovePiece(src, dst)
	if had {
		app.displaced = lang.Some(displaced)
	}

	if p, ok := promotion.V(); ok {
		b.PlacePiece(dst, Cell{Piece: p, Side: movedCell.Side})
	}

	return app
}

// revert restores every square this application touched.
func (app moveApplication) revert(b *Board) {
	b.RemovePiece(app.dst)
	b.PlacePiece(app.src, app.movedCell)

	if cell, ok := app.displaced.V(); ok {
		b.PlacePiece(app.dst, cell)
	}
	if sq, ok := app.extraRemovedSq.V(); ok {
		b.PlacePiece(sq, app.extraRemoved)
	}
}
