package chess

import (
	"github.com/rqnsom/chessturn/pkg/notation"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Snapshot is the turn executor's undo record: everything PlayTurn touched,
// in enough detail for UndoTurn to restore the board exactly as it was
// found, including the position-hash multiset. Ownership of the history
// stack this belongs to sits with the Game facade, not with Board.
type Snapshot struct {
	san      string
	apps     []moveApplication
	captured lang.Optional[Piece]

	prevCastling   CastlingRights
	prevEnPassant  lang.Optional[EnPassant]
	prevNoProgress uint
	prevState      GameState
	prevActive     Side
	hash           PositionHash
}

// SAN returns the turn string this snapshot corresponds to.
func (s Snapshot) SAN() string { return s.san }

// Captured returns the piece this turn captured, if any.
func (s Snapshot) Captured() (Piece, bool) { return s.captured.V() }

// PlayTurn applies a SAN turn to the board, enforcing every rule as one
// atomic step: on any failure the board is left exactly as it was found.
// On success it returns an undo record for UndoTurn.
func PlayTurn(b *Board, san string) (Snapshot, error) {
	if b.State().IsTerminal() {
		return Snapshot{}, ErrGameOver(b.State())
	}

	turn, err := notation.ParseTurn(san)
	if err != nil {
		return Snapshot{}, ErrParsingTurnFailed
	}

	mover := b.Active()
	prevCastling := b.Castling()
	prevEnPassant := b.enpassant
	prevNoProgress := b.NoProgress()
	prevState := b.State()

	var apps []moveApplication
	var captured lang.Optional[Piece]
	resetClock := false

	switch {
	case turn.Castling != nil:
		a, err := playCastling(b, mover, *turn.Castling)
		if err != nil {
			return Snapshot{}, err
		}
		apps = a

	case turn.Move != nil:
		a, c, reset, err := playMove(b, mover, *turn.Move)
		if err != nil {
			return Snapshot{}, err
		}
		apps, captured, resetClock = a, c, reset

	default:
		return Snapshot{}, ErrParsingTurnFailed
	}

	if err := verifyCheckFlags(b, mover, turn); err != nil {
		for i := len(apps) - 1; i >= 0; i-- {
			apps[i].revert(b)
		}
		b.SetCastling(prevCastling)
		b.SetEnPassant(prevEnPassant)
		return Snapshot{}, err
	}

	checkmate := checkmateFlagged(turn)
	hash := finishTurn(b, mover, resetClock, checkmate)

	snap := Snapshot{
		san:            san,
		apps:           apps,
		captured:       captured,
		prevCastling:   prevCastling,
		prevEnPassant:  prevEnPassant,
		prevNoProgress: prevNoProgress,
		prevState:      prevState,
		prevActive:     mover,
		hash:           hash,
	}
	return snap, nil
}

// UndoTurn reverses a turn previously applied by PlayTurn, restoring the
// board exactly as it was before, including the position-hash multiset.
func UndoTurn(b *Board, snap Snapshot) {
	b.PopHash(snap.hash)

	for i := len(snap.apps) - 1; i >= 0; i-- {
		snap.apps[i].revert(b)
	}

	b.SetCastling(snap.prevCastling)
	b.SetEnPassant(snap.prevEnPassant)
	b.SetNoProgress(snap.prevNoProgress)
	b.SetState(snap.prevState)
	b.SetActive(snap.prevActive)
}

func finishTurn(b *Board, mover Side, resetClock bool, checkmate bool) PositionHash {
	if resetClock {
		b.SetNoProgress(0)
	} else {
		b.SetNoProgress(b.NoProgress() + 1)
	}

	state := GameState{Kind: Ongoing}
	if b.NoProgress() >= 100 {
		state = GameState{Kind: DrawFiftyMoveRule}
	}

	h := b.PushHash()
	if b.HashCount(h) >= 3 {
		state = GameState{Kind: DrawThreeFoldRepetition}
	}
	if checkmate {
		state = GameState{Kind: Victory, Winner: mover}
	}

	b.SetState(state)
	b.SetActive(mover.Opponent())
	return h
}

func playCastling(b *Board, side Side, c notation.Castling) ([]moveApplication, error) {
	right := ShortRight(side)
	if c.Side == notation.QueenSide {
		right = LongRight(side)
	}
	if !b.Castling().Has(right) {
		return nil, ErrCastlingUnavailable
	}

	prevCastling := b.Castling()
	b.SetCastling(prevCastling.Remove(right))

	g := castlingGeometry(side, c.Side)

	if !IsSafe(b.Map(), g.kingFrom, side) {
		b.SetCastling(prevCastling)
		return nil, ErrCastlingUnderCheck
	}
	for _, sq := range g.between {
		if _, occ := b.Map().Get(sq); occ {
			b.SetCastling(prevCastling)
			return nil, ErrCastlingNotEmpty
		}
	}
	for _, sq := range g.crossing {
		if !IsSafe(b.Map(), sq, side) {
			b.SetCastling(prevCastling)
			return nil, ErrKingCannotCastleSafe
		}
	}

	rookApp := applyMove(b, g.rookFrom, g.rookTo, lang.Optional[Square]{}, lang.Optional[Piece]{})
	kingApp := applyMove(b, g.kingFrom, g.kingTo, lang.Optional[Square]{}, lang.Optional[Piece]{})

	if !IsSafe(b.Map(), b.King(side), side) {
		kingApp.revert(b)
		rookApp.revert(b)
		b.SetCastling(prevCastling)
		return nil, ErrOurKingMustBeSafe
	}

	b.ClearEnPassant()
	b.SetCastling(b.Castling().Remove(BothRights(side)))

	return []moveApplication{rookApp, kingApp}, nil
}

func playMove(b *Board, side Side, m notation.Move) ([]moveApplication, lang.Optional[Piece], bool, error) {
	dstFile, _ := ParseFile(m.DstFile)
	dstRank, _ := ParseRank(m.DstRank)
	dst := NewSquare(dstFile, dstRank)
	hint := hintFromNotation(m)

	if m.Piece == notation.NoPieceKind {
		return playPawnMove(b, side, m, dst, hint)
	}
	return playPieceMove(b, side, m, dst, hint)
}

func hintFromNotation(m notation.Move) SourceHint {
	var hint SourceHint
	if f, ok := m.SrcFile.V(); ok {
		if pf, ok := ParseFile(f); ok {
			hint.File = lang.Some(pf)
		}
	}
	if r, ok := m.SrcRank.V(); ok {
		if pr, ok := ParseRank(r); ok {
			hint.Rank = lang.Some(pr)
		}
	}
	return hint
}

func pieceFromNotation(p notation.PieceKind) Piece {
	switch p {
	case notation.Knight:
		return Knight
	case notation.Bishop:
		return Bishop
	case notation.Rook:
		return Rook
	case notation.Queen:
		return Queen
	case notation.King:
		return King
	default:
		return NoPiece
	}
}

func pieceMovePattern(piece Piece) PieceMove {
	switch piece {
	case Queen:
		return MoveQueen
	case Rook:
		return MoveRook
	case Bishop:
		return MoveBishop
	case Knight:
		return MoveKnight
	default:
		return MoveKing
	}
}

func playPieceMove(b *Board, side Side, m notation.Move, dst Square, hint SourceHint) ([]moveApplication, lang.Optional[Piece], bool, error) {
	piece := pieceFromNotation(m.Piece)
	pm := pieceMovePattern(piece)

	candidates := CouldReach(b.Map(), dst, side, pm)
	src, ok := ResolveSource(candidates, hint)
	if !ok {
		return nil, lang.Optional[Piece]{}, false, ErrMovingPieceNotFound
	}

	captured, err := verifyCapture(b, side, dst, m.Capture)
	if err != nil {
		return nil, lang.Optional[Piece]{}, false, err
	}

	app := applyMove(b, src, dst, lang.Optional[Square]{}, lang.Optional[Piece]{})

	if !IsSafe(b.Map(), b.King(side), side) {
		app.revert(b)
		return nil, lang.Optional[Piece]{}, false, ErrOurKingMustBeSafe
	}

	b.ClearEnPassant()
	handleCastlingRightsOnMove(b, side, piece, src)
	if _, had := captured.V(); had {
		handleCastlingRightsOnCapture(b, side.Opponent(), dst)
	}

	_, resetClock := captured.V()
	return []moveApplication{app}, captured, resetClock, nil
}

func playPawnMove(b *Board, side Side, m notation.Move, dst Square, hint SourceHint) ([]moveApplication, lang.Optional[Piece], bool, error) {
	_, hasFile := hint.File.V()
	if m.Capture && !hasFile {
		return nil, lang.Optional[Piece]{}, false, ErrInvalidPawnMovement
	}
	if !m.Capture && hasFile {
		return nil, lang.Optional[Piece]{}, false, ErrInvalidPawnMovement
	}

	pm := MovePawnNormal
	if m.Capture {
		pm = MovePawnCapture
	}

	candidates := CouldReach(b.Map(), dst, side, pm)
	src, ok := ResolveSource(candidates, hint)
	if !ok {
		return nil, lang.Optional[Piece]{}, false, ErrMovingPieceNotFound
	}

	var epCaptureSq lang.Optional[Square]
	var captured lang.Optional[Piece]

	cell, occ := b.Map().Get(dst)
	switch {
	case m.Capture && occ:
		if cell.Side == side {
			return nil, lang.Optional[Piece]{}, false, ErrCaptureAlly
		}
		captured = lang.Some(cell.Piece)

	case m.Capture && !occ:
		ep, epOK := b.EnPassant()
		if !epOK || ep.CapturePos != dst {
			return nil, lang.Optional[Piece]{}, false, ErrNoCapturePiece
		}
		epCaptureSq = lang.Some(ep.PawnSrc)
		epCell, _ := b.Map().Get(ep.PawnSrc)
		captured = lang.Some(epCell.Piece)

	case !m.Capture && occ:
		return nil, lang.Optional[Piece]{}, false, ErrCaptureNotSet
	}

	var promotion lang.Optional[Piece]
	if p, ok := m.Promotion.V(); ok {
		promotion = lang.Some(pieceFromNotation(p))
	}

	app := applyMove(b, src, dst, epCaptureSq, promotion)

	if !IsSafe(b.Map(), b.King(side), side) {
		app.revert(b)
		return nil, lang.Optional[Piece]{}, false, ErrOurKingMustBeSafe
	}

	if ep, ok := deriveEnPassant(side, src, dst); ok {
		b.SetEnPassant(lang.Some(ep))
	} else {
		b.ClearEnPassant()
	}

	handleCastlingRightsOnMove(b, side, Pawn, src)
	if sq, ok := epCaptureSq.V(); ok {
		handleCastlingRightsOnCapture(b, side.Opponent(), sq)
	} else if _, had := captured.V(); had {
		handleCastlingRightsOnCapture(b, side.Opponent(), dst)
	}

	return []moveApplication{app}, captured, true, nil
}

func verifyCapture(b *Board, side Side, dst Square, sanCapture bool) (lang.Optional[Piece], error) {
	cell, occ := b.Map().Get(dst)
	switch {
	case !sanCapture && !occ:
		return lang.Optional[Piece]{}, nil
	case !sanCapture && occ:
		return lang.Optional[Piece]{}, ErrCaptureNotSet
	case sanCapture && !occ:
		return lang.Optional[Piece]{}, ErrNoCapturePiece
	case cell.Side == side:
		return lang.Optional[Piece]{}, ErrCaptureAlly
	default:
		return lang.Some(cell.Piece), nil
	}
}

func handleCastlingRightsOnMove(b *Board, side Side, piece Piece, src Square) {
	switch piece {
	case King:
		b.SetCastling(b.Castling().Remove(BothRights(side)))
	case Rook:
		if right, ok := rookCornerRight(side, src); ok {
			b.SetCastling(b.Castling().Remove(right))
		}
	}
}

// handleCastlingRightsOnCapture drops the captured side's corner right when
// the captured piece sat on that side's own starting rook square — a
// captured rook anywhere else has no effect on rights.
func handleCastlingRightsOnCapture(b *Board, capturedSide Side, sq Square) {
	if right, ok := rookCornerRight(capturedSide, sq); ok {
		b.SetCastling(b.Castling().Remove(right))
	}
}

func rookCornerRight(side Side, sq Square) (CastlingRights, bool) {
	rank := Rank1
	if side == Black {
		rank = Rank8
	}
	if sq.Rank() != rank {
		return 0, false
	}
	switch sq.File() {
	case FileA:
		return LongRight(side), true
	case FileH:
		return ShortRight(side), true
	default:
		return 0, false
	}
}

type castlingPath struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	between          []Square
	crossing         []Square
}

func castlingGeometry(side Side, cside notation.CastlingSide) castlingPath {
	rank := Rank1
	if side == Black {
		rank = Rank8
	}
	kingFrom := NewSquare(FileE, rank)

	if cside == notation.KingSide {
		f, g, h := NewSquare(FileF, rank), NewSquare(FileG, rank), NewSquare(FileH, rank)
		return castlingPath{
			kingFrom: kingFrom,
			kingTo:   g,
			rookFrom: h,
			rookTo:   f,
			between:  []Square{f, g},
			crossing: []Square{kingFrom, f, g},
		}
	}

	a, b2, c, d := NewSquare(FileA, rank), NewSquare(FileB, rank), NewSquare(FileC, rank), NewSquare(FileD, rank)
	return castlingPath{
		kingFrom: kingFrom,
		kingTo:   c,
		rookFrom: a,
		rookTo:   d,
		between:  []Square{b2, c, d},
		crossing: []Square{kingFrom, d, c},
	}
}

// verifyCheckFlags checks the opponent's actual king state against the SAN
// check/checkmate annotation, per the executor's verification table.
func verifyCheckFlags(b *Board, mover Side, turn notation.Turn) error {
	opponent := mover.Opponent()
	state := StateOf(b.Map(), b.King(opponent), opponent)
	flags := turnFlags(turn)

	switch state {
	case Safe:
		if flags&(notation.FlagCheck|notation.FlagCheckmate) != 0 {
			return ErrKingIsSafe
		}

	case Check:
		if flags&notation.FlagCheck == 0 {
			return ErrKingIsInCheck
		}

	case SoftCheckmate:
		if !HasLegalReply(b, opponent) {
			if flags&notation.FlagCheckmate == 0 {
				return ErrKingIsInCheckmate
			}
		} else if flags&notation.FlagCheckmate != 0 || flags&notation.FlagCheck == 0 {
			return ErrKingIsInCheck
		}
	}
	return nil
}

func turnFlags(turn notation.Turn) notation.Flag {
	if turn.Move != nil {
		return turn.Move.Flags
	}
	return turn.Castling.Flags
}

func checkmateFlagged(turn notation.Turn) bool {
	return turnFlags(turn)&notation.FlagCheckmate != 0
}
