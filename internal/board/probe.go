package board

// Move attempts to move the piece on from to to. It fails, leaving the board
// untouched, when:
//   - either tile is off the board, or from == to
//   - from is empty
//   - the move would leave the mover's own king in check
//   - the piece cannot move or capture there
//
// Any piece standing on to is captured.
func (b *Board) Move(from, to Tile) bool {
	if !from.IsValid() || !to.IsValid() || from == to || !b.IsOccupied(from) || b.WouldPutInCheck(from, to) {
		return false
	}

	piece := b.PieceAt(from)
	if !piece.CanMove(b, from, to) {
		return false
	}

	b.set(to, piece)
	b.set(from, NoPiece)
	return true
}

// WouldPutInCheck reports whether moving the piece on from to to would leave
// its owner in check. It only answers the exposure question: a move the
// piece cannot make at all, or a move from an empty or invalid tile, reports
// false. The board is identical before and after the call.
func (b *Board) WouldPutInCheck(from, to Tile) bool {
	piece := b.PieceAt(from)
	if piece == NoPiece || !piece.CanMove(b, from, to) {
		return false
	}

	undo := b.apply(from, to)
	defer undo()

	return b.IsPlayerInCheck(piece.Player())
}

// apply moves the piece on from to to without any legality checks and
// returns a func that restores both cells. from and to must be valid.
func (b *Board) apply(from, to Tile) (undo func()) {
	moved, captured := b.PieceAt(from), b.PieceAt(to)

	b.set(to, moved)
	b.set(from, NoPiece)

	return func() {
		b.set(from, moved)
		b.set(to, captured)
	}
}
