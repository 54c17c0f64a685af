package board

// MovePair is a source and destination tile.
type MovePair struct {
	From Tile
	To   Tile
}

// String returns the pair as concatenated tile names (e.g., "e2e4").
func (m MovePair) String() string {
	return m.From.String() + m.To.String()
}

// IsPlayerInCheck returns true if any opposing piece can pseudo-legally move
// onto the tile holding player's king.
func (b *Board) IsPlayerInCheck(player Player) bool {
	for _, from := range allTiles {
		attacker := b.PieceAt(from)
		if attacker == NoPiece || attacker.Player() == player {
			continue
		}
		for _, to := range attacker.AllMoves(b, from) {
			target := b.PieceAt(to)
			if target != NoPiece && target.Player() == player && target.IsKing() {
				return true
			}
		}
	}
	return false
}

// IsPlayerInCheckMate returns true if none of player's pieces has a safe
// move.
//
// The scan does not ask whether player is currently in check, so a
// stalemated player is reported as checkmated as well. Callers that need to
// tell the two apart should also consult IsPlayerInCheck.
func (b *Board) IsPlayerInCheckMate(player Player) bool {
	for _, from := range allTiles {
		piece := b.PieceAt(from)
		if piece == NoPiece || piece.Player() != player {
			continue
		}
		if len(piece.AllSafeMoves(b, from)) > 0 {
			return false
		}
	}
	return true
}

// LegalMoves returns every safe move available to player, ordered by source
// tile.
func (b *Board) LegalMoves(player Player) []MovePair {
	var moves []MovePair
	for _, from := range b.Pieces(player) {
		for _, to := range b.PieceAt(from).AllSafeMoves(b, from) {
			moves = append(moves, MovePair{From: from, To: to})
		}
	}
	return moves
}
