// Package analysis reports check and checkmate status for whole positions.
package analysis

import (
	"github.com/hailam/chesscore/internal/board"
)

// PlayerStatus is the verdict for one side of a position.
type PlayerStatus struct {
	InCheck    bool
	Checkmate  bool
	LegalMoves int
}

// Stalemate returns true if the side has no safe move and is not in check.
// Board.IsPlayerInCheckMate reports both situations as checkmate.
func (s PlayerStatus) Stalemate() bool {
	return s.Checkmate && !s.InCheck
}

// Status holds the verdict for both sides, indexed by board.Player.
type Status [2]PlayerStatus

// Analyzer evaluates positions.
type Analyzer interface {
	// Analyze computes the status of both players on b. b is not modified.
	Analyze(b *board.Board) Status
}

// Direct analyses every position from scratch.
type Direct struct{}

func (Direct) Analyze(b *board.Board) Status {
	var s Status
	for _, p := range []board.Player{board.White, board.Black} {
		s[p] = PlayerStatus{
			InCheck:    b.IsPlayerInCheck(p),
			Checkmate:  b.IsPlayerInCheckMate(p),
			LegalMoves: len(b.LegalMoves(p)),
		}
	}
	return s
}
