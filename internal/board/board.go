package board

import (
	"errors"
	"fmt"
	"strings"
)

// backRank is the piece order on both back ranks, by file.
var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// ErrInvalidPiece is returned when a write carries a value that is neither a
// piece nor NoPiece.
var ErrInvalidPiece = errors.New("invalid piece")

// InvalidTileError is returned when a write targets a tile off the board.
// It signals a programming error in the caller, not an illegal move.
type InvalidTileError struct {
	Tile Tile
}

func (e *InvalidTileError) Error() string {
	return fmt.Sprintf("tile is not valid: rank %d, file %d", e.Tile.Rank, e.Tile.File)
}

// Board owns the 64 cells of a chess board.
// The zero value is not ready for use; call New.
type Board struct {
	cells [Size][Size]Piece
}

// New creates an empty board.
func New() *Board {
	b := &Board{}
	b.Clear()
	return b
}

// NewInitialized creates a board holding the starting position.
func NewInitialized() *Board {
	b := &Board{}
	b.Initialize()
	return b
}

// Clear removes all pieces from the board.
func (b *Board) Clear() {
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			b.cells[rank][file] = NoPiece
		}
	}
}

// Initialize sets up the starting position. Black's back rank is rank 0 and
// its pawns rank 1; White's pawns are on rank 6 and its back rank is rank 7.
func (b *Board) Initialize() {
	b.Clear()

	for file := 0; file < Size; file++ {
		b.cells[1][file] = BlackPawn
		b.cells[6][file] = WhitePawn
		b.cells[0][file] = NewPiece(backRank[file], Black)
		b.cells[7][file] = NewPiece(backRank[file], White)
	}
}

// IsOccupied returns true if a piece stands on t. Invalid tiles are never occupied.
func (b *Board) IsOccupied(t Tile) bool {
	return b.PieceAt(t) != NoPiece
}

// IsOccupiedByPlayer returns true if a piece owned by player stands on t.
func (b *Board) IsOccupiedByPlayer(t Tile, player Player) bool {
	p := b.PieceAt(t)
	return p != NoPiece && p.Player() == player
}

// PieceAt returns the piece on t, or NoPiece if t is empty or invalid.
func (b *Board) PieceAt(t Tile) Piece {
	if !t.IsValid() {
		return NoPiece
	}
	return b.cells[t.Rank][t.File]
}

// SetPieceAt overwrites the cell at t, silently discarding any previous
// occupant. Passing NoPiece empties the cell.
func (b *Board) SetPieceAt(t Tile, p Piece) error {
	if !t.IsValid() {
		return &InvalidTileError{Tile: t}
	}
	if p > NoPiece {
		return fmt.Errorf("%w: %d", ErrInvalidPiece, uint8(p))
	}
	b.set(t, p)
	return nil
}

// set writes a cell without validation. t must be valid.
func (b *Board) set(t Tile, p Piece) {
	b.cells[t.Rank][t.File] = p
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Equal reports whether both boards hold the same piece on every tile.
func (b *Board) Equal(o *Board) bool {
	return b.cells == o.cells
}

// Pieces returns the tiles occupied by player's pieces, in rank-major order.
func (b *Board) Pieces(player Player) []Tile {
	var tiles []Tile
	for _, t := range allTiles {
		if b.IsOccupiedByPlayer(t, player) {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// KingTile returns the tile of player's king, or NoTile if it has none.
func (b *Board) KingTile(player Player) Tile {
	king := NewPiece(King, player)
	for _, t := range allTiles {
		if b.PieceAt(t) == king {
			return t
		}
	}
	return NoTile
}

// Count returns the number of occupied tiles.
func (b *Board) Count() int {
	n := 0
	for _, t := range allTiles {
		if b.IsOccupied(t) {
			n++
		}
	}
	return n
}

// String returns an ASCII diagram with White's back rank at the bottom.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 0; rank < Size; rank++ {
		fmt.Fprintf(&sb, "%d  ", Size-rank)
		for file := 0; file < Size; file++ {
			sb.WriteString(b.cells[rank][file].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
