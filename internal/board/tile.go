// Package board implements an 8x8 chess board and its move legality engine.
package board

import "fmt"

// Size is the number of ranks and files on the board.
const Size = 8

// Tile is a board coordinate.
// Rank 0 is Black's back rank (algebraic rank 8) and rank 7 is White's back
// rank (algebraic rank 1). File 0 is the a-file.
type Tile struct {
	Rank int
	File int
}

// NoTile is an invalid tile, returned when a lookup fails.
var NoTile = Tile{Rank: -1, File: -1}

// NewTile creates a tile from rank and file (0-indexed).
func NewTile(rank, file int) Tile {
	return Tile{Rank: rank, File: file}
}

// IsValid returns true if both coordinates lie on the board.
func (t Tile) IsValid() bool {
	return t.Rank >= 0 && t.Rank < Size && t.File >= 0 && t.File < Size
}

// Offset returns the tile dr ranks and df files away. The result may be invalid.
func (t Tile) Offset(dr, df int) Tile {
	return Tile{Rank: t.Rank + dr, File: t.File + df}
}

// String returns the algebraic name of the tile (e.g., "e1").
func (t Tile) String() string {
	if !t.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+t.File, '8'-t.Rank)
}

// ParseTile parses an algebraic tile name (e.g., "e1").
func ParseTile(s string) (Tile, error) {
	if len(s) != 2 {
		return NoTile, fmt.Errorf("invalid tile: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int('8' - s[1])

	t := Tile{Rank: rank, File: file}
	if !t.IsValid() {
		return NoTile, fmt.Errorf("invalid tile: %s", s)
	}
	return t, nil
}

// MustParseTile is like ParseTile but panics on malformed input.
// Intended for fixtures and constants.
func MustParseTile(s string) Tile {
	t, err := ParseTile(s)
	if err != nil {
		panic(err)
	}
	return t
}

// allTiles is shared by the board scans; it must not be modified.
var allTiles = AllTiles()

// AllTiles returns the 64 valid tiles in rank-major order.
func AllTiles() []Tile {
	tiles := make([]Tile, 0, Size*Size)
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			tiles = append(tiles, Tile{Rank: rank, File: file})
		}
	}
	return tiles
}
