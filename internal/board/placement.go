package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// StartPlacement is the FEN piece placement of the starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ParsePlacement builds a board from the piece placement field of a FEN
// string. Only the first whitespace separated field is read, so a full FEN
// is accepted and its remaining fields are ignored. The first FEN row maps
// to rank 0.
func ParsePlacement(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("invalid placement: empty")
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != Size {
		return nil, fmt.Errorf("invalid placement: need %d ranks, got %d", Size, len(rows))
	}

	b := New()
	for rank, row := range rows {
		file := 0

		for _, c := range row {
			if file >= Size {
				return nil, fmt.Errorf("too many tiles in rank %d", Size-rank)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			if c >= utf8.RuneSelf {
				return nil, fmt.Errorf("invalid piece character: %c", c)
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return nil, fmt.Errorf("invalid piece character: %c", c)
			}
			b.set(Tile{Rank: rank, File: file}, piece)
			file++
		}

		if file != Size {
			return nil, fmt.Errorf("invalid number of tiles in rank %d: got %d", Size-rank, file)
		}
	}

	return b, nil
}

// MustParsePlacement is like ParsePlacement but panics on malformed input.
func MustParsePlacement(fen string) *Board {
	b, err := ParsePlacement(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// Placement returns the FEN piece placement of the board.
func (b *Board) Placement() string {
	var sb strings.Builder

	for rank := 0; rank < Size; rank++ {
		empty := 0
		for file := 0; file < Size; file++ {
			piece := b.cells[rank][file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < Size-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
