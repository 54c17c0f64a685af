// Package render draws boards to raster images.
package render

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chesscore/internal/board"
)

// Square sizes a Renderer accepts, in pixels.
const (
	MinSquareSize = 16
	MaxSquareSize = 512
)

var (
	lightSquare = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	darkSquare  = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	checkTint   = color.RGBA{0xd0, 0x30, 0x30, 0xb0}
	markTint    = color.RGBA{0xf6, 0xf6, 0x69, 0x90}
)

// Options controls how a board is drawn.
type Options struct {
	// Flip draws the board from Black's side.
	Flip bool
	// Labels draws file letters and rank numbers on the edge squares.
	Labels bool
	// ShowCheck tints the square of a king that is in check.
	ShowCheck bool
	// Highlight tints the listed tiles, e.g. the last move.
	Highlight []board.Tile
}

// Renderer draws boards with a fixed square size.
type Renderer struct {
	squareSize int
	glyphs     map[board.Piece]*image.RGBA
	face       font.Face
	cache      *ristretto.Cache[uint64, *image.RGBA]
}

// NewRenderer rasterizes the piece glyphs for the given square size.
func NewRenderer(squareSize int) (*Renderer, error) {
	if squareSize < MinSquareSize || squareSize > MaxSquareSize {
		return nil, fmt.Errorf("square size %d is outside %d..%d", squareSize, MinSquareSize, MaxSquareSize)
	}

	glyphs, err := loadGlyphs(squareSize)
	if err != nil {
		return nil, err
	}

	face, err := labelFace(squareSize)
	if err != nil {
		return nil, err
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *image.RGBA]{
		NumCounters: 1e4,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}

	return &Renderer{
		squareSize: squareSize,
		glyphs:     glyphs,
		face:       face,
		cache:      cache,
	}, nil
}

// Close releases the image cache.
func (r *Renderer) Close() {
	r.cache.Close()
	r.face.Close()
}

// SquareSize returns the edge length of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Render draws the board. The returned image belongs to the caller.
func (r *Renderer) Render(b *board.Board, opts Options) *image.RGBA {
	img := r.render(b, opts)

	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// WritePNG draws the board and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, b *board.Board, opts Options) error {
	return png.Encode(w, r.render(b, opts))
}

// render returns a cached image for the board and options, drawing it on a
// miss. The result is shared and must not be modified.
func (r *Renderer) render(b *board.Board, opts Options) *image.RGBA {
	key := cacheKey(b, opts)
	if img, ok := r.cache.Get(key); ok {
		return img
	}

	img := r.draw(b, opts)
	r.cache.Set(key, img, int64(len(img.Pix)))
	return img
}

func (r *Renderer) draw(b *board.Board, opts Options) *image.RGBA {
	edge := r.squareSize * board.Size
	img := image.NewRGBA(image.Rect(0, 0, edge, edge))

	marked := make(map[board.Tile]bool, len(opts.Highlight))
	for _, t := range opts.Highlight {
		marked[t] = true
	}

	checked := make(map[board.Tile]bool, 2)
	if opts.ShowCheck {
		for _, p := range []board.Player{board.White, board.Black} {
			if king := b.KingTile(p); king.IsValid() && b.IsPlayerInCheck(p) {
				checked[king] = true
			}
		}
	}

	for _, t := range board.AllTiles() {
		rect := r.squareRect(t, opts.Flip)

		bg := lightSquare
		if (t.Rank+t.File)%2 == 1 {
			bg = darkSquare
		}
		draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)

		if marked[t] {
			draw.Draw(img, rect, image.NewUniform(markTint), image.Point{}, draw.Over)
		}
		if checked[t] {
			draw.Draw(img, rect, image.NewUniform(checkTint), image.Point{}, draw.Over)
		}

		if glyph := r.glyphs[b.PieceAt(t)]; glyph != nil {
			draw.Draw(img, rect, glyph, image.Point{}, draw.Over)
		}
	}

	if opts.Labels {
		r.drawLabels(img, opts.Flip)
	}

	return img
}

// squareRect returns the pixel rectangle of a tile. Unflipped, rank 0 is the
// top row and file 0 the left column.
func (r *Renderer) squareRect(t board.Tile, flip bool) image.Rectangle {
	row, col := t.Rank, t.File
	if flip {
		row, col = board.Size-1-row, board.Size-1-col
	}
	origin := image.Pt(col*r.squareSize, row*r.squareSize)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(r.squareSize, r.squareSize))}
}

// drawLabels writes file letters along the bottom row and rank numbers down
// the left column, in the colour of the opposite square.
func (r *Renderer) drawLabels(img *image.RGBA, flip bool) {
	pad := r.squareSize / 16
	if pad < 1 {
		pad = 1
	}
	ascent := r.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: img, Face: r.face}

	for i := 0; i < board.Size; i++ {
		// Bottom row: file letters.
		file := board.NewTile(board.Size-1, i)
		if flip {
			file = board.NewTile(0, board.Size-1-i)
		}
		rect := r.squareRect(file, flip)
		d.Src = image.NewUniform(labelColour(file))
		label := string(rune('a' + file.File))
		width := d.MeasureString(label).Ceil()
		d.Dot = fixed.P(rect.Max.X-width-pad, rect.Max.Y-pad)
		d.DrawString(label)

		// Left column: rank numbers.
		rank := board.NewTile(i, 0)
		if flip {
			rank = board.NewTile(board.Size-1-i, board.Size-1)
		}
		rect = r.squareRect(rank, flip)
		d.Src = image.NewUniform(labelColour(rank))
		d.Dot = fixed.P(rect.Min.X+pad, rect.Min.Y+pad+ascent)
		d.DrawString(fmt.Sprint(board.Size - rank.Rank))
	}
}

func labelColour(t board.Tile) color.Color {
	if (t.Rank+t.File)%2 == 1 {
		return lightSquare
	}
	return darkSquare
}

// cacheKey identifies a rendering of b with opts.
func cacheKey(b *board.Board, opts Options) uint64 {
	buf := make([]byte, 0, 16+2*len(opts.Highlight))
	buf = binary.LittleEndian.AppendUint64(buf, b.Hash())

	var flags byte
	if opts.Flip {
		flags |= 1
	}
	if opts.Labels {
		flags |= 2
	}
	if opts.ShowCheck {
		flags |= 4
	}
	buf = append(buf, flags)

	for _, t := range opts.Highlight {
		buf = append(buf, byte(t.Rank), byte(t.File))
	}
	return xxhash.Sum64(buf)
}
