package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

const testSquare = 32

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(testSquare)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func rgbaAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestNewRendererSquareBounds(t *testing.T) {
	for _, size := range []int{0, MinSquareSize - 1, MaxSquareSize + 1, 100000} {
		if _, err := NewRenderer(size); err == nil {
			t.Errorf("NewRenderer(%d) should fail", size)
		}
	}

	r, err := NewRenderer(MinSquareSize)
	if err != nil {
		t.Fatalf("NewRenderer(%d) failed: %v", MinSquareSize, err)
	}
	r.Close()
}

func TestGlyphsParse(t *testing.T) {
	for _, player := range []board.Player{board.White, board.Black} {
		for k := board.Pawn; k <= board.King; k++ {
			p := board.NewPiece(k, player)
			img, err := rasterize(p, testSquare)
			if err != nil {
				t.Fatalf("rasterize(%s) failed: %v", p, err)
			}
			if img.Bounds().Dx() != testSquare || img.Bounds().Dy() != testSquare {
				t.Errorf("glyph %s has bounds %v", p, img.Bounds())
			}

			opaque := 0
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] > 0x80 {
					opaque++
				}
			}
			if opaque == 0 {
				t.Errorf("glyph %s rendered no pixels", p)
			}
		}
	}
}

func TestRenderSquares(t *testing.T) {
	r := newTestRenderer(t)
	img := r.Render(board.NewInitialized(), Options{})

	if got := img.Bounds(); got.Dx() != 8*testSquare || got.Dy() != 8*testSquare {
		t.Fatalf("bounds = %v, want %dx%d", got, 8*testSquare, 8*testSquare)
	}

	// e4 and d4 are empty; their centres show the square colour.
	e4 := board.MustParseTile("e4")
	if got := rgbaAt(img, e4.File*testSquare+testSquare/2, e4.Rank*testSquare+testSquare/2); got != lightSquare {
		t.Errorf("e4 centre = %v, want light square %v", got, lightSquare)
	}
	d4 := board.MustParseTile("d4")
	if got := rgbaAt(img, d4.File*testSquare+testSquare/2, d4.Rank*testSquare+testSquare/2); got != darkSquare {
		t.Errorf("d4 centre = %v, want dark square %v", got, darkSquare)
	}

	// Rook bodies cover the centre of their squares.
	if c := rgbaAt(img, testSquare/2, testSquare/2); c.R > 0x40 {
		t.Errorf("a8 centre = %v, want black rook", c)
	}
	if c := rgbaAt(img, testSquare/2, 7*testSquare+testSquare/2); c.R < 0xc0 {
		t.Errorf("a1 centre = %v, want white rook", c)
	}
}

func TestRenderFlip(t *testing.T) {
	r := newTestRenderer(t)
	img := r.Render(board.NewInitialized(), Options{Flip: true})

	// Flipped, the top-left square is h1 with a white rook.
	if c := rgbaAt(img, testSquare/2, testSquare/2); c.R < 0xc0 {
		t.Errorf("top-left centre = %v, want white rook", c)
	}
}

func TestRenderShowCheck(t *testing.T) {
	r := newTestRenderer(t)
	b := board.MustParsePlacement("3r4/8/8/8/8/8/8/3K4")
	d1 := b.KingTile(board.White)

	x, y := d1.File*testSquare+1, d1.Rank*testSquare+1

	plain := r.Render(b, Options{})
	if got := rgbaAt(plain, x, y); got != lightSquare {
		t.Errorf("d1 corner = %v, want light square", got)
	}

	tinted := r.Render(b, Options{ShowCheck: true})
	if got := rgbaAt(tinted, x, y); got == lightSquare {
		t.Error("d1 corner should be tinted when the king is in check")
	}

	marked := r.Render(b, Options{Highlight: []board.Tile{board.MustParseTile("e4")}})
	e4 := board.MustParseTile("e4")
	if got := rgbaAt(marked, e4.File*testSquare+1, e4.Rank*testSquare+1); got == lightSquare {
		t.Error("highlighted tile should be tinted")
	}
}

func TestRenderReturnsPrivateCopy(t *testing.T) {
	r := newTestRenderer(t)
	b := board.NewInitialized()
	opts := Options{Labels: true}

	first := r.Render(b, opts)
	r.cache.Wait()

	for i := range first.Pix {
		first.Pix[i] = 0
	}

	second := r.Render(b, opts)
	if bytes.Equal(first.Pix, second.Pix) {
		t.Error("mutating a rendered image must not affect later renders")
	}
	third := r.Render(b, opts)
	if !bytes.Equal(second.Pix, third.Pix) {
		t.Error("rendering the same board twice should give identical images")
	}
}

func TestWritePNG(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	if err := r.WritePNG(&buf, board.NewInitialized(), Options{Labels: true, ShowCheck: true}); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 8*testSquare {
		t.Errorf("decoded width = %d, want %d", img.Bounds().Dx(), 8*testSquare)
	}
}

func TestCacheKey(t *testing.T) {
	b := board.NewInitialized()

	base := cacheKey(b, Options{})
	if cacheKey(b, Options{}) != base {
		t.Error("cacheKey should be deterministic")
	}

	variants := []Options{
		{Flip: true},
		{Labels: true},
		{ShowCheck: true},
		{Highlight: []board.Tile{board.MustParseTile("e2")}},
	}
	for _, opts := range variants {
		if cacheKey(b, opts) == base {
			t.Errorf("cacheKey(%+v) should differ from the default", opts)
		}
	}

	moved := b.Copy()
	moved.Move(board.MustParseTile("e2"), board.MustParseTile("e4"))
	if cacheKey(moved, Options{}) == base {
		t.Error("cacheKey should change with the position")
	}
}
