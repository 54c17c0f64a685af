package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/hailam/chesscore/internal/board"
)

// renderScale is the oversampling factor used when rasterizing glyphs.
// Glyphs are drawn at this multiple of the square size and scaled down.
const renderScale = 3

// glyphShapes holds the SVG body of each kind on a 45x45 canvas.
var glyphShapes = map[board.Kind]string{
	board.Pawn: `<circle cx="22.5" cy="13" r="5"/>` +
		`<path d="M16 35 L29 35 L26 20 L19 20 Z"/>` +
		`<rect x="11" y="35" width="23" height="4"/>`,
	board.Knight: `<path d="M12 39 L34 39 L32 30 L30 20 L26 11 L22 8 L21 11 L17 13 L11 22 L13 25 L18 22 L21 21 L15 31 Z"/>` +
		`<circle cx="19" cy="15" r="1.2"/>`,
	board.Bishop: `<circle cx="22.5" cy="8" r="2.5"/>` +
		`<path d="M22.5 11 C16 15 14 22 17 29 L28 29 C31 22 29 15 22.5 11 Z"/>` +
		`<rect x="16" y="29" width="13" height="4"/>` +
		`<rect x="11" y="33" width="23" height="6"/>`,
	board.Rook: `<polygon points="11,39 34,39 34,35 31,35 30,17 33,17 33,10 29,10 29,13 25,13 25,10 20,10 20,13 16,13 16,10 12,10 12,17 15,17 14,35 11,35"/>`,
	board.Queen: `<polygon points="9,26 12,13 17,23 22.5,10 28,23 33,13 36,26 33,33 12,33"/>` +
		`<circle cx="12" cy="12" r="2"/>` +
		`<circle cx="22.5" cy="9" r="2"/>` +
		`<circle cx="33" cy="12" r="2"/>` +
		`<rect x="11" y="33" width="23" height="6"/>`,
	board.King: `<rect x="21" y="4" width="3" height="10"/>` +
		`<rect x="18" y="7" width="9" height="3"/>` +
		`<path d="M11 33 C8 24 15 17 22.5 22 C30 17 37 24 34 33 Z"/>` +
		`<rect x="11" y="33" width="23" height="6"/>`,
}

// glyphSVG returns a complete SVG document for the piece.
func glyphSVG(p board.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Player() == board.Black {
		fill, stroke = "#000000", "#808080"
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">`+
		`<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">%s</g></svg>`,
		fill, stroke, glyphShapes[p.Kind()])
}

// rasterize renders the piece's glyph to a size x size image.
func rasterize(p board.Piece, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(glyphSVG(p)))
	if err != nil {
		return nil, fmt.Errorf("parse glyph %s: %w", p, err)
	}

	// Render at higher resolution for better quality when scaled
	renderSize := size * renderScale
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	hi := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, hi, hi.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), xdraw.Over, nil)
	return out, nil
}

// loadGlyphs rasterizes all twelve pieces.
func loadGlyphs(size int) (map[board.Piece]*image.RGBA, error) {
	glyphs := make(map[board.Piece]*image.RGBA, 12)
	for _, player := range []board.Player{board.White, board.Black} {
		for k := board.Pawn; k <= board.King; k++ {
			p := board.NewPiece(k, player)
			img, err := rasterize(p, size)
			if err != nil {
				return nil, err
			}
			glyphs[p] = img
		}
	}
	return glyphs, nil
}
