package board

// zobristPiece holds one key per piece per tile, indexed [Piece][rank*8+file].
var zobristPiece [NoPiece][Size * Size]uint64

func init() {
	initZobrist()
}

// xorshift64* generator with a fixed seed so keys are reproducible across runs.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for p := WhitePawn; p < NoPiece; p++ {
		for i := 0; i < Size*Size; i++ {
			zobristPiece[p][i] = rng.next()
		}
	}
}

// Hash returns the Zobrist key of the piece placement. Boards with equal
// contents always hash equally.
func (b *Board) Hash() uint64 {
	var hash uint64
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if p := b.cells[rank][file]; p != NoPiece {
				hash ^= zobristPiece[p][rank*Size+file]
			}
		}
	}
	return hash
}
