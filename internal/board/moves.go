package board

// Direction offsets as (rank, file) deltas.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// forward returns the rank delta a pawn of the player advances by.
// White starts on ranks 6-7 and moves toward rank 0.
func forward(p Player) int {
	if p == White {
		return -1
	}
	return 1
}

// pawnHomeRank returns the rank a player's pawns start on.
func pawnHomeRank(p Player) int {
	if p == White {
		return 6
	}
	return 1
}

// CanMove reports whether the piece standing on from could pseudo-legally
// move to to on b. It ignores whether the move exposes the mover's king and
// is evaluated against the live contents of b, so it stays correct while b
// holds a speculative move.
func (p Piece) CanMove(b *Board, from, to Tile) bool {
	if p >= NoPiece || !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	if b.IsOccupiedByPlayer(to, p.Player()) {
		return false
	}

	dr, df := to.Rank-from.Rank, to.File-from.File

	switch p.Kind() {
	case Pawn:
		return p.canPawnMove(b, from, to, dr, df)
	case Knight:
		return (abs(dr) == 1 && abs(df) == 2) || (abs(dr) == 2 && abs(df) == 1)
	case Bishop:
		return abs(dr) == abs(df) && b.pathClear(from, to)
	case Rook:
		return (dr == 0 || df == 0) && b.pathClear(from, to)
	case Queen:
		return (dr == 0 || df == 0 || abs(dr) == abs(df)) && b.pathClear(from, to)
	case King:
		return abs(dr) <= 1 && abs(df) <= 1
	}
	return false
}

func (p Piece) canPawnMove(b *Board, from, to Tile, dr, df int) bool {
	us := p.Player()
	dir := forward(us)

	switch {
	case df == 0 && dr == dir:
		return !b.IsOccupied(to)
	case df == 0 && dr == 2*dir:
		return from.Rank == pawnHomeRank(us) &&
			!b.IsOccupied(from.Offset(dir, 0)) &&
			!b.IsOccupied(to)
	case abs(df) == 1 && dr == dir:
		// Diagonal steps are captures only.
		return b.IsOccupiedByPlayer(to, us.Other())
	}
	return false
}

// AllMoves returns every tile the piece on from could pseudo-legally move to.
func (p Piece) AllMoves(b *Board, from Tile) []Tile {
	var moves []Tile
	for _, to := range p.candidates(from) {
		if p.CanMove(b, from, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// AllSafeMoves returns the subset of AllMoves that does not leave the
// mover's own king in check.
func (p Piece) AllSafeMoves(b *Board, from Tile) []Tile {
	var safe []Tile
	for _, to := range p.AllMoves(b, from) {
		if !b.WouldPutInCheck(from, to) {
			safe = append(safe, to)
		}
	}
	return safe
}

// candidates narrows the destinations CanMove has to look at. The result is
// a superset of the reachable tiles, so AllMoves is equivalent to testing
// CanMove against all 64 tiles.
func (p Piece) candidates(from Tile) []Tile {
	var out []Tile
	add := func(t Tile) {
		if t.IsValid() {
			out = append(out, t)
		}
	}

	switch p.Kind() {
	case Knight:
		for _, o := range knightOffsets {
			add(from.Offset(o[0], o[1]))
		}
	case King:
		for _, o := range kingOffsets {
			add(from.Offset(o[0], o[1]))
		}
	case Pawn:
		dir := forward(p.Player())
		add(from.Offset(dir, 0))
		add(from.Offset(2*dir, 0))
		add(from.Offset(dir, -1))
		add(from.Offset(dir, 1))
	case Bishop, Rook, Queen:
		for _, o := range kingOffsets {
			for i := 1; i < Size; i++ {
				t := from.Offset(i*o[0], i*o[1])
				if !t.IsValid() {
					break
				}
				out = append(out, t)
			}
		}
	}
	return out
}

// pathClear reports whether every tile strictly between from and to is empty.
// from and to must share a rank, file or diagonal.
func (b *Board) pathClear(from, to Tile) bool {
	stepR, stepF := sign(to.Rank-from.Rank), sign(to.File-from.File)
	for t := from.Offset(stepR, stepF); t != to; t = t.Offset(stepR, stepF) {
		if b.IsOccupied(t) {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
