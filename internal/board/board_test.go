package board

import (
	"errors"
	"testing"
)

func TestInitialize(t *testing.T) {
	b := NewInitialized()

	tests := []struct {
		tile string
		want Piece
	}{
		{"a8", BlackRook},
		{"b8", BlackKnight},
		{"c8", BlackBishop},
		{"d8", BlackQueen},
		{"e8", BlackKing},
		{"f8", BlackBishop},
		{"g8", BlackKnight},
		{"h8", BlackRook},
		{"a1", WhiteRook},
		{"b1", WhiteKnight},
		{"c1", WhiteBishop},
		{"d1", WhiteQueen},
		{"e1", WhiteKing},
		{"f1", WhiteBishop},
		{"g1", WhiteKnight},
		{"h1", WhiteRook},
	}

	for _, tc := range tests {
		if got := b.PieceAt(MustParseTile(tc.tile)); got != tc.want {
			t.Errorf("PieceAt(%s) = %s, want %s", tc.tile, got, tc.want)
		}
	}

	for file := 0; file < Size; file++ {
		if got := b.PieceAt(NewTile(1, file)); got != BlackPawn {
			t.Errorf("PieceAt(rank 1, file %d) = %s, want black pawn", file, got)
		}
		if got := b.PieceAt(NewTile(6, file)); got != WhitePawn {
			t.Errorf("PieceAt(rank 6, file %d) = %s, want white pawn", file, got)
		}
	}

	for rank := 2; rank <= 5; rank++ {
		for file := 0; file < Size; file++ {
			if b.IsOccupied(NewTile(rank, file)) {
				t.Errorf("tile %s should be empty", NewTile(rank, file))
			}
		}
	}

	if got := b.Count(); got != 32 {
		t.Errorf("Count() = %d, want 32", got)
	}
	if got := b.Placement(); got != StartPlacement {
		t.Errorf("Placement() = %s, want %s", got, StartPlacement)
	}
}

func TestClear(t *testing.T) {
	b := NewInitialized()
	b.Clear()

	for _, tile := range AllTiles() {
		if p := b.PieceAt(tile); p != NoPiece {
			t.Errorf("PieceAt(%s) = %s after Clear", tile, p)
		}
	}
}

func TestInvalidTiles(t *testing.T) {
	b := NewInitialized()

	invalid := []Tile{
		{Rank: -1, File: 0},
		{Rank: 0, File: -1},
		{Rank: 8, File: 0},
		{Rank: 0, File: 8},
		{Rank: 100, File: -100},
		NoTile,
	}

	for _, tile := range invalid {
		if tile.IsValid() {
			t.Errorf("%+v should not be valid", tile)
		}
		if b.IsOccupied(tile) {
			t.Errorf("IsOccupied(%+v) should be false", tile)
		}
		if b.IsOccupiedByPlayer(tile, White) || b.IsOccupiedByPlayer(tile, Black) {
			t.Errorf("IsOccupiedByPlayer(%+v) should be false", tile)
		}
		if p := b.PieceAt(tile); p != NoPiece {
			t.Errorf("PieceAt(%+v) = %s, want empty", tile, p)
		}

		err := b.SetPieceAt(tile, WhiteQueen)
		var tileErr *InvalidTileError
		if !errors.As(err, &tileErr) {
			t.Fatalf("SetPieceAt(%+v) error = %v, want InvalidTileError", tile, err)
		}
		if tileErr.Tile != tile {
			t.Errorf("InvalidTileError.Tile = %+v, want %+v", tileErr.Tile, tile)
		}
	}

	if b.Placement() != StartPlacement {
		t.Error("rejected writes must not change the board")
	}
}

func TestSetPieceAtRejectsUnknownPieces(t *testing.T) {
	b := NewInitialized()
	e4 := MustParseTile("e4")
	want := b.Hash()

	for _, p := range []Piece{NoPiece + 1, 200, 255} {
		if err := b.SetPieceAt(e4, p); !errors.Is(err, ErrInvalidPiece) {
			t.Errorf("SetPieceAt(e4, %d) error = %v, want ErrInvalidPiece", uint8(p), err)
		}
	}

	if b.IsOccupied(e4) {
		t.Error("rejected writes must not change the board")
	}
	if got := b.Hash(); got != want {
		t.Errorf("Hash() = %016x after rejected writes, want %016x", got, want)
	}
	if b.Placement() != StartPlacement {
		t.Error("board should still hold the starting position")
	}
}

func TestSetPieceAtCaptures(t *testing.T) {
	b := New()
	e4 := MustParseTile("e4")

	if err := b.SetPieceAt(e4, WhiteKnight); err != nil {
		t.Fatalf("SetPieceAt failed: %v", err)
	}
	if err := b.SetPieceAt(e4, BlackQueen); err != nil {
		t.Fatalf("SetPieceAt failed: %v", err)
	}

	if got := b.PieceAt(e4); got != BlackQueen {
		t.Errorf("PieceAt(e4) = %s, want q", got)
	}
	if !b.IsOccupiedByPlayer(e4, Black) || b.IsOccupiedByPlayer(e4, White) {
		t.Error("e4 should be occupied by Black only")
	}

	if err := b.SetPieceAt(e4, NoPiece); err != nil {
		t.Fatalf("SetPieceAt failed: %v", err)
	}
	if b.IsOccupied(e4) {
		t.Error("e4 should be empty")
	}
}

func TestTileNames(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
	}{
		{"a8", Tile{Rank: 0, File: 0}},
		{"h8", Tile{Rank: 0, File: 7}},
		{"a1", Tile{Rank: 7, File: 0}},
		{"e1", Tile{Rank: 7, File: 4}},
		{"d8", Tile{Rank: 0, File: 3}},
	}

	for _, tc := range tests {
		got, err := ParseTile(tc.name)
		if err != nil {
			t.Fatalf("ParseTile(%s) failed: %v", tc.name, err)
		}
		if got != tc.tile {
			t.Errorf("ParseTile(%s) = %+v, want %+v", tc.name, got, tc.tile)
		}
		if s := tc.tile.String(); s != tc.name {
			t.Errorf("String() = %s, want %s", s, tc.name)
		}
	}

	for _, bad := range []string{"", "e", "e9", "i1", "e0", "e10"} {
		if _, err := ParseTile(bad); err == nil {
			t.Errorf("ParseTile(%q) should fail", bad)
		}
	}
}

func TestPieceEncoding(t *testing.T) {
	for k := Pawn; k <= King; k++ {
		for _, pl := range []Player{White, Black} {
			p := NewPiece(k, pl)
			if p.Kind() != k || p.Player() != pl {
				t.Errorf("NewPiece(%s, %s) decoded as %s %s", k, pl, p.Player(), p.Kind())
			}
			if p.IsKing() != (k == King) {
				t.Errorf("%s %s IsKing() = %v", pl, k, p.IsKing())
			}
			if PieceFromChar(p.String()[0]) != p {
				t.Errorf("PieceFromChar(%s) did not round trip", p)
			}
		}
	}

	if NewPiece(NoKind, White) != NoPiece || NewPiece(Pawn, NoPlayer) != NoPiece {
		t.Error("NewPiece should return NoPiece for out of range input")
	}
	if White.Other() != Black || Black.Other() != White {
		t.Error("Other() should swap players")
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	placements := []string{
		StartPlacement,
		"4k3/8/8/8/8/8/3PPP2/r3KB2",
		"R6k/6pp/8/8/8/8/8/K7",
		"8/8/8/8/8/8/8/8",
	}

	for _, fen := range placements {
		b, err := ParsePlacement(fen)
		if err != nil {
			t.Fatalf("ParsePlacement(%s) failed: %v", fen, err)
		}
		if got := b.Placement(); got != fen {
			t.Errorf("Placement() = %s, want %s", got, fen)
		}
	}

	full, err := ParsePlacement(StartPlacement + " w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParsePlacement with full FEN failed: %v", err)
	}
	if !full.Equal(NewInitialized()) {
		t.Error("full FEN should parse to the starting position")
	}

	for _, bad := range []string{"", "8/8/8", "9/8/8/8/8/8/8/8", "7x/8/8/8/8/8/8/8", "ppppppppp/8/8/8/8/8/8/8",
		"Ű7/8/8/8/8/8/8/8", "7Ő/8/8/8/8/8/8/8"} {
		if _, err := ParsePlacement(bad); err == nil {
			t.Errorf("ParsePlacement(%q) should fail", bad)
		}
	}
}

func TestHash(t *testing.T) {
	a := NewInitialized()
	b := MustParsePlacement(StartPlacement)

	if a.Hash() != b.Hash() {
		t.Fatal("equal boards must hash equally")
	}

	before := a.Hash()
	if !a.Move(MustParseTile("g1"), MustParseTile("f3")) {
		t.Fatal("Ng1-f3 should be legal")
	}
	if a.Hash() == before {
		t.Error("hash should change after a move")
	}
	if !a.Move(MustParseTile("f3"), MustParseTile("g1")) {
		t.Fatal("Nf3-g1 should be legal")
	}
	if a.Hash() != before {
		t.Error("hash should be restored when the position is restored")
	}
	if New().Hash() != 0 {
		t.Error("empty board should hash to zero")
	}
}

func TestKingTileAndPieces(t *testing.T) {
	b := NewInitialized()

	if got := b.KingTile(White); got != MustParseTile("e1") {
		t.Errorf("KingTile(White) = %s, want e1", got)
	}
	if got := b.KingTile(Black); got != MustParseTile("e8") {
		t.Errorf("KingTile(Black) = %s, want e8", got)
	}
	if got := len(b.Pieces(White)); got != 16 {
		t.Errorf("len(Pieces(White)) = %d, want 16", got)
	}
	if got := New().KingTile(White); got != NoTile {
		t.Errorf("KingTile on empty board = %s, want NoTile", got)
	}
}
