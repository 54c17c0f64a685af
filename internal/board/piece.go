package board

// Player represents one side of the game.
type Player uint8

const (
	White Player = iota
	Black
	NoPlayer Player = 2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	return p ^ 1
}

// String returns the player name.
func (p Player) String() string {
	switch p {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoPlayer"
	}
}

// Kind represents the type of a chess piece.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoKind Kind = 6
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece combines Kind and Player into a single value.
// Encoded as: kind + player*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from Kind and Player.
func NewPiece(k Kind, p Player) Piece {
	if k >= NoKind || p >= NoPlayer {
		return NoPiece
	}
	return Piece(k) + Piece(p)*6
}

// Kind returns the Kind of the piece.
func (p Piece) Kind() Kind {
	if p >= NoPiece {
		return NoKind
	}
	return Kind(p % 6)
}

// Player returns the side owning the piece.
func (p Piece) Player() Player {
	if p >= NoPiece {
		return NoPlayer
	}
	return Player(p / 6)
}

// IsKing returns true only for kings.
func (p Piece) IsKing() bool {
	return p.Kind() == King
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return string("PNBRQKpnbrqk"[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
