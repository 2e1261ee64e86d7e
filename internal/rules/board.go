package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (t PieceType) letter() byte {
	switch t {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return 0
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is a tagged value. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

// Code returns the single-letter encoding: uppercase for White, lowercase for
// Black and "" for an empty square.
func (p Piece) Code() string {
	if p.IsEmpty() {
		return ""
	}
	l := p.Type.letter()
	if p.Color == White {
		l -= 'a' - 'A'
	}
	return string(l)
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	return p.Code()
}

// PieceFromCode decodes a single-letter piece code. The empty string decodes to
// the empty square.
func PieceFromCode(code string) (Piece, error) {
	if code == "" {
		return Piece{}, nil
	}
	if len(code) != 1 {
		return Piece{}, fmt.Errorf("invalid piece code %q", code)
	}
	c := code[0]
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c += 'a' - 'A'
	}
	switch c {
	case 'k':
		return NewPiece(King, color), nil
	case 'q':
		return NewPiece(Queen, color), nil
	case 'r':
		return NewPiece(Rook, color), nil
	case 'b':
		return NewPiece(Bishop, color), nil
	case 'n':
		return NewPiece(Knight, color), nil
	case 'p':
		return NewPiece(Pawn, color), nil
	}
	return Piece{}, fmt.Errorf("invalid piece code %q", code)
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.Code()), nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	decoded, err := PieceFromCode(string(text))
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Square is a cell of the board. Row 0 is rank 8 and column 0 is file a.
type Square struct {
	Row int
	Col int
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

// ParseSquare parses coordinate notation such as "e2".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return Square{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}, nil
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

// Move is a bare coordinate pair; captures and notation belong to the caller.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s -> %s", m.From, m.To)
}

// Board is the 8x8 grid. It is a value type, so assigning a Board copies it.
type Board [8][8]Piece

var initialLayout = [8]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
}

// InitialBoard returns the standard starting arrangement.
func InitialBoard() Board {
	var b Board
	for row, rank := range initialLayout {
		for col := 0; col < 8; col++ {
			if rank[col] == '.' {
				continue
			}
			p, _ := PieceFromCode(rank[col : col+1])
			b[row][col] = p
		}
	}
	return b
}

func (b *Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

// Set replaces the content of a square.
func (b *Board) Set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// Apply returns a copy of the board with the piece on m.From moved to m.To.
// The receiver is left untouched.
func (b *Board) Apply(m Move) Board {
	next := *b
	next.Set(m.To, b.At(m.From))
	next.Set(m.From, Piece{})
	return next
}

// FindKing scans for the king of the given color.
func (b *Board) FindKing(c Color) (Square, bool) {
	king := NewPiece(King, c)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b[row][col] == king {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sb.WriteString(b[row][col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalJSON encodes the board as an 8x8 array of piece codes.
func (b Board) MarshalJSON() ([]byte, error) {
	var grid [8][8]string
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			grid[row][col] = b[row][col].Code()
		}
	}
	return json.Marshal(grid)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var grid [][]string
	if err := json.Unmarshal(data, &grid); err != nil {
		return err
	}
	if len(grid) != 8 {
		return fmt.Errorf("board has %d rows, want 8", len(grid))
	}
	var decoded Board
	for row := range grid {
		if len(grid[row]) != 8 {
			return fmt.Errorf("board row %d has %d columns, want 8", row, len(grid[row]))
		}
		for col, code := range grid[row] {
			p, err := PieceFromCode(code)
			if err != nil {
				return fmt.Errorf("square %s: %w", Square{Row: row, Col: col}, err)
			}
			decoded[row][col] = p
		}
	}
	*b = decoded
	return nil
}
