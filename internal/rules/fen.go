package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

var ErrInvalidFEN = errors.New("invalid FEN")

var (
	toChessType = map[PieceType]chess.PieceType{
		King:   chess.King,
		Queen:  chess.Queen,
		Rook:   chess.Rook,
		Bishop: chess.Bishop,
		Knight: chess.Knight,
		Pawn:   chess.Pawn,
	}
	fromChessType = map[chess.PieceType]PieceType{
		chess.King:   King,
		chess.Queen:  Queen,
		chess.Rook:   Rook,
		chess.Bishop: Bishop,
		chess.Knight: Knight,
		chess.Pawn:   Pawn,
	}
)

// ParseFEN builds a board from the piece-placement field of a FEN record. Any
// further fields (side to move, castling rights, ...) are ignored.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return Board{}, ErrInvalidFEN
	}
	var cb chess.Board
	if err := cb.UnmarshalText([]byte(fields[0])); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	var b Board
	for sq, p := range cb.SquareMap() {
		t, ok := fromChessType[p.Type()]
		if !ok {
			continue
		}
		c := White
		if p.Color() == chess.Black {
			c = Black
		}
		b.Set(fromChessSquare(sq), NewPiece(t, c))
	}
	return b, nil
}

// FEN returns the piece-placement field for the board, e.g.
// "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR".
func (b *Board) FEN() string {
	m := make(map[chess.Square]chess.Piece)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				continue
			}
			c := chess.White
			if p.Color == Black {
				c = chess.Black
			}
			m[toChessSquare(Square{Row: row, Col: col})] = chess.NewPiece(toChessType[p.Type], c)
		}
	}
	return chess.NewBoard(m).String()
}

func toChessSquare(sq Square) chess.Square {
	return chess.NewSquare(chess.File(sq.Col), chess.Rank(7-sq.Row))
}

func fromChessSquare(sq chess.Square) Square {
	return Square{Row: 7 - int(sq.Rank()), Col: int(sq.File())}
}
