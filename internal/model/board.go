package model

import "github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"

// pieceGlyphs maps piece codes to the symbols the board UI draws.
var pieceGlyphs = map[string]string{
	"p": "♟", "n": "♞", "b": "♝", "r": "♜", "q": "♛", "k": "♚",
	"P": "♙", "N": "♘", "B": "♗", "R": "♖", "Q": "♕", "K": "♔",
}

func Glyph(p rules.Piece) string {
	return pieceGlyphs[p.Code()]
}

// Glyphs returns a copy of the glyph table keyed by piece code.
func Glyphs() map[string]string {
	glyphs := make(map[string]string, len(pieceGlyphs))
	for code, glyph := range pieceGlyphs {
		glyphs[code] = glyph
	}
	return glyphs
}

// RenderBoard draws the board with glyphs, rank 8 first. Empty squares stay
// empty strings.
func RenderBoard(b rules.Board) [8][8]string {
	var out [8][8]string
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			out[row][col] = Glyph(b[row][col])
		}
	}
	return out
}
