package rules

import "golang.org/x/exp/slices"

// IsValidMove reports whether to is among the pseudo-legal destinations of the
// piece on from. It proves geometric reachability only: turn order and king
// safety are the caller's concern (see LegalMoves).
func (b *Board) IsValidMove(from, to Square) bool {
	return slices.Contains(b.PossibleMoves(from), to)
}

// IsCheck reports whether the king of color c is attacked by any opposing
// piece. A board without that king is never in check.
func (b *Board) IsCheck(c Color) bool {
	king, ok := b.FindKing(c)
	if !ok {
		return false
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() || p.Color == c {
				continue
			}
			if slices.Contains(b.PossibleMoves(Square{Row: row, Col: col}), king) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether color c is in check and every pseudo-legal move
// of every piece of c still leaves its king in check. Stalemate is not
// detected: a side with no moves that is not in check is reported as false.
func (b *Board) IsCheckmate(c Color) bool {
	if !b.IsCheck(c) {
		return false
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Square{Row: row, Col: col}
			p := b.At(from)
			if p.IsEmpty() || p.Color != c {
				continue
			}
			for _, to := range b.PossibleMoves(from) {
				next := b.Apply(Move{From: from, To: to})
				if !next.IsCheck(c) {
					return false
				}
			}
		}
	}
	return true
}

// LegalMoves returns the pseudo-legal destinations of the piece on sq that do
// not leave its own king in check.
func (b *Board) LegalMoves(sq Square) []Square {
	p := b.At(sq)
	moves := []Square{}
	for _, to := range b.PossibleMoves(sq) {
		next := b.Apply(Move{From: sq, To: to})
		if !next.IsCheck(p.Color) {
			moves = append(moves, to)
		}
	}
	return moves
}

// IsLegalMove combines IsValidMove with the king-safety test.
func (b *Board) IsLegalMove(from, to Square) bool {
	if !b.IsValidMove(from, to) {
		return false
	}
	next := b.Apply(Move{From: from, To: to})
	return !next.IsCheck(b.At(from).Color)
}
