package rules

var (
	knightDirs = []Square{{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2}, {Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1}}
	kingDirs   = []Square{{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
	bishopDirs = []Square{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	rookDirs   = []Square{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
)

// isOpponent reports whether both squares are occupied by pieces of different
// colors. An empty square is never an opponent.
func isOpponent(a, b Piece) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Color != b.Color
}

// PossibleMoves returns the pseudo-legal destinations of the piece on sq.
// Moves that leave the mover's own king in check are included. The result is
// computed fresh on each call; an empty square yields no moves.
func (b *Board) PossibleMoves(sq Square) []Square {
	piece := b.At(sq)
	switch piece.Type {
	case Pawn:
		return b.pawnMoves(sq, piece)
	case Knight:
		return b.stepMoves(sq, piece, knightDirs)
	case Bishop:
		return b.rayMoves(sq, piece, bishopDirs)
	case Rook:
		return b.rayMoves(sq, piece, rookDirs)
	case Queen:
		return append(b.rayMoves(sq, piece, bishopDirs), b.rayMoves(sq, piece, rookDirs)...)
	case King:
		return b.stepMoves(sq, piece, kingDirs)
	default:
		return []Square{}
	}
}

func (b *Board) stepMoves(sq Square, piece Piece, dirs []Square) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		target := sq.offset(dir.Row, dir.Col)
		if !target.InBounds() {
			continue
		}
		if occupant := b.At(target); occupant.IsEmpty() || isOpponent(piece, occupant) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (b *Board) rayMoves(sq Square, piece Piece, dirs []Square) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		target := sq.offset(dir.Row, dir.Col)
		for target.InBounds() {
			occupant := b.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, target)
			} else {
				if isOpponent(piece, occupant) {
					moves = append(moves, target)
				}
				break
			}
			target = target.offset(dir.Row, dir.Col)
		}
	}
	return moves
}

func (b *Board) pawnMoves(sq Square, piece Piece) []Square {
	moves := []Square{}
	forward, homeRow := -1, 6
	if piece.Color == Black {
		forward, homeRow = 1, 1
	}

	one := sq.offset(forward, 0)
	if one.InBounds() && b.At(one).IsEmpty() {
		moves = append(moves, one)
		two := sq.offset(2*forward, 0)
		if sq.Row == homeRow && b.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	// Diagonal steps are captures only: the target must hold an opponent.
	for _, dc := range []int{-1, 1} {
		target := sq.offset(forward, dc)
		if target.InBounds() && !b.At(target).IsEmpty() && isOpponent(piece, b.At(target)) {
			moves = append(moves, target)
		}
	}
	return moves
}
