package model

import "github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"

type MoveRequest struct {
	From rules.Square `json:"from"`
	To   rules.Square `json:"to"`
}

type Ply struct {
	Piece         rules.Piece  `json:"piece"`
	From          rules.Square `json:"from"`
	To            rules.Square `json:"to"`
	CapturedPiece *rules.Piece `json:"capturedPiece"`
	Notation      string       `json:"notation"`
}

// Move pairs White's ply with Black's reply. Either side may be nil when a
// game starts from a custom position or Black has not replied yet.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

func newPly(b *rules.Board, m rules.Move) *Ply {
	ply := &Ply{
		Piece:    b.At(m.From),
		From:     m.From,
		To:       m.To,
		Notation: m.String(),
	}
	if captured := b.At(m.To); !captured.IsEmpty() {
		ply.CapturedPiece = &captured
	}
	return ply
}
