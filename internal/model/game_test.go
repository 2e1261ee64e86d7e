package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/ws"
)

func req(t *testing.T, from, to string) MoveRequest {
	t.Helper()
	f, err := rules.ParseSquare(from)
	if err != nil {
		t.Fatalf("parse %q: %v", from, err)
	}
	d, err := rules.ParseSquare(to)
	if err != nil {
		t.Fatalf("parse %q: %v", to, err)
	}
	return MoveRequest{From: f, To: d}
}

func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.MakeMove(req(t, m[:2], m[2:])); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
}

func TestMakeMoveRejections(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		setup []string
		move  [2]string
		want  error
	}{
		{name: "black moves first", move: [2]string{"e7", "e5"}, want: ErrNotYourTurn},
		{name: "empty square", move: [2]string{"e4", "e5"}, want: ErrNoPiece},
		{name: "pawn three squares", move: [2]string{"e2", "e5"}, want: ErrIllegalMove},
		{name: "own piece capture", move: [2]string{"a1", "a2"}, want: ErrIllegalMove},
		{name: "pinned knight", fen: "4k3/8/8/8/1b6/8/3N4/4K3", move: [2]string{"d2", "f3"}, want: ErrKingInCheck},
		{name: "king steps into check", fen: "4k3/8/8/8/8/8/r7/4K3", move: [2]string{"e1", "e2"}, want: ErrKingInCheck},
		{name: "after checkmate", setup: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, move: [2]string{"a2", "a3"}, want: ErrGameOver},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame("test", 0)
			if tt.fen != "" {
				if err := g.LoadPosition(tt.fen, rules.White); err != nil {
					t.Fatalf("load position: %v", err)
				}
			}
			playMoves(t, g, tt.setup...)
			before := g.GetState()
			err := g.MakeMove(req(t, tt.move[0], tt.move[1]))
			if !errors.Is(err, tt.want) {
				t.Fatalf("MakeMove error = %v, want %v", err, tt.want)
			}
			after := g.GetState()
			if after.Board != before.Board || after.ToMove != before.ToMove || len(after.MoveHistory) != len(before.MoveHistory) {
				t.Fatal("rejected move changed the game")
			}
		})
	}
}

func TestMakeMoveOutOfBounds(t *testing.T) {
	g := NewGame("test", 0)
	err := g.MakeMove(MoveRequest{From: rules.Square{Row: 6, Col: 4}, To: rules.Square{Row: -1, Col: 4}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want %v", err, ErrOutOfBounds)
	}
}

func TestMakeMoveRecordsHistoryAndCaptures(t *testing.T) {
	g := NewGame("test", 0)
	playMoves(t, g, "e2e4", "d7d5", "e4d5")

	state := g.GetState()
	if state.ToMove != rules.Black {
		t.Fatalf("to move = %s, want black", state.ToMove)
	}
	if len(state.MoveHistory) != 2 {
		t.Fatalf("history has %d moves, want 2", len(state.MoveHistory))
	}
	if got := state.MoveHistory[0].WhitePly.Notation; got != "e2 -> e4" {
		t.Errorf("first notation = %q", got)
	}
	if got := state.MoveHistory[0].BlackPly.Notation; got != "d7 -> d5" {
		t.Errorf("second notation = %q", got)
	}
	capture := state.MoveHistory[1].WhitePly
	if capture.CapturedPiece == nil || *capture.CapturedPiece != rules.NewPiece(rules.Pawn, rules.Black) {
		t.Fatalf("captured piece = %v", capture.CapturedPiece)
	}
	if len(state.CapturedPieces.Black) != 1 || len(state.CapturedPieces.White) != 0 {
		t.Fatalf("captured pieces = %+v", state.CapturedPieces)
	}
	if state.Sound != "capture" {
		t.Errorf("sound = %q, want capture", state.Sound)
	}
	if state.LastMove == nil || state.LastMove.String() != "e4 -> d5" {
		t.Errorf("last move = %v", state.LastMove)
	}
	if state.FEN != "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR" {
		t.Errorf("fen = %q", state.FEN)
	}
}

func TestFoolsMateEndsGame(t *testing.T) {
	g := NewGame("test", 0)
	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	state := g.GetState()
	if !state.IsCheck {
		t.Fatal("white should be in check")
	}
	if state.Resolve == nil || *state.Resolve != "checkmate" {
		t.Fatalf("resolve = %v, want checkmate", state.Resolve)
	}
	if state.Winner == nil || *state.Winner != rules.Black {
		t.Fatalf("winner = %v, want black", state.Winner)
	}
	if state.Sound != "check" {
		t.Errorf("sound = %q, want check", state.Sound)
	}
}

func TestCheckWithoutMate(t *testing.T) {
	g := NewGame("test", 0)
	playMoves(t, g, "e2e4", "f7f6", "d1h5")

	state := g.GetState()
	if !state.IsCheck || state.Resolve != nil {
		t.Fatalf("check = %v, resolve = %v; want check without result", state.IsCheck, state.Resolve)
	}
	if _, err := g.PossibleMoves(rules.Square{Row: 1, Col: 6}); err != nil {
		t.Fatalf("black should be able to select g7: %v", err)
	}
	// g7-g6 blocks the check.
	playMoves(t, g, "g7g6")
	if g.GetState().IsCheck {
		t.Fatal("check should be cleared after the block")
	}
}

func TestPossibleMoves(t *testing.T) {
	g := NewGame("test", 0)
	moves, err := g.PossibleMoves(rules.Square{Row: 6, Col: 4})
	if err != nil {
		t.Fatalf("select e2: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("e2 has %d moves, want 2", len(moves))
	}
	if _, err := g.PossibleMoves(rules.Square{Row: 1, Col: 4}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("select e7: got %v, want %v", err, ErrNotYourTurn)
	}
	if _, err := g.PossibleMoves(rules.Square{Row: 4, Col: 4}); !errors.Is(err, ErrNoPiece) {
		t.Fatalf("select e4: got %v, want %v", err, ErrNoPiece)
	}
	if _, err := g.PossibleMoves(rules.Square{Row: 8, Col: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("select off board: got %v, want %v", err, ErrOutOfBounds)
	}
}

func TestUndoAndReset(t *testing.T) {
	g := NewGame("test", 0)
	if err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo on fresh game: got %v", err)
	}
	playMoves(t, g, "e2e4", "d7d5", "e4d5")

	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	state := g.GetState()
	if state.ToMove != rules.White {
		t.Fatalf("to move after undo = %s", state.ToMove)
	}
	if len(state.CapturedPieces.Black) != 0 {
		t.Fatal("undo should restore captured pieces")
	}
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].BlackPly == nil {
		t.Fatalf("history after undo = %+v", state.MoveHistory)
	}

	playMoves(t, g, "e4e5")
	g.Reset()
	state = g.GetState()
	if state.Board != rules.InitialBoard() || state.ToMove != rules.White || len(state.MoveHistory) != 0 {
		t.Fatal("reset should restore the initial position")
	}
	if err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo after reset: got %v", err)
	}
}

func TestUndoCheckmate(t *testing.T) {
	g := NewGame("test", 0)
	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	state := g.GetState()
	if state.Resolve != nil || state.Winner != nil {
		t.Fatal("undo should clear the result")
	}
	playMoves(t, g, "d8g5")
}

func TestPauseBlocksMoves(t *testing.T) {
	g := NewGame("test", 0)
	g.Pause()
	if err := g.MakeMove(req(t, "e2", "e4")); !errors.Is(err, ErrPaused) {
		t.Fatalf("move while paused: got %v", err)
	}
	if !g.GetState().Paused {
		t.Fatal("state should report paused")
	}
	g.Resume()
	playMoves(t, g, "e2e4")
}

func TestLoadPosition(t *testing.T) {
	g := NewGame("test", 0)
	if err := g.LoadPosition("4k3/8/8/8/8/8/3PPP2/r3K3", rules.White); err != nil {
		t.Fatalf("load: %v", err)
	}
	state := g.GetState()
	if !state.IsCheck || state.Resolve == nil || *state.Winner != rules.Black {
		t.Fatalf("loaded mate not detected: %+v", state)
	}
	if err := g.LoadPosition("8/8/8/8/8/8/8/8", "green"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("bad color: got %v", err)
	}
	if err := g.LoadPosition("not a fen", rules.White); !errors.Is(err, rules.ErrInvalidFEN) {
		t.Fatalf("bad fen: got %v", err)
	}

	if err := g.LoadPosition("4k3/4p3/8/8/8/8/8/4K3", rules.Black); err != nil {
		t.Fatalf("load: %v", err)
	}
	playMoves(t, g, "e7e5", "e1d2")
	state = g.GetState()
	if len(state.MoveHistory) != 2 || state.MoveHistory[0].WhitePly != nil || state.MoveHistory[0].BlackPly == nil {
		t.Fatalf("history = %+v", state.MoveHistory)
	}
}

type fakeConn struct {
	messages chan ws.Message
}

func newFakeConn() *fakeConn {
	return &fakeConn{messages: make(chan ws.Message, 32)}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.messages <- v.(ws.Message)
	return nil
}

func (c *fakeConn) WriteMessage(int, []byte) error { return nil }

func (c *fakeConn) Close() error { return nil }

func TestBroadcastAfterMove(t *testing.T) {
	g := NewGame("test", 0)
	conn := newFakeConn()
	if err := g.RegisterConnection("client-1", conn); err != nil {
		t.Fatalf("register: %v", err)
	}
	playMoves(t, g, "e2e4")

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-conn.messages:
			if msg.Type != ws.MessageTypeGameState {
				t.Fatalf("unexpected message type %q", msg.Type)
			}
			var state GameState
			if err := json.Unmarshal(msg.Payload, &state); err != nil {
				t.Fatalf("decode state: %v", err)
			}
			if state.ToMove == rules.Black {
				if state.Board.At(rules.Square{Row: 4, Col: 4}) != rules.NewPiece(rules.Pawn, rules.White) {
					t.Fatal("broadcast board is missing e4 pawn")
				}
				return
			}
		case <-timeout:
			t.Fatal("no state broadcast after move")
		}
	}
}

func TestLastBroadcastIsLatestState(t *testing.T) {
	for i := 0; i < 20; i++ {
		g := NewGame("test", 0)
		conn := newFakeConn()
		if err := g.RegisterConnection("client-1", conn); err != nil {
			t.Fatalf("register: %v", err)
		}
		playMoves(t, g, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")
		want := g.GetState()

		var last *GameState
	drain:
		for {
			select {
			case msg := <-conn.messages:
				var state GameState
				if err := json.Unmarshal(msg.Payload, &state); err != nil {
					t.Fatalf("decode state: %v", err)
				}
				last = &state
			case <-time.After(100 * time.Millisecond):
				break drain
			}
		}
		if last == nil {
			t.Fatal("no state broadcast")
		}
		if last.Board != want.Board || last.ToMove != want.ToMove || len(last.MoveHistory) != len(want.MoveHistory) {
			t.Fatalf("run %d: last frame has %d moves with %s to move, want %d with %s",
				i, len(last.MoveHistory), last.ToMove, len(want.MoveHistory), want.ToMove)
		}
	}
}

func TestSendAndUnregister(t *testing.T) {
	g := NewGame("test", 0)
	conn := newFakeConn()
	if err := g.RegisterConnection("client-1", conn); err != nil {
		t.Fatalf("register: %v", err)
	}
	if g.ConnectionCount() != 1 {
		t.Fatalf("connections = %d", g.ConnectionCount())
	}
	if err := g.Send("client-1", ws.Message{Type: ws.MessageTypeError}); err != nil {
		t.Fatalf("send: %v", err)
	}
	g.UnregisterConnection("client-1")
	if err := g.Send("client-1", ws.Message{Type: ws.MessageTypeError}); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("send to unregistered client: got %v, want %v", err, ErrNotConnected)
	}
}

func TestDuplicateConnectionIsRejected(t *testing.T) {
	g := NewGame("test", 0)
	if err := g.RegisterConnection("client-1", newFakeConn()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := g.RegisterConnection("client-1", newFakeConn()); !errors.Is(err, ErrDuplicateConnection) {
		t.Fatalf("second register: got %v, want %v", err, ErrDuplicateConnection)
	}
	if g.ConnectionCount() != 1 {
		t.Fatalf("connections = %d, want 1", g.ConnectionCount())
	}
}

func TestStateCarriesGlyphs(t *testing.T) {
	g := NewGame("test", 0)
	state := g.GetState()
	if state.Glyphs[7][4] != "♔" || state.Glyphs[0][3] != "♛" || state.Glyphs[4][4] != "" {
		t.Fatalf("glyphs = %v", state.Glyphs)
	}
	if Glyph(rules.Piece{}) != "" {
		t.Fatal("empty square should have no glyph")
	}
	if len(Glyphs()) != 12 {
		t.Fatalf("glyph table has %d entries", len(Glyphs()))
	}
}
