package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/ws"
)

const DefaultTurnTime = 300 * time.Second

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // clientID -> connection
	mu          sync.Mutex
}

// Game holds one local two-player session: the authoritative board, whose
// turn it is, captures, history and clocks.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	state       GameState
	undo        []GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	turnTime    time.Duration
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          rules.Board    `json:"board"`
	Glyphs         [8][8]string   `json:"glyphs"`
	FEN            string         `json:"fen"`
	ToMove         rules.Color    `json:"toMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Resolve        *string        `json:"resolve"`
	Winner         *rules.Color   `json:"winner"`
	Paused         bool           `json:"paused"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *rules.Move `json:"lastMove"`
}

// CapturedPieces lists captured pieces by their own color.
type CapturedPieces struct {
	White []rules.Piece `json:"white"`
	Black []rules.Piece `json:"black"`
}

func NewGame(id string, turnTime time.Duration) *Game {
	if turnTime <= 0 {
		turnTime = DefaultTurnTime
	}
	g := &Game{
		ID:          id,
		CreatedAt:   time.Now(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(turnTime),
		blackClock:  NewClock(turnTime),
		turnTime:    turnTime,
	}
	g.state = newGameState(rules.InitialBoard(), rules.White)
	g.whiteClock.Start()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newGameState(board rules.Board, toMove rules.Color) GameState {
	state := GameState{
		Board:          board,
		FEN:            board.FEN(),
		ToMove:         toMove,
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
	}
	state.Players.White = ClientPlayer{Color: rules.White}
	state.Players.Black = ClientPlayer{Color: rules.Black}
	return state
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]rules.Piece, 0),
		Black: make([]rules.Piece, 0),
	}
}

// clone copies the state so that later appends never alias a snapshot.
func (s GameState) clone() GameState {
	out := s
	out.MoveHistory = append(make([]Move, 0, len(s.MoveHistory)), s.MoveHistory...)
	out.CapturedPieces = CapturedPieces{
		White: append(make([]rules.Piece, 0, len(s.CapturedPieces.White)), s.CapturedPieces.White...),
		Black: append(make([]rules.Piece, 0, len(s.CapturedPieces.Black)), s.CapturedPieces.Black...),
	}
	if s.Resolve != nil {
		resolve := *s.Resolve
		out.Resolve = &resolve
	}
	if s.Winner != nil {
		winner := *s.Winner
		out.Winner = &winner
	}
	if s.LastMove != nil {
		last := *s.LastMove
		out.LastMove = &last
	}
	return out
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := g.state.clone()
	state.Glyphs = RenderBoard(state.Board)
	state.Players.White.TimeLeft = toTenths(g.whiteClock)
	state.Players.Black.TimeLeft = toTenths(g.blackClock)
	return state
}

// PossibleMoves returns the squares to highlight for the piece on sq. Only
// pieces of the side to move can be selected.
func (g *Game) PossibleMoves(sq rules.Square) ([]rules.Square, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !sq.InBounds() {
		return nil, ErrOutOfBounds
	}
	piece := g.state.Board.At(sq)
	if piece.IsEmpty() {
		return nil, ErrNoPiece
	}
	if piece.Color != g.state.ToMove {
		return nil, ErrNotYourTurn
	}
	return g.state.Board.PossibleMoves(sq), nil
}

func (g *Game) MakeMove(move MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.validateMove(move); err != nil {
		return err
	}
	g.undo = append(g.undo, g.state.clone())
	g.executeMove(rules.Move{From: move.From, To: move.To})

	go g.broadcastState()
	return nil
}

func (g *Game) validateMove(move MoveRequest) error {
	if g.state.Resolve != nil {
		return ErrGameOver
	}
	if g.state.Paused {
		return ErrPaused
	}
	if !move.From.InBounds() || !move.To.InBounds() {
		return ErrOutOfBounds
	}
	piece := g.state.Board.At(move.From)
	if piece.IsEmpty() {
		return ErrNoPiece
	}
	if piece.Color != g.state.ToMove {
		return ErrNotYourTurn
	}
	if !g.state.Board.IsValidMove(move.From, move.To) {
		return ErrIllegalMove
	}
	next := g.state.Board.Apply(rules.Move{From: move.From, To: move.To})
	if next.IsCheck(g.state.ToMove) {
		return ErrKingInCheck
	}
	return nil
}

func (g *Game) executeMove(move rules.Move) {
	board := &g.state.Board
	ply := newPly(board, move)

	g.state.Sound = "move"
	if captured := ply.CapturedPiece; captured != nil {
		g.state.Sound = "capture"
		switch captured.Color {
		case rules.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *captured)
		case rules.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *captured)
		}
	}

	g.state.Board = board.Apply(move)
	g.state.FEN = g.state.Board.FEN()
	g.recordPly(ply)
	g.state.LastMove = &move

	mover := g.state.ToMove
	opponent := mover.Opponent()
	g.state.IsCheck = g.state.Board.IsCheck(opponent)
	if g.state.IsCheck {
		g.state.Sound = "check"
		if g.state.Board.IsCheckmate(opponent) {
			result := "checkmate"
			g.state.Resolve = &result
			g.state.Winner = &mover
		}
	}

	g.switchTurn()
}

func (g *Game) recordPly(ply *Ply) {
	if g.state.ToMove == rules.White {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{WhitePly: ply})
		return
	}
	lastIdx := len(g.state.MoveHistory) - 1
	if lastIdx < 0 || g.state.MoveHistory[lastIdx].BlackPly != nil {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{BlackPly: ply})
		return
	}
	g.state.MoveHistory[lastIdx].BlackPly = ply
}

// switchTurn hands the move to the other side and re-arms its clock with a
// full turn budget.
func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
	g.armClocks()
}

// armClocks stops the clock of the side not to move and restarts the other
// from a full turn budget.
func (g *Game) armClocks() {
	active, idle := g.whiteClock, g.blackClock
	if g.state.ToMove == rules.Black {
		active, idle = g.blackClock, g.whiteClock
	}
	idle.Stop()
	active.Rearm(g.turnTime)
	if g.state.Resolve == nil && !g.state.Paused {
		active.Start()
	}
}

func (g *Game) activeClock() *Clock {
	if g.state.ToMove == rules.Black {
		return g.blackClock
	}
	return g.whiteClock
}

// Undo restores the position before the last move.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.undo) == 0 {
		return ErrNothingToUndo
	}
	paused := g.state.Paused
	g.state = g.undo[len(g.undo)-1]
	g.state.Paused = paused
	g.undo = g.undo[:len(g.undo)-1]
	g.armClocks()

	go g.broadcastState()
	return nil
}

// Reset starts the game over from the initial position.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.restart(rules.InitialBoard(), rules.White)
	go g.broadcastState()
}

// LoadPosition replaces the game with a custom position given as a FEN piece
// placement, with toMove to play.
func (g *Game) LoadPosition(fen string, toMove rules.Color) error {
	if toMove != rules.White && toMove != rules.Black {
		return fmt.Errorf("%w: %q", ErrInvalidColor, toMove)
	}
	board, err := rules.ParseFEN(fen)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.restart(board, toMove)
	go g.broadcastState()
	return nil
}

func (g *Game) restart(board rules.Board, toMove rules.Color) {
	g.state = newGameState(board, toMove)
	g.state.IsCheck = board.IsCheck(toMove)
	if g.state.IsCheck {
		g.state.Sound = "check"
		if board.IsCheckmate(toMove) {
			result := "checkmate"
			winner := toMove.Opponent()
			g.state.Resolve = &result
			g.state.Winner = &winner
		}
	}
	g.undo = nil
	g.whiteClock.Rearm(g.turnTime)
	g.blackClock.Rearm(g.turnTime)
	if g.state.Resolve == nil {
		g.activeClock().Start()
	}
}

func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Paused {
		return
	}
	g.state.Paused = true
	g.activeClock().Stop()
	go g.broadcastState()
}

func (g *Game) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Paused {
		return
	}
	g.state.Paused = false
	if g.state.Resolve == nil {
		g.activeClock().Start()
	}
	go g.broadcastState()
}

func (g *Game) RegisterConnection(clientID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return ErrDuplicateConnection
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for client %s", g.ID, clientID)

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(clientID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[clientID]; exists {
		log.Printf("game %s: unregistering connection for client %s", g.ID, clientID)
		delete(g.connections.connections, clientID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}

// Send writes a message to a single client.
func (g *Game) Send(clientID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[clientID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotConnected, clientID)
	}
	return conn.WriteJSON(msg)
}

// broadcastState pushes the current state to every connection. The state is
// read while holding the connections lock, so frames leave in state order and
// the last one sent always reflects the latest change. Failed connections are
// dropped.
func (g *Game) broadcastState() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if len(g.connections.connections) == 0 {
		return
	}
	payload, err := json.Marshal(g.GetState())
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	for clientID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: failed to send state to client %s: %v", g.ID, clientID, err)
			delete(g.connections.connections, clientID)
		}
	}
}
