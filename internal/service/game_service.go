package service

import (
	"fmt"

	"github.com/shreekantyadav007/ReactChessTypeScript/internal/model"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a new game. fen is a FEN piece placement to start from
// (the initial position when empty) and toMove the side to play (White when
// empty).
func (gs *GameService) CreateGame(fen string, toMove rules.Color) (string, error) {
	gameID := NewGameID()

	if fen == "" && toMove == "" {
		if _, err := gs.gameManager.CreateGame(gameID); err != nil {
			return "", fmt.Errorf("failed to create game: %w", err)
		}
		return gameID, nil
	}
	if fen == "" {
		initial := rules.InitialBoard()
		fen = initial.FEN()
	}
	if toMove == "" {
		toMove = rules.White
	}
	if _, err := gs.gameManager.CreateGameFromPosition(gameID, fen, toMove); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) ListGames() []GameSummary {
	return gs.gameManager.ListGames()
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, move model.MoveRequest) error {
	if err := gs.gameManager.MakeMove(gameID, move); err != nil {
		return err
	}

	return nil
}

func (gs *GameService) PossibleMoves(gameID string, sq rules.Square) ([]rules.Square, error) {
	return gs.gameManager.PossibleMoves(gameID, sq)
}

func (gs *GameService) Undo(gameID string) error {
	return gs.gameManager.Undo(gameID)
}

func (gs *GameService) Reset(gameID string) error {
	return gs.gameManager.Reset(gameID)
}

func (gs *GameService) Pause(gameID string) error {
	return gs.gameManager.Pause(gameID)
}

func (gs *GameService) Resume(gameID string) error {
	return gs.gameManager.Resume(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string) {
	gs.gameManager.UnregisterConnection(gameID, clientID)
}

func (gs *GameService) Send(gameID string, clientID string, msg ws.Message) error {
	return gs.gameManager.Send(gameID, clientID, msg)
}
