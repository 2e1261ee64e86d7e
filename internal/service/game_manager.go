// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/model"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/ws"
	"golang.org/x/exp/slices"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games    map[string]*model.Game
	turnTime time.Duration
	mu       sync.RWMutex
}

// GameSummary is the listing entry for one game.
type GameSummary struct {
	ID        string      `json:"id"`
	ToMove    rules.Color `json:"toMove"`
	Resolve   *string     `json:"resolve"`
	Moves     int         `json:"moves"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewGameManager(turnTime time.Duration) *GameManager {
	return &GameManager{
		games:    make(map[string]*model.Game),
		turnTime: turnTime,
	}
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	game := model.NewGame(gameID, gm.turnTime)
	if err := gm.addGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

// CreateGameFromPosition registers a game that starts from a FEN piece
// placement with toMove to play. The position is loaded before the game
// becomes visible.
func (gm *GameManager) CreateGameFromPosition(gameID, fen string, toMove rules.Color) (*model.Game, error) {
	game := model.NewGame(gameID, gm.turnTime)
	if err := game.LoadPosition(fen, toMove); err != nil {
		return nil, err
	}
	if err := gm.addGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (gm *GameManager) addGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return ErrGameExists
	}
	gm.games[game.ID] = game
	log.Printf("created game %s", game.ID)
	return nil
}

// NewGameID returns a fresh random game id.
func NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(gm.games, gameID)
	log.Printf("deleted game %s", gameID)
	return nil
}

// ListGames returns a summary of every game, oldest first.
func (gm *GameManager) ListGames() []GameSummary {
	gm.mu.RLock()
	games := make([]*model.Game, 0, len(gm.games))
	for _, game := range gm.games {
		games = append(games, game)
	}
	gm.mu.RUnlock()

	slices.SortFunc(games, func(a, b *model.Game) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	summaries := make([]GameSummary, 0, len(games))
	for _, game := range games {
		state := game.GetState()
		summaries = append(summaries, GameSummary{
			ID:        game.ID,
			ToMove:    state.ToMove,
			Resolve:   state.Resolve,
			Moves:     len(state.MoveHistory),
			CreatedAt: game.CreatedAt,
		})
	}
	return summaries
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(move)
}

func (gm *GameManager) PossibleMoves(gameID string, sq rules.Square) ([]rules.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.PossibleMoves(sq)
}

func (gm *GameManager) Undo(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo()
}

func (gm *GameManager) Reset(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.Reset()
	return nil
}

func (gm *GameManager) Pause(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.Pause()
	return nil
}

func (gm *GameManager) Resume(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.Resume()
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID)
}

func (gm *GameManager) Send(gameID string, clientID string, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(clientID, msg)
}
