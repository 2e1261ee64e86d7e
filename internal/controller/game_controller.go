package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/model"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN    string      `json:"fen"`
	ToMove rules.Color `json:"toMove"`
}

// statusFor maps service and game errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrPaused),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrNothingToUndo):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrKingInCheck),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, rules.ErrInvalidFEN):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var body createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(body.FEN, body.ToMove)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(gc.gameService.ListGames())
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) PossibleMoves(c *fiber.Ctx) error {
	sq, err := rules.ParseSquare(c.Params("square"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	moves, err := gc.gameService.PossibleMoves(c.Params("gameId"), sq)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"square": sq,
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move: " + err.Error(),
		})
	}
	gameID := c.Params("gameId")
	if err := gc.gameService.HandleMove(gameID, move); err != nil {
		return errorResponse(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	return gc.control(c, gc.gameService.Undo)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	return gc.control(c, gc.gameService.Reset)
}

func (gc *GameController) Pause(c *fiber.Ctx) error {
	return gc.control(c, gc.gameService.Pause)
}

func (gc *GameController) Resume(c *fiber.Ctx) error {
	return gc.control(c, gc.gameService.Resume)
}

// control runs a session command and replies with the resulting state.
func (gc *GameController) control(c *fiber.Ctx, fn func(gameID string) error) error {
	if err := fn(c.Params("gameId")); err != nil {
		return errorResponse(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Glyphs(c *fiber.Ctx) error {
	return c.JSON(model.Glyphs())
}
