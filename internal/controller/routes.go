package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/middleware"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/service"
)

// RegisterRoutes wires the REST and WebSocket endpoints onto app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, allowOrigins []string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		log.Printf("websocket connection established for game %s", c.Params("gameId"))
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         allowOrigins,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureClientID())
	api.Get("/glyphs", gameController.Glyphs)
	api.Get("/games", gameController.ListGames)

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Delete("/:gameId", gameController.DeleteGame)
	gameRoutes.Get("/:gameId/moves/:square", gameController.PossibleMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Post("/:gameId/reset", gameController.Reset)
	gameRoutes.Post("/:gameId/pause", gameController.Pause)
	gameRoutes.Post("/:gameId/resume", gameController.Resume)
}
