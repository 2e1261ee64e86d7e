package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/config"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/controller"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
		ExposeHeaders:    "X-Client-ID",
	}))

	// Initialize services
	gameManager := service.NewGameManager(cfg.TurnTime)
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService, cfg.Origins())

	log.Printf("listening on %s (turn time %v)", cfg.Addr, cfg.TurnTime)
	log.Fatal(app.Listen(cfg.Addr))
}
