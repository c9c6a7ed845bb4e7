package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/tether-chess/tether-chess/internal/controller"
	"github.com/tether-chess/tether-chess/internal/middleware"
	"github.com/tether-chess/tether-chess/internal/service"
	"github.com/tether-chess/tether-chess/internal/store"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		fmt.Println("--------------------------------")
		fmt.Printf("Incoming request to path: %s\n", c.Path())
		fmt.Printf("Method: %s\n", c.Method())
		fmt.Println("--------------------------------")
		return c.Next()
	})

	dataDir := os.Getenv("TETHER_CHESS_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	db, err := store.Open(dataDir)
	if err != nil {
		log.Fatalf("failed to open game store: %v", err)
	}
	defer db.Close()

	gameManager := service.NewGameManager(db)
	if restored, err := gameManager.RestoreGames(); err != nil {
		log.Printf("failed to restore persisted games: %v", err)
	} else if restored > 0 {
		fmt.Printf("restored %d in-flight game(s) from disk\n", restored)
	}
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", websocket.New(func(c *websocket.Conn) {
		fmt.Printf("WebSocket connection established for game: %s\n", c.Params("gameId"))
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{"http://localhost:5173"},
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Get("/:gameId/transporters", gameController.GetTransporterMoves)
	gameRoutes.Get("/:gameId/apex", gameController.GetPawnKnightApexMoves)
	gameRoutes.Get("/:gameId/checking", gameController.GetCheckingMoves)
	gameRoutes.Get("/:gameId/tal", gameController.GetMichaelTalMoves)
	gameRoutes.Get("/:gameId/board.svg", gameController.GetBoardSVG)

	log.Fatal(app.Listen(":3000"))
}
