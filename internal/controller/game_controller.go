package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tether-chess/tether-chess/internal/engine"
	"github.com/tether-chess/tether-chess/internal/render"
	"github.com/tether-chess/tether-chess/internal/service"
)

// GameController adapts HTTP requests onto GameService, grounded on the
// teacher's controller.GameController but generalized to the variant's
// extra analysis endpoints.
type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Game created", "game_id": gameID})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Game joined", "color": color})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to join matchmaking"})
	}
	return c.JSON(fiber.Map{"status": "queued"})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	selected, err := parseSelectedSquare(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	view, err := gc.gameService.View(gameID, selected)
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	sq, err := engine.ParseSquare(c.Query("square"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	moves, err := gc.gameService.LegalMovesFrom(gameID, sq)
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) GetTransporterMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.TransporterMoves(c.Params("gameId"))
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) GetPawnKnightApexMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.PawnKnightApexMoves(c.Params("gameId"))
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) GetCheckingMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.CheckingMoves(c.Params("gameId"))
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) GetMichaelTalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.MichaelTalMoves(c.Params("gameId"))
	if err != nil {
		return statusForError(c, err)
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) GetBoardSVG(c *fiber.Ctx) error {
	snap, err := gc.gameService.BoardView(c.Params("gameId"))
	if err != nil {
		return statusForError(c, err)
	}

	var highlight []engine.Square
	if selected, err := parseSelectedSquare(c); err == nil && selected != nil {
		highlight = append(highlight, *selected)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(render.Board(snap, highlight))
}

func parseSelectedSquare(c *fiber.Ctx) (*engine.Square, error) {
	raw := c.Query("selectedSquare")
	if raw == "" {
		return nil, nil
	}
	sq, err := engine.ParseSquare(raw)
	if err != nil {
		return nil, err
	}
	return &sq, nil
}

func statusForError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGameNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, service.ErrGameFull) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
