package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/tether-chess/tether-chess/internal/engine"
)

// GameService is a thin pass-through facade over GameManager, kept the
// same shape as the teacher's service.GameService so controllers never
// touch GameManager directly.
type GameService struct {
	manager *GameManager
}

// NewGameService wraps manager in a GameService facade.
func NewGameService(manager *GameManager) *GameService {
	return &GameService{manager: manager}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()
	if err := gs.manager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (string, error) {
	return gs.manager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.manager.JoinMatchmaking(playerID)
}

func (gs *GameService) View(gameID string, selected *engine.Square) (GameStateView, error) {
	return gs.manager.View(gameID, selected)
}

func (gs *GameService) HandleMove(gameID string, from, to engine.Square, promotion *engine.PieceKind) (engine.MoveResult, error) {
	return gs.manager.MakeMove(gameID, from, to, promotion)
}

func (gs *GameService) LegalMovesFrom(gameID string, sq engine.Square) ([]engine.Move, error) {
	return gs.manager.LegalMovesFrom(gameID, sq)
}

func (gs *GameService) TransporterMoves(gameID string) ([]engine.Move, error) {
	return gs.manager.TransporterMoves(gameID)
}

func (gs *GameService) PawnKnightApexMoves(gameID string) ([]engine.Move, error) {
	return gs.manager.PawnKnightApexMoves(gameID)
}

func (gs *GameService) CheckingMoves(gameID string) ([]engine.Move, error) {
	return gs.manager.CheckingMoves(gameID)
}

func (gs *GameService) MichaelTalMoves(gameID string) ([]engine.Move, error) {
	return gs.manager.MichaelTalMoves(gameID)
}

func (gs *GameService) BoardView(gameID string) (engine.BoardSnapshot, error) {
	return gs.manager.BoardView(gameID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.manager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.manager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.manager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.manager.UnregisterMatchmakingChannel(playerID)
}
