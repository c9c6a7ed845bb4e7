package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/tether-chess/tether-chess/internal/engine"
	"github.com/tether-chess/tether-chess/internal/store"
)

// ErrGameNotFound is returned for any operation on an unknown game ID.
var ErrGameNotFound = errors.New("game not found")

// GameManager owns every live GameSession plus the matchmaking queue,
// adapted from the teacher's service.GameManager to wrap GameSession
// instead of model.Game.
type GameManager struct {
	games            map[string]*GameSession
	queue            *Queue
	matchingChannels map[string]chan string
	store            *store.Store
	mu               sync.RWMutex
}

// NewGameManager starts a GameManager and its matchmaking goroutine. st
// may be nil to disable persistence.
func NewGameManager(st *store.Store) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*GameSession),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            st,
	}
	go gm.processMatchmaking()
	return gm
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		if gm.queue.Size() >= 2 {
			player1, player2 := gm.queue.GetNextPair()

			gameID := uuid.New().String()
			session := NewGameSession(gameID, gm.store)

			p1Color, err := session.AddPlayer(player1.ID)
			if err != nil {
				fmt.Println("error adding player to game", err)
				gm.mu.Unlock()
				continue
			}
			p2Color, err := session.AddPlayer(player2.ID)
			if err != nil {
				fmt.Println("error adding player to game", err)
				gm.mu.Unlock()
				continue
			}
			gm.games[gameID] = session

			gm.sendMatchFound(player1.ID, MatchFoundEvent{GameID: gameID, Color: p1Color})
			gm.sendMatchFound(player2.ID, MatchFoundEvent{GameID: gameID, Color: p2Color})
		}
		gm.mu.Unlock()
	}
}

func (gm *GameManager) sendMatchFound(playerID string, event MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	data, err := json.Marshal(event)
	if err != nil {
		return false
	}
	select {
	case ch <- string(data):
		delete(gm.matchingChannels, playerID)
		close(ch)
		return true
	default:
		return false
	}
}

// RegisterMatchmakingChannel registers ch to receive playerID's match
// notification, closing and replacing any existing channel.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel drops playerID's matchmaking channel
// without closing it; the channel's creator owns that.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

// JoinMatchmaking enqueues playerID.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.queue.AddPlayer(Player{ID: playerID})
}

// CreateGame creates a fresh session under gameID.
func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = NewGameSession(gameID, gm.store)
	return nil
}

// RestoreGames rebuilds in-memory sessions for every game persisted in
// the manager's store, replaying each one's history through a fresh
// engine. Called once at startup so a restarted server resumes
// in-flight games instead of losing them.
func (gm *GameManager) RestoreGames() (int, error) {
	if gm.store == nil {
		return 0, nil
	}
	ids, err := gm.store.List()
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, id := range ids {
		snap, err := gm.store.Load(id)
		if err != nil {
			fmt.Println("failed to load persisted game", id, err)
			continue
		}
		session, err := RestoreGameSession(id, snap, gm.store)
		if err != nil {
			fmt.Println("failed to restore persisted game", id, err)
			continue
		}
		gm.mu.Lock()
		gm.games[id] = session
		gm.mu.Unlock()
		restored++
	}
	return restored, nil
}

// GetGame returns the session for gameID.
func (gm *GameManager) GetGame(gameID string) (*GameSession, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

// AddPlayerToGame seats playerID in gameID.
func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (string, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

// View returns gameID's current GameStateView.
func (gm *GameManager) View(gameID string, selected *engine.Square) (GameStateView, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return GameStateView{}, err
	}
	return session.View(selected), nil
}

// MakeMove applies a move to gameID.
func (gm *GameManager) MakeMove(gameID string, from, to engine.Square, promotion *engine.PieceKind) (engine.MoveResult, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return engine.MoveResult{}, err
	}
	return session.MakeMove(from, to, promotion)
}

// LegalMovesFrom returns the legal moves for the piece on sq in gameID.
func (gm *GameManager) LegalMovesFrom(gameID string, sq engine.Square) ([]engine.Move, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMovesFrom(sq), nil
}

// TransporterMoves returns gameID's legal transporter moves.
func (gm *GameManager) TransporterMoves(gameID string) ([]engine.Move, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.TransporterMoves(), nil
}

// PawnKnightApexMoves returns gameID's legal Pawn-Knight Apex moves.
func (gm *GameManager) PawnKnightApexMoves(gameID string) ([]engine.Move, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.PawnKnightApexMoves(), nil
}

// CheckingMoves returns gameID's legal checking moves.
func (gm *GameManager) CheckingMoves(gameID string) ([]engine.Move, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.CheckingMoves(), nil
}

// MichaelTalMoves returns gameID's legal Michael Tal opening moves.
func (gm *GameManager) MichaelTalMoves(gameID string) ([]engine.Move, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.MichaelTalMoves(), nil
}

// BoardView returns a display-safe snapshot of gameID's position.
func (gm *GameManager) BoardView(gameID string) (engine.BoardSnapshot, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return engine.BoardSnapshot{}, err
	}
	return session.BoardView(), nil
}

// RegisterConnection attaches a WebSocket connection to gameID.
func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

// UnregisterConnection detaches playerID's connection from gameID.
func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID)
}
