package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/tether-chess/tether-chess/internal/engine"
	"github.com/tether-chess/tether-chess/internal/store"
	"github.com/tether-chess/tether-chess/internal/ws"
)

var (
	// ErrGameFull is returned by AddPlayer once both seats are taken.
	ErrGameFull = errors.New("game is full")
	// ErrNotAuthorized is returned when a connection attempt comes from
	// neither a seated player nor a spectator-eligible request.
	ErrNotAuthorized = errors.New("not authorized to join this game")
)

const startingClock = 600 * time.Second

// GameConnections guards the set of live WebSocket connections for one
// game, independent of the game-state mutex, so a slow write to one
// client cannot block move processing for others -- kept from the
// teacher's model.GameConnections.
type GameConnections struct {
	conns map[string]*websocket.Conn
	mu    sync.RWMutex
}

func newGameConnections() *GameConnections {
	return &GameConnections{conns: make(map[string]*websocket.Conn)}
}

// GameSession wraps one core engine.Engine with the service-layer
// concerns the core is not allowed to know about: identity, clocks,
// connections, and persistence. It never reimplements move legality --
// every rule decision is delegated to Engine.
type GameSession struct {
	ID          string
	mu          sync.Mutex
	engine      *engine.Engine
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	players     struct {
		White ClientPlayer
		Black ClientPlayer
	}
	lastMove *engine.Move
	store    *store.Store
}

// NewGameSession creates a fresh session with a new engine in the
// standard starting position. st may be nil, in which case moves are
// not persisted.
func NewGameSession(id string, st *store.Store) *GameSession {
	return &GameSession{
		ID:          id,
		engine:      engine.NewGame(),
		connections: newGameConnections(),
		whiteClock:  NewClock(startingClock),
		blackClock:  NewClock(startingClock),
		store:       st,
	}
}

// RestoreGameSession reconstructs a session by replaying a persisted
// snapshot's history through a fresh engine, the only reconstruction
// path the core exposes.
func RestoreGameSession(id string, snap store.Snapshot, st *store.Store) (*GameSession, error) {
	eng, err := store.Replay(snap)
	if err != nil {
		return nil, err
	}
	return &GameSession{
		ID:          id,
		engine:      eng,
		connections: newGameConnections(),
		whiteClock:  NewClock(startingClock),
		blackClock:  NewClock(startingClock),
		store:       st,
	}, nil
}

// AddPlayer seats playerID as White if the seat is open, else Black,
// else returns ErrGameFull.
func (s *GameSession) AddPlayer(playerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.players.White.ID == "" {
		s.players.White = ClientPlayer{ID: playerID, Color: "white", TimeLeft: int(startingClock / time.Millisecond)}
		return "white", nil
	}
	if s.players.Black.ID == "" {
		s.players.Black = ClientPlayer{ID: playerID, Color: "black", TimeLeft: int(startingClock / time.Millisecond)}
		return "black", nil
	}
	return "", ErrGameFull
}

// IsPlayerInGame reports whether playerID occupies either seat.
func (s *GameSession) IsPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPlayerInGame(playerID)
}

func (s *GameSession) isPlayerInGame(playerID string) bool {
	return (s.players.White.ID != "" && s.players.White.ID == playerID) ||
		(s.players.Black.ID != "" && s.players.Black.ID == playerID)
}

// CanSpectate reports whether at least one seat is still open.
func (s *GameSession) CanSpectate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players.White.ID == "" || s.players.Black.ID == ""
}

// MakeMove applies a move for the side whose turn it is: it stops the
// mover's clock, delegates entirely to engine.Engine.Apply, starts the
// opponent's clock, persists the resulting history, and broadcasts the
// updated view to every connected client -- structurally identical to
// the teacher's Game.MakeMove -> executeMove -> broadcastState pipeline,
// minus the hand-rolled legality checks the teacher inlined there.
func (s *GameSession) MakeMove(from, to engine.Square, promotion *engine.PieceKind) (engine.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	movingColor := state.WhiteToMove
	if movingColor {
		s.whiteClock.Stop()
	} else {
		s.blackClock.Stop()
	}

	result := s.engine.Apply(from, to, promotion)
	if !result.OK {
		if movingColor {
			s.whiteClock.Start()
		} else {
			s.blackClock.Start()
		}
		return result, nil
	}

	if movingColor {
		s.blackClock.Start()
	} else {
		s.whiteClock.Start()
	}
	s.lastMove = result.Move
	s.players.White.TimeLeft = int(s.whiteClock.TimeLeft() / time.Millisecond)
	s.players.Black.TimeLeft = int(s.blackClock.TimeLeft() / time.Millisecond)

	if s.store != nil {
		snap := store.Snapshot{Board: s.engine.BoardView(), History: s.engine.History()}
		if err := s.store.Save(s.ID, snap); err != nil {
			fmt.Println("failed to persist game", s.ID, err)
		}
	}

	go s.broadcastState()
	return result, nil
}

// GameStateView returns the current state of the game in the JSON shape
// served to clients, mirroring the teacher's model.GameState field set.
type GameStateView struct {
	Board           engine.BoardSnapshot `json:"board"`
	ToMove          string               `json:"toMove"`
	IsCheck         bool                 `json:"isCheck"`
	GameOverReason  string               `json:"gameOverReason"`
	LastMove        *engine.Move         `json:"lastMove"`
	RankMates       []engine.Square      `json:"rankMates,omitempty"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// View builds a GameStateView snapshot of the session's current state.
// If selected is non-nil, RankMates is populated for that square.
func (s *GameSession) View(selected *engine.Square) GameStateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	toMove := "white"
	if !state.WhiteToMove {
		toMove = "black"
	}

	view := GameStateView{
		Board:          s.engine.BoardView(),
		ToMove:         toMove,
		IsCheck:        state.InCheck,
		GameOverReason: state.Terminal.String(),
		LastMove:       s.lastMove,
	}
	view.Players.White = s.players.White
	view.Players.Black = s.players.Black

	if selected != nil {
		view.RankMates = s.engine.RankMatesOf(*selected)
	}
	return view
}

// LegalMovesFrom returns the legal moves for the piece on sq.
func (s *GameSession) LegalMovesFrom(sq engine.Square) []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LegalMovesFrom(sq)
}

// TransporterMoves returns every legal move that borrows a rank-mate's
// movement.
func (s *GameSession) TransporterMoves() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.TransporterMoves()
}

// PawnKnightApexMoves returns every legal Pawn-Knight Apex promotion.
func (s *GameSession) PawnKnightApexMoves() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.PawnKnightApexMoves()
}

// CheckingMoves returns every legal move that gives check.
func (s *GameSession) CheckingMoves() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CheckingMoves()
}

// MichaelTalMoves returns the opening's namesake transporter moves.
func (s *GameSession) MichaelTalMoves() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.MichaelTalMoves()
}

// BoardView returns a display-safe snapshot of the current position.
func (s *GameSession) BoardView() engine.BoardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.BoardView()
}

// RegisterConnection attaches conn to the session for playerID, if
// authorized, and immediately pushes the current state.
func (s *GameSession) RegisterConnection(playerID string, conn *websocket.Conn) error {
	s.mu.Lock()
	authorized := s.isPlayerInGame(playerID) || s.players.White.ID == "" || s.players.Black.ID == ""
	s.mu.Unlock()
	if !authorized {
		return ErrNotAuthorized
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.conns[playerID]; exists {
		s.connections.mu.Unlock()
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"))
		conn.Close()
		return nil
	}
	s.connections.conns[playerID] = conn
	s.connections.mu.Unlock()

	go s.broadcastState()
	return nil
}

// UnregisterConnection drops playerID's connection, if it is still the
// current one.
func (s *GameSession) UnregisterConnection(playerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	delete(s.connections.conns, playerID)
}

func (s *GameSession) broadcastState() {
	s.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(s.connections.conns))
	for id, c := range s.connections.conns {
		active[id] = c
	}
	s.connections.mu.RUnlock()

	view := s.View(nil)
	payload, err := json.Marshal(view)
	if err != nil {
		fmt.Println("failed to marshal game state", s.ID, err)
		return
	}

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}); err != nil {
			fmt.Println("failed to send state to player", playerID, err)
			s.connections.mu.Lock()
			delete(s.connections.conns, playerID)
			s.connections.mu.Unlock()
		}
	}
}
