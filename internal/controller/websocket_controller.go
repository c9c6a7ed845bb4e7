package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/tether-chess/tether-chess/internal/engine"
	"github.com/tether-chess/tether-chess/internal/service"
	"github.com/tether-chess/tether-chess/internal/ws"
)

// wsMoveRequest is the wire shape of a "move" message payload: squares
// decode as structured {file,rank} objects rather than algebraic text,
// per SPEC_FULL.md's notation-adapter note.
type wsMoveRequest struct {
	From      engine.Square     `json:"from"`
	To        engine.Square     `json:"to"`
	Promotion *engine.PieceKind `json:"promotion,omitempty"`
}

// WebSocketController handles the live-play connection, dispatching
// decoded messages onto GameService the same way the teacher's
// controller.WebSocketController does, now validating against
// engine.MoveResult.OK instead of hand-rolled legality checks.
type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection is called when a new WebSocket connection is established.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				continue
			}

			if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
				log.Printf("handle error: %v", err)
				wsc.sendError(c, err.Error())
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req wsMoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		result, err := wsc.gameService.HandleMove(gameID, req.From, req.To, req.Promotion)
		if err != nil {
			return err
		}
		if !result.OK {
			return fmt.Errorf("%s", result.Message)
		}
		return nil

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, err := json.Marshal(errorMsg)
	if err != nil {
		return
	}
	c.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: json.RawMessage(payload)})
}
