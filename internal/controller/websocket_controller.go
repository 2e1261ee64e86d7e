package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/model"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/service"
	"github.com/shreekantyadav007/ReactChessTypeScript/internal/ws"
)

var ErrUnknownMessageType = errors.New("unknown message type")

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

type selectPayload struct {
	Square rules.Square `json:"square"`
}

type possibleMovesPayload struct {
	Square rules.Square   `json:"square"`
	Moves  []rules.Square `json:"moves"`
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals("clientID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
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
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(gameID, clientID, "invalid message")
			continue
		}

		reply, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			log.Printf("game %s: handle %s: %v", gameID, msg.Type, err)
			wsc.sendError(gameID, clientID, err.Error())
			continue
		}
		if reply != nil {
			if err := wsc.gameService.Send(gameID, clientID, *reply); err != nil {
				log.Printf("game %s: reply to %s: %v", gameID, clientID, err)
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, clientID)
}

// handleMessage applies one client message. State changes reach the client
// through the game's broadcast; only selections produce a direct reply.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		return nil, wsc.gameService.HandleMove(gameID, move)

	case ws.MessageTypeSelect:
		var sel selectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return nil, err
		}
		moves, err := wsc.gameService.PossibleMoves(gameID, sel.Square)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypePossibleMoves, possibleMovesPayload{Square: sel.Square, Moves: moves})
		if err != nil {
			return nil, err
		}
		return &reply, nil

	case ws.MessageTypeUndo:
		return nil, wsc.gameService.Undo(gameID)
	case ws.MessageTypeReset:
		return nil, wsc.gameService.Reset(gameID)
	case ws.MessageTypePause:
		return nil, wsc.gameService.Pause(gameID)
	case ws.MessageTypeResume:
		return nil, wsc.gameService.Resume(gameID)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, clientID, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := wsc.gameService.Send(gameID, clientID, msg); err != nil {
		log.Printf("game %s: send error to %s: %v", gameID, clientID, err)
	}
}
