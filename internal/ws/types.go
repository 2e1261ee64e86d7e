package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeMove   MessageType = "move"
	MessageTypeSelect MessageType = "select"
	MessageTypeUndo   MessageType = "undo"
	MessageTypeReset  MessageType = "reset"
	MessageTypePause  MessageType = "pause"
	MessageTypeResume MessageType = "resume"

	// server -> client
	MessageTypeGameState     MessageType = "gameState"
	MessageTypePossibleMoves MessageType = "possibleMoves"
	MessageTypeError         MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
