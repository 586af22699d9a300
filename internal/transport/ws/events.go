package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/domain"
)

// Client → server frames are decoded once into a tagged variant and matched
// exhaustively by the session loop, so an unknown kind is an explicit case
// rather than a silent fallthrough.

var (
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrUnknownEventKind = errors.New("unknown event kind")
)

type ClientEvent interface {
	clientEvent()
}

// TypingEvent is a keystroke-level ping. Never persisted.
type TypingEvent struct{}

// ChatMessageEvent asks the server to persist and broadcast a message.
type ChatMessageEvent struct {
	Body string
}

func (TypingEvent) clientEvent()      {}
func (ChatMessageEvent) clientEvent() {}

type clientFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ParseClientEvent decodes an inbound frame. Callers drop and log on error;
// a bad frame never closes the connection.
func ParseClientEvent(data []byte) (ClientEvent, error) {
	var frame clientFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch frame.Type {
	case "typing":
		return TypingEvent{}, nil
	case "chat_message":
		return ChatMessageEvent{Body: frame.Message}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, frame.Type)
	}
}

// --- Server → client frames (wire-stable) ---

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type TypingFrame struct {
	Type string `json:"type"`
	User string `json:"user"`
}

func NewTypingFrame(profileID uuid.UUID) TypingFrame {
	return TypingFrame{Type: "typing", User: profileID.String()}
}

type StatusFrame struct {
	Type   string `json:"type"`
	User   string `json:"user"`
	Status string `json:"status"`
}

func NewStatusFrame(profileID uuid.UUID, status string) StatusFrame {
	return StatusFrame{Type: "status", User: profileID.String(), Status: status}
}

type ChatMessageFrame struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	SenderID  string `json:"sender_id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func NewChatMessageFrame(msg *domain.Message) ChatMessageFrame {
	return ChatMessageFrame{
		Type:      "chat_message",
		ID:        msg.ID,
		SenderID:  msg.SenderID.String(),
		Message:   msg.Body,
		Timestamp: msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
