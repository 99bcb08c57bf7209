package models

import (
	"encoding/json"
	"time"
)

// Role identifies who authored a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// MessageType tags assistant messages with the capability that produced them
type MessageType string

const (
	MessageText        MessageType = "text"
	MessageSummary     MessageType = "summary"
	MessageImprovement MessageType = "improvement"
	MessagePlan        MessageType = "plan"
	MessageTranslation MessageType = "translation"
	MessageOCR         MessageType = "ocr"
	MessageAnswer      MessageType = "answer"
	MessageResearch    MessageType = "research"
	MessageContent     MessageType = "content"
	MessageError       MessageType = "error"
)

// ChatMessage is one entry of the chat history
type ChatMessage struct {
	ID        string          `json:"id"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Type      MessageType     `json:"type,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}
