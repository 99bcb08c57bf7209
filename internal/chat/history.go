// Package chat keeps the conversation log of AI requests and their results.
package chat

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contentally/ally/internal/db"
	"github.com/contentally/ally/internal/models"
)

// MaxMessages bounds the stored history; the oldest messages go first
const MaxMessages = 500

// History is the persisted, append-only chat log
type History struct {
	mu       sync.Mutex
	store    db.SnapshotStore
	logger   *zap.Logger
	messages []models.ChatMessage
}

func New(store db.SnapshotStore, logger *zap.Logger) *History {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{
		store:    store,
		logger:   logger.Named("chat"),
		messages: []models.ChatMessage{},
	}
}

// Load reads the stored history. An unreadable snapshot starts an empty log.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	loaded, found, err := db.LoadJSON[models.ChatMessage](h.store, db.KeyChat)
	if err != nil {
		h.logger.Error("error loading chat history, starting empty", zap.Error(err))
		h.messages = []models.ChatMessage{}
		return nil
	}
	if !found || loaded == nil {
		loaded = []models.ChatMessage{}
	}
	h.messages = loaded
	return nil
}

// Add appends one message
func (h *History) Add(msg models.ChatMessage) error {
	return h.AddMany([]models.ChatMessage{msg})
}

// AddMany appends messages in order with a single write
func (h *History) AddMany(msgs []models.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, msgs...)
	if over := len(h.messages) - MaxMessages; over > 0 {
		h.messages = append([]models.ChatMessage{}, h.messages[over:]...)
	}
	return h.saveLocked()
}

// Clear drops every message
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = []models.ChatMessage{}
	return h.saveLocked()
}

// Messages returns a copy of the log, oldest first
func (h *History) Messages() []models.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.ChatMessage{}, h.messages...)
}

func (h *History) saveLocked() error {
	if err := db.SaveJSON(h.store, db.KeyChat, h.messages); err != nil {
		h.logger.Error("error saving chat history", zap.Error(err))
		return err
	}
	return nil
}

// UserMessage builds a message typed by the user
func UserMessage(content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		Type:      models.MessageText,
	}
}

// AssistantMessage builds an assistant reply. data, when not nil, is the
// structured flow output kept alongside the readable content.
func AssistantMessage(typ models.MessageType, content string, data any) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Type:      typ,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return models.ChatMessage{}, fmt.Errorf("failed to encode %s data: %w", typ, err)
		}
		msg.Data = raw
	}
	return msg, nil
}

// ErrorMessage builds an assistant message reporting a failed request
func ErrorMessage(err error) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   "Sorry, I encountered an error: " + err.Error(),
		Timestamp: time.Now(),
		Type:      models.MessageError,
	}
}
