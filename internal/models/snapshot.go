package models

import (
	"time"
)

// Snapshot is one persisted JSON document, keyed by collection name
type Snapshot struct {
	Collection string    `gorm:"primaryKey" json:"collection"`
	Data       string    `gorm:"type:text;not null" json:"data"`
	UpdatedAt  time.Time `json:"updated_at"`
}
