package db

import (
	"encoding/json"
	"fmt"
)

// Snapshot keys for the persisted collections
const (
	KeyTasks  = "tasks"
	KeyHabits = "habits"
	KeyChat   = "chat"
)

// SnapshotStore persists whole-collection JSON documents by key.
// Implementations never keep references to the decoded collections.
type SnapshotStore interface {
	LoadSnapshot(key string) (data []byte, found bool, err error)
	SaveSnapshot(key string, data []byte) error
}

// LoadJSON reads the snapshot under key and decodes it as a JSON array.
// found is false when nothing was stored yet.
func LoadJSON[T any](store SnapshotStore, key string) (items []T, found bool, err error) {
	data, found, err := store.LoadSnapshot(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found {
		return nil, false, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, true, fmt.Errorf("failed to decode %s snapshot: %w", key, err)
	}
	return items, true, nil
}

// SaveJSON encodes items as a JSON array and stores it under key
func SaveJSON[T any](store SnapshotStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", key, err)
	}
	if err := store.SaveSnapshot(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
