package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/contentally/ally/internal/models"
)

// SQLiteStore keeps snapshots in the snapshots table of a SQLite file
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// LoadSnapshot returns the stored document for key
func (s *SQLiteStore) LoadSnapshot(key string) ([]byte, bool, error) {
	var snapshot models.Snapshot
	err := s.db.Where("collection = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil // Nothing stored yet is not an error
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(snapshot.Data), true, nil
}

// SaveSnapshot inserts or replaces the document for key
func (s *SQLiteStore) SaveSnapshot(key string, data []byte) error {
	snapshot := models.Snapshot{
		Collection: key,
		Data:       string(data),
		UpdatedAt:  time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snapshot).Error
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	return Close(s.db)
}
