// Package tripstore persists on-device planner state in a local SQLite file.
// Today that is a single value: the id of the trip the user last created or
// joined, so the app can reopen it on the next launch.
package tripstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// tripIDKey is the storage key of the current trip id.
const tripIDKey = "planner:trip-id"

// setting is one key-value row.
type setting struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (setting) TableName() string { return "device_storage" }

// Store is the device key-value store.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("tripstore.Open: create db directory: %w", err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("tripstore.Open: open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&setting{}); err != nil {
		return nil, fmt.Errorf("tripstore.Open: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save records tripID as the current trip, replacing any previous one.
func (s *Store) Save(ctx context.Context, tripID uuid.UUID) error {
	row := setting{Name: tripIDKey, Value: tripID.String(), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("tripstore.Store.Save: %w", err)
	}
	return nil
}

// Get returns the current trip id. ok is false when none is stored.
// A stored value that is not a UUID is treated as absent.
func (s *Store) Get(ctx context.Context) (tripID uuid.UUID, ok bool, err error) {
	var row setting
	err = s.db.WithContext(ctx).Where("name = ?", tripIDKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("tripstore.Store.Get: %w", err)
	}
	id, perr := uuid.Parse(row.Value)
	if perr != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Remove forgets the current trip. Removing when nothing is stored is fine.
func (s *Store) Remove(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("name = ?", tripIDKey).Delete(&setting{}).Error; err != nil {
		return fmt.Errorf("tripstore.Store.Remove: %w", err)
	}
	return nil
}
