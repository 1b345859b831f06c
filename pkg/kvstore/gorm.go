package kvstore

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the backing kv_entries table.
type Entry struct {
	Key   string `gorm:"primaryKey;type:varchar(255)"`
	Value []byte `gorm:"type:jsonb;not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

type gormStore struct {
	db *gorm.DB
}

// NewGorm returns a Store backed by a kv_entries table. The table is
// auto-migrated on construction.
func NewGorm(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(key string, dest interface{}) error {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(entry.Value, dest)
}

func (s *gormStore) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := Entry{Key: key, Value: raw}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

func (s *gormStore) Remove(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}
