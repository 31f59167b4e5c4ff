package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/flashinvoice/flashinvoice/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Slot keys. Names carried over from the original storage layout so an
// exported database stays recognizable.
const (
	DraftKey    = "fi-draft-v1"
	HistoryKey  = "fi-invoices-v1"
	SettingsKey = "fi-settings-v1"
	LangKey     = "fi-lang"
	ThemeKey    = "fi-theme"
)

// Slot is one named JSON (or bare string) value. The whole persistence model
// is overwrite-on-save, no merge, no per-slot versioning beyond the key name.
type Slot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}

// Store owns the slots table on a SQLite file (default) or Postgres database.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn, picks the driver from its shape (URL style means
// Postgres, anything else is treated as a SQLite path), and migrates the
// slots table.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("empty storage DSN")
	}
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	var db *gorm.DB
	var err error
	if isPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("storage ping failed: %w", pingErr)
	}
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("automigrate slots: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB { return s.db }

// Get returns the slot value. Any read failure counts as absent; corruption
// recovery happens at the callers by substituting defaults.
func (s *Store) Get(key string) (string, bool) {
	var slot Slot
	if err := s.db.First(&slot, "key = ?", key).Error; err != nil {
		return "", false
	}
	return slot.Value, true
}

// Put overwrites the slot value, inserting the slot on first write.
func (s *Store) Put(key, value string) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&slot).Error
}

// Delete removes the slot; deleting an absent slot is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Delete(&Slot{}, "key = ?", key).Error
}
