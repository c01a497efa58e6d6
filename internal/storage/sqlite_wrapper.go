package storage

import (
	"database/sql"

	"github.com/julianstephens/intake/internal/models"
	"github.com/julianstephens/intake/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

// Lifecycle methods
func (s *SQLiteStore) Init() error           { return s.store.Init() }
func (s *SQLiteStore) Load() error           { return s.store.Load() }
func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

// GetDB exposes the underlying connection for diagnostics and tests.
func (s *SQLiteStore) GetDB() *sql.DB { return s.store.GetDB() }

// Profile methods
func (s *SQLiteStore) GetProfile() (models.Profile, error) { return s.store.GetProfile() }
func (s *SQLiteStore) SaveProfile(p models.Profile) error  { return s.store.SaveProfile(p) }

// Entry methods
func (s *SQLiteStore) AddEntry(e models.LedgerEntry) error          { return s.store.AddEntry(e) }
func (s *SQLiteStore) GetEntry(id string) (models.LedgerEntry, error) { return s.store.GetEntry(id) }
func (s *SQLiteStore) GetEntriesForDay(day string) ([]models.LedgerEntry, error) {
	return s.store.GetEntriesForDay(day)
}
func (s *SQLiteStore) GetEntries(startDay, endDay string) ([]models.LedgerEntry, error) {
	return s.store.GetEntries(startDay, endDay)
}
func (s *SQLiteStore) GetAllEntries() ([]models.LedgerEntry, error) { return s.store.GetAllEntries() }
func (s *SQLiteStore) DeleteEntry(id string) error                  { return s.store.DeleteEntry(id) }

// Body log methods
func (s *SQLiteStore) AddBodyLog(b models.BodyLog) error      { return s.store.AddBodyLog(b) }
func (s *SQLiteStore) GetBodyLogs() ([]models.BodyLog, error) { return s.store.GetBodyLogs() }
func (s *SQLiteStore) GetBodyLogsForDay(day string) ([]models.BodyLog, error) {
	return s.store.GetBodyLogsForDay(day)
}
