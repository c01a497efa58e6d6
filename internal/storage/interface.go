package storage

import "github.com/julianstephens/intake/internal/models"

// Provider is the persistence surface of the application. Days are
// YYYY-MM-DD strings in local time.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Ledger entries
	AddEntry(models.LedgerEntry) error
	GetEntry(id string) (models.LedgerEntry, error)
	GetEntriesForDay(day string) ([]models.LedgerEntry, error)
	GetEntries(startDay, endDay string) ([]models.LedgerEntry, error)
	GetAllEntries() ([]models.LedgerEntry, error)
	DeleteEntry(id string) error

	// Body logs
	AddBodyLog(models.BodyLog) error
	GetBodyLogs() ([]models.BodyLog, error)
	GetBodyLogsForDay(day string) ([]models.BodyLog, error)

	// Utils
	GetConfigPath() string
}
