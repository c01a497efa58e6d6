package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

const entryColumns = `id, kind, name, calories, protein, carbs, fat, confidence, evaluation,
	       captured_at, logged_at, activity_environment, activity_duration_min`

func (s *Store) AddEntry(e models.LedgerEntry) error {
	var activityEnv sql.NullString
	var activityDur sql.NullInt64
	if e.Activity != nil {
		activityEnv = sql.NullString{String: e.Activity.Environment, Valid: true}
		activityDur = sql.NullInt64{Int64: int64(e.Activity.DurationMin), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (
			id, kind, name, calories, protein, carbs, fat, confidence, evaluation,
			captured_at, logged_at, day, activity_environment, activity_duration_min
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Estimate.Name, e.Estimate.Calories,
		e.Estimate.Macros.Protein, e.Estimate.Macros.Carbs, e.Estimate.Macros.Fat,
		e.Estimate.Confidence, e.Estimate.Evaluation,
		e.Estimate.CapturedAt.Format(time.RFC3339), e.LoggedAt.Format(time.RFC3339),
		e.LoggedAt.Format(constants.DateFormat),
		activityEnv, activityDur,
	)
	return err
}

func (s *Store) GetEntry(id string) (models.LedgerEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return models.LedgerEntry{}, fmt.Errorf("entry with id %s not found", id)
	}
	return e, err
}

func (s *Store) GetEntriesForDay(day string) ([]models.LedgerEntry, error) {
	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM entries WHERE day = ? ORDER BY logged_at`, day)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) GetEntries(startDay, endDay string) ([]models.LedgerEntry, error) {
	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM entries WHERE day >= ? AND day <= ? ORDER BY logged_at`,
		startDay, endDay)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) GetAllEntries() ([]models.LedgerEntry, error) {
	rows, err := s.db.Query(`SELECT ` + entryColumns + ` FROM entries ORDER BY logged_at`)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry with id %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	var kind, capturedAt, loggedAt string
	var activityEnv sql.NullString
	var activityDur sql.NullInt64

	err := row.Scan(
		&e.ID, &kind, &e.Estimate.Name, &e.Estimate.Calories,
		&e.Estimate.Macros.Protein, &e.Estimate.Macros.Carbs, &e.Estimate.Macros.Fat,
		&e.Estimate.Confidence, &e.Estimate.Evaluation,
		&capturedAt, &loggedAt, &activityEnv, &activityDur,
	)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	e.Kind = constants.EntryKind(kind)
	if t, err := time.Parse(time.RFC3339, capturedAt); err == nil {
		e.Estimate.CapturedAt = t
	}
	if t, err := time.Parse(time.RFC3339, loggedAt); err == nil {
		e.LoggedAt = t
	}
	if activityEnv.Valid {
		e.Activity = &models.ActivityDetail{
			Environment: activityEnv.String,
			DurationMin: int(activityDur.Int64),
		}
	}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
