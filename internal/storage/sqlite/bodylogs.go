package sqlite

import (
	"database/sql"
	"time"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

func (s *Store) AddBodyLog(b models.BodyLog) error {
	_, err := s.db.Exec(`
		INSERT INTO body_logs (id, image_path, note, taken_at, day)
		VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.ImagePath, b.Note,
		b.TakenAt.Format(time.RFC3339), b.TakenAt.Format(constants.DateFormat),
	)
	return err
}

func (s *Store) GetBodyLogs() ([]models.BodyLog, error) {
	rows, err := s.db.Query(`SELECT id, image_path, note, taken_at FROM body_logs ORDER BY taken_at`)
	if err != nil {
		return nil, err
	}
	return collectBodyLogs(rows)
}

func (s *Store) GetBodyLogsForDay(day string) ([]models.BodyLog, error) {
	rows, err := s.db.Query(`SELECT id, image_path, note, taken_at FROM body_logs WHERE day = ? ORDER BY taken_at`, day)
	if err != nil {
		return nil, err
	}
	return collectBodyLogs(rows)
}

func collectBodyLogs(rows *sql.Rows) ([]models.BodyLog, error) {
	defer rows.Close()

	var logs []models.BodyLog
	for rows.Next() {
		var b models.BodyLog
		var takenAt string
		if err := rows.Scan(&b.ID, &b.ImagePath, &b.Note, &takenAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
			b.TakenAt = t
		}
		logs = append(logs, b)
	}
	return logs, rows.Err()
}
