package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

// GetProfile returns the stored profile. A fresh database yields the
// zero profile with SetupDone false rather than an error, so callers
// can branch straight into the setup flow.
func (s *Store) GetProfile() (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT gender, weight_kg, height_cm, goal, lifestyle, setup_done
		FROM profile WHERE id = 1`)

	var p models.Profile
	var gender, goal, lifestyle string

	err := row.Scan(&gender, &p.WeightKg, &p.HeightCm, &goal, &lifestyle, &p.SetupDone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, nil
		}
		return models.Profile{}, err
	}

	p.Gender = constants.Gender(gender)
	p.Goal = constants.Goal(goal)
	p.Lifestyle = constants.Lifestyle(lifestyle)
	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO profile (id, gender, weight_kg, height_cm, goal, lifestyle, setup_done)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		string(p.Gender), p.WeightKg, p.HeightCm, string(p.Goal), string(p.Lifestyle), p.SetupDone,
	)
	return err
}
