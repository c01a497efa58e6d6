package models

import "github.com/julianstephens/intake/internal/constants"

// Profile holds the physiological profile the calorie target is derived
// from. It is replaced wholesale by the setup and settings flows, never
// mutated field by field.
type Profile struct {
	Gender    constants.Gender    `json:"gender"`
	WeightKg  float64             `json:"weight_kg"`
	HeightCm  float64             `json:"height_cm"`
	Goal      constants.Goal      `json:"goal"`
	Lifestyle constants.Lifestyle `json:"lifestyle"`
	SetupDone bool                `json:"setup_done"`
}

// Valid reports whether the profile carries plausible body metrics.
func (p Profile) Valid() bool {
	if p.Gender != constants.GenderMale && p.Gender != constants.GenderFemale {
		return false
	}
	if p.WeightKg < 10 || p.WeightKg > 400 {
		return false
	}
	if p.HeightCm < 50 || p.HeightCm > 250 {
		return false
	}
	return true
}
