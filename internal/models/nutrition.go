package models

import (
	"time"

	"github.com/julianstephens/intake/internal/constants"
)

// Macros is a protein/carbs/fat triple in grams (or gram targets).
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// Add returns the component-wise sum of two macro sets.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fat:     m.Fat + o.Fat,
	}
}

// Estimate is one set of nutrition facts for a single food image or manual
// entry. Immutable once created; exercise entries carry negative calories.
type Estimate struct {
	Name       string    `json:"name"`
	Calories   int       `json:"calories"`
	Macros     Macros    `json:"macros"`
	Confidence float64   `json:"confidence"` // 0-1
	Evaluation string    `json:"evaluation"`
	CapturedAt time.Time `json:"captured_at"`
}

// ActivityDetail describes an exercise entry.
type ActivityDetail struct {
	Environment string `json:"environment"` // indoor | outdoor
	DurationMin int    `json:"duration_min"`
}

// LedgerEntry is a confirmed, permanent record contributing to daily
// totals. Created only by explicit confirmation, never mutated after.
type LedgerEntry struct {
	ID       string              `json:"id"`
	Estimate Estimate            `json:"estimate"`
	Kind     constants.EntryKind `json:"kind"`
	LoggedAt time.Time           `json:"logged_at"`
	Activity *ActivityDetail     `json:"activity,omitempty"`
}

// BodyLog is one body-composition photo with a self-evaluation note.
type BodyLog struct {
	ID        string    `json:"id"`
	ImagePath string    `json:"image_path"`
	Note      string    `json:"note"`
	TakenAt   time.Time `json:"taken_at"`
}
