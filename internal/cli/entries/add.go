package entries

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

// AddCmd manually logs a food or exercise entry without a photo.
type AddCmd struct {
	Name     string `arg:"" help:"Food or activity name."`
	Calories int    `arg:"" help:"Calories consumed (food) or burned (exercise)."`

	Exercise    bool   `help:"Log as an exercise entry; calories are subtracted from the day."`
	Environment string `help:"Exercise environment." enum:"indoor,outdoor," default:""`
	Duration    int    `help:"Exercise duration in minutes."`

	Protein int `help:"Protein in grams."`
	Carbs   int `help:"Carbs in grams."`
	Fat     int `help:"Fat in grams."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if c.Calories < 0 {
		return fmt.Errorf("calories must be non-negative; use --exercise to subtract from the day")
	}

	now := time.Now()
	entry := models.LedgerEntry{
		ID: uuid.New().String(),
		Estimate: models.Estimate{
			Name:       c.Name,
			Calories:   c.Calories,
			Macros:     models.Macros{Protein: c.Protein, Carbs: c.Carbs, Fat: c.Fat},
			Confidence: 1,
			CapturedAt: now,
		},
		Kind:     constants.EntryFood,
		LoggedAt: now,
	}

	if c.Exercise {
		// Exercise burns calories, so the ledger carries them negated.
		entry.Kind = constants.EntryExercise
		entry.Estimate.Calories = -c.Calories
		entry.Estimate.Macros = models.Macros{}
		env := c.Environment
		if env == "" {
			env = "indoor"
		}
		entry.Activity = &models.ActivityDetail{Environment: env, DurationMin: c.Duration}
	}

	if err := ctx.Store.AddEntry(entry); err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}

	fmt.Printf("✓ Logged %s (%s)\n", entry.Estimate.Name, cli.FormatCalories(entry.Estimate.Calories))
	return nil
}
