package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/intake/internal/analysis"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
	"github.com/julianstephens/intake/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Analyzer *analysis.Client
}

// ParseDay resolves a day argument to a YYYY-MM-DD string. Accepts
// "today", "yesterday", or an explicit date; empty means today.
func ParseDay(s string) (string, error) {
	switch s {
	case "", "today":
		return time.Now().Format(constants.DateFormat), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid day %q (expected YYYY-MM-DD, today, or yesterday)", s)
	}
	return t.Format(constants.DateFormat), nil
}

// FormatCalories renders a calorie amount with an explicit sign for
// exercise entries.
func FormatCalories(calories int) string {
	if calories > 0 {
		return fmt.Sprintf("+%d kcal", calories)
	}
	return fmt.Sprintf("%d kcal", calories)
}

// FormatEntryLine renders one ledger entry for list output.
func FormatEntryLine(e models.LedgerEntry) string {
	line := fmt.Sprintf("  %s  %-28s %10s", e.LoggedAt.Format(constants.ClockFormat), e.Estimate.Name, FormatCalories(e.Estimate.Calories))
	if e.Kind == constants.EntryExercise && e.Activity != nil {
		line += fmt.Sprintf("  (%s, %dm)", e.Activity.Environment, e.Activity.DurationMin)
	}
	return line
}
