package entries

import (
	"fmt"

	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/ledger"
	"github.com/julianstephens/intake/internal/profile"
)

// ListCmd shows the diary for one day with folded totals.
type ListCmd struct {
	Day string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, today, or yesterday). Defaults to today."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Day)
	if err != nil {
		return err
	}

	entries, err := ctx.Store.GetEntriesForDay(day)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}

	fmt.Printf("Diary for %s:\n", day)
	if len(entries) == 0 {
		fmt.Println("  No entries")
		return nil
	}

	for _, e := range entries {
		fmt.Println(cli.FormatEntryLine(e))
	}

	totals := ledger.New(entries...).Totals()
	fmt.Println()
	fmt.Printf("  Total: %d kcal  (P %dg / C %dg / F %dg)\n",
		totals.Calories, totals.Macros.Protein, totals.Macros.Carbs, totals.Macros.Fat)

	p, err := ctx.Store.GetProfile()
	if err == nil && p.SetupDone {
		target := profile.TargetCalories(p)
		fmt.Printf("  Target: %d kcal, %d remaining\n", target, target-totals.Calories)
	}

	return nil
}

// DeleteCmd removes one entry from the ledger by ID.
type DeleteCmd struct {
	ID string `arg:"" help:"Entry ID to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEntry(c.ID); err != nil {
		return err
	}
	fmt.Println("✓ Entry deleted")
	return nil
}
