package entries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/intake/internal/capture"
	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

// AnalyzeCmd runs a one-shot photo analysis from a file or URL source.
type AnalyzeCmd struct {
	Source  string `arg:"" help:"Path to an image file, or an http(s) URL."`
	Confirm bool   `help:"Log the estimate to the ledger if it is confirmable."`
}

func (c *AnalyzeCmd) Run(ctx *cli.Context) error {
	var source capture.Source
	if strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://") {
		source = capture.URLSource{URL: c.Source}
	} else {
		source = capture.FileSource{Path: c.Source}
	}

	raw, err := source.Acquire(context.Background())
	if err != nil {
		return fmt.Errorf("failed to acquire image from %s: %w", source.Description(), err)
	}
	img, err := capture.Preprocess(raw)
	if err != nil {
		return fmt.Errorf("failed to preprocess image: %w", err)
	}

	fmt.Println("Analyzing...")
	outcome := ctx.Analyzer.Analyze(context.Background(), img)

	est, ok := outcome.Estimate()
	if !ok {
		kind, message, _ := outcome.Err()
		return fmt.Errorf("analysis failed (%s): %s", kind, message)
	}

	fmt.Printf("\n%s\n", est.Name)
	fmt.Printf("  Calories:   %s\n", cli.FormatCalories(est.Calories))
	fmt.Printf("  Protein:    %dg\n", est.Macros.Protein)
	fmt.Printf("  Carbs:      %dg\n", est.Macros.Carbs)
	fmt.Printf("  Fat:        %dg\n", est.Macros.Fat)
	fmt.Printf("  Confidence: %.0f%%\n", est.Confidence*100)
	if est.Evaluation != "" {
		fmt.Printf("  %s\n", est.Evaluation)
	}

	if !c.Confirm {
		fmt.Println("\nNot logged. Re-run with --confirm to add it to the ledger.")
		return nil
	}

	if !capture.Confirmable(outcome) {
		return fmt.Errorf("estimate is not confirmable")
	}

	entry := models.LedgerEntry{
		ID:       uuid.New().String(),
		Estimate: est,
		Kind:     constants.EntryFood,
		LoggedAt: time.Now(),
	}
	if err := ctx.Store.AddEntry(entry); err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}
	fmt.Println("\n✓ Logged to the ledger")
	return nil
}
