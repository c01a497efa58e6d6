package body

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

// AddCmd records a body-composition photo with a self-evaluation note.
type AddCmd struct {
	Image string `arg:"" help:"Path to the body photo."`
	Note  string `help:"Self-evaluation note."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if _, err := os.Stat(c.Image); err != nil {
		return fmt.Errorf("cannot read image %s: %w", c.Image, err)
	}

	log := models.BodyLog{
		ID:        uuid.New().String(),
		ImagePath: c.Image,
		Note:      c.Note,
		TakenAt:   time.Now(),
	}
	if err := ctx.Store.AddBodyLog(log); err != nil {
		return fmt.Errorf("failed to save body log: %w", err)
	}

	fmt.Println("✓ Body log saved")
	return nil
}

// ListCmd shows recorded body logs, newest last.
type ListCmd struct {
	Day string `help:"Only show logs for one day (YYYY-MM-DD, today, or yesterday)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	var logs []models.BodyLog
	var err error
	if c.Day != "" {
		day, perr := cli.ParseDay(c.Day)
		if perr != nil {
			return perr
		}
		logs, err = ctx.Store.GetBodyLogsForDay(day)
	} else {
		logs, err = ctx.Store.GetBodyLogs()
	}
	if err != nil {
		return fmt.Errorf("failed to get body logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Println("No body logs found")
		return nil
	}

	fmt.Println("Body logs:")
	for _, l := range logs {
		fmt.Printf("  %s  %s\n", l.TakenAt.Format(constants.DateFormat+" "+constants.ClockFormat), l.ImagePath)
		if l.Note != "" {
			fmt.Printf("      %s\n", l.Note)
		}
	}
	return nil
}
