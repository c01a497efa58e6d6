package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/intake/internal/analysis"
	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/cli/body"
	"github.com/julianstephens/intake/internal/cli/entries"
	"github.com/julianstephens/intake/internal/cli/profiles"
	"github.com/julianstephens/intake/internal/cli/system"
	"github.com/julianstephens/intake/internal/constants"
	apperrors "github.com/julianstephens/intake/internal/errors"
	"github.com/julianstephens/intake/internal/logger"
	"github.com/julianstephens/intake/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"string" default:"~/.config/intake/intake.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize intake storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Key    struct {
		Set    system.KeySetCmd    `cmd:"" help:"Store the analysis API key in the OS keyring."`
		Show   system.KeyShowCmd   `cmd:"" help:"Show the configured API key (masked)."`
		Delete system.KeyDeleteCmd `cmd:"" help:"Remove the API key from the keyring."`
		Status system.KeyStatusCmd `cmd:"" help:"Report where the API key comes from." default:"1"`
	} `cmd:"" help:"Manage the analysis API key."`
	Analyze entries.AnalyzeCmd `cmd:"" help:"Analyze a food image without the TUI."`
	Log     struct {
		Add    entries.AddCmd    `cmd:"" help:"Log a food or exercise entry manually."`
		List   entries.ListCmd   `cmd:"" help:"List a day's entries with totals." default:"1"`
		Delete entries.DeleteCmd `cmd:"" help:"Delete a logged entry."`
	} `cmd:"" help:"Manage the nutrition diary."`
	Profile struct {
		Show profiles.ShowCmd `cmd:"" help:"Show the profile and daily targets." default:"1"`
		Set  profiles.SetCmd  `cmd:"" help:"Set the physiological profile."`
	} `cmd:"" help:"Manage the physiological profile."`
	Body struct {
		Add  body.AddCmd  `cmd:"" help:"Record a body photo with a note."`
		List body.ListCmd `cmd:"" help:"List recorded body logs." default:"1"`
	} `cmd:"" help:"Manage body-composition logs."`
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Photo-first nutrition and body-composition tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dbPath := expandHome(CLI.Config)
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(dbPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up logging: %v\n", err)
	}

	store := storage.NewSQLiteStore(dbPath)

	appCtx := &cli.Context{
		Store:    store,
		Analyzer: analysis.NewClient(analysis.Config{}),
	}

	// Load the store before running the command; init, doctor, and key
	// management work without an existing database.
	command := ctx.Command()
	if command != "init" && command != "doctor" && !strings.HasPrefix(command, "key") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
