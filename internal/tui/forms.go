package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/intake/internal/constants"
)

type SetupFormModel struct {
	Gender    constants.Gender
	Weight    string
	Height    string
	Goal      constants.Goal
	Lifestyle constants.Lifestyle
}

type ManualFormModel struct {
	Name        string
	Calories    string
	Exercise    bool
	Environment string
	Duration    string
}

type SourceFormModel struct {
	Source string // camera | file | url
	Path   string
}

type BodyFormModel struct {
	Image string
	Note  string
}

func validatePositiveNumber(field string) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		if f <= 0 {
			return fmt.Errorf("%s must be positive", field)
		}
		return nil
	}
}

// NewSetupForm builds the first-run profile form.
func NewSetupForm(fm *SetupFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[constants.Gender]().
				Title("Gender").
				Description("Used only for the calorie formula").
				Options(
					huh.NewOption("Male", constants.GenderMale),
					huh.NewOption("Female", constants.GenderFemale),
				).
				Value(&fm.Gender),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&fm.Weight).
				Validate(validatePositiveNumber("weight")),
			huh.NewInput().
				Title("Height (cm)").
				Value(&fm.Height).
				Validate(validatePositiveNumber("height")),
			huh.NewSelect[constants.Goal]().
				Title("Goal").
				Options(
					huh.NewOption("Lose weight", constants.GoalLose),
					huh.NewOption("Maintain", constants.GoalMaintain),
					huh.NewOption("Gain muscle", constants.GoalGain),
				).
				Value(&fm.Goal),
			huh.NewSelect[constants.Lifestyle]().
				Title("Lifestyle").
				Options(
					huh.NewOption("General", constants.LifestyleGeneral),
					huh.NewOption("Athlete", constants.LifestyleAthlete),
				).
				Value(&fm.Lifestyle),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewManualForm builds the manual food/exercise entry form.
func NewManualForm(fm *ManualFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Calories").
				Description("Consumed for food, burned for exercise").
				Value(&fm.Calories).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("calories must be a whole number")
					}
					if i < 0 {
						return fmt.Errorf("calories must not be negative")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Exercise?").
				Description("Exercise calories are subtracted from the day").
				Value(&fm.Exercise),
			huh.NewSelect[string]().
				Title("Environment").
				Description("For exercise entries").
				Options(
					huh.NewOption("Indoor", "indoor"),
					huh.NewOption("Outdoor", "outdoor"),
				).
				Value(&fm.Environment),
			huh.NewInput().
				Title("Duration (min)").
				Description("For exercise entries, optional").
				Value(&fm.Duration).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || i < 0 {
						return fmt.Errorf("duration must be a non-negative number of minutes")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSourceForm builds the capture source chooser.
func NewSourceForm(fm *SourceFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Capture source").
				Options(
					huh.NewOption("Camera", "camera"),
					huh.NewOption("Image file", "file"),
					huh.NewOption("URL", "url"),
				).
				Value(&fm.Source),
			huh.NewInput().
				Title("Path or URL").
				Description("Ignored for camera capture").
				Value(&fm.Path),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewBodyForm builds the body log form.
func NewBodyForm(fm *BodyFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Photo path").
				Value(&fm.Image).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("photo path cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Self-evaluation").
				Description("How do you feel about your progress?").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}
