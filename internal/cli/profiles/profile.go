package profiles

import (
	"fmt"

	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
	"github.com/julianstephens/intake/internal/profile"
)

// ShowCmd prints the stored profile and its derived daily targets.
type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if !p.SetupDone {
		fmt.Println("No profile set up yet. Run 'intake profile set' or launch the TUI.")
		return nil
	}

	fmt.Println("Profile:")
	fmt.Printf("  Gender:    %s\n", p.Gender)
	fmt.Printf("  Weight:    %.1f kg\n", p.WeightKg)
	fmt.Printf("  Height:    %.0f cm\n", p.HeightCm)
	fmt.Printf("  Goal:      %s\n", p.Goal)
	fmt.Printf("  Lifestyle: %s\n", p.Lifestyle)

	if bmi, err := profile.BMI(p.HeightCm, p.WeightKg); err == nil {
		fmt.Printf("  BMI:       %.1f (%s)\n", bmi, profile.BMICategory(bmi))
	}

	target := profile.TargetCalories(p)
	macros := profile.TargetMacros(target, p.Goal)
	fmt.Println()
	fmt.Printf("Daily target: %d kcal  (P %dg / C %dg / F %dg)\n",
		target, macros.Protein, macros.Carbs, macros.Fat)

	return nil
}

// SetCmd replaces the profile wholesale.
type SetCmd struct {
	Gender    string  `arg:"" help:"Biological sex for the BMR formula." enum:"male,female"`
	Weight    float64 `arg:"" help:"Weight in kilograms."`
	Height    float64 `arg:"" help:"Height in centimeters."`
	Goal      string  `help:"Body-composition goal." enum:"lose,maintain,gain" default:"maintain"`
	Lifestyle string  `help:"Activity profile." enum:"general,athlete" default:"general"`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	p := models.Profile{
		Gender:    constants.Gender(c.Gender),
		WeightKg:  c.Weight,
		HeightCm:  c.Height,
		Goal:      constants.Goal(c.Goal),
		Lifestyle: constants.Lifestyle(c.Lifestyle),
		SetupDone: true,
	}
	if !p.Valid() {
		return fmt.Errorf("implausible body metrics: weight %.1f kg, height %.0f cm", c.Weight, c.Height)
	}

	if err := ctx.Store.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	target := profile.TargetCalories(p)
	fmt.Printf("✓ Profile saved. Daily target: %d kcal\n", target)
	return nil
}
