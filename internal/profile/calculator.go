// Package profile derives calorie and macro targets from a physiological
// profile. Everything here is a pure function so targets are exactly
// reproducible.
package profile

import (
	"errors"
	"math"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

// TargetCalories computes the daily calorie budget from a profile using a
// Mifflin-St Jeor BMR with a fixed assumed age, scaled by activity and goal.
func TargetCalories(p models.Profile) int {
	offset := -161.0
	if p.Gender == constants.GenderMale {
		offset = 5.0
	}
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*constants.AssumedAge + offset

	activity := 1.2
	if p.Lifestyle == constants.LifestyleAthlete {
		activity = 1.55
	}

	goalMod := 1.0
	switch p.Goal {
	case constants.GoalLose:
		goalMod = 0.85
	case constants.GoalGain:
		goalMod = 1.15
	}

	return int(math.Round(bmr * activity * goalMod))
}

// TargetMacros splits a calorie budget into gram targets using a fixed
// per-goal calorie split, at 4 kcal/g for protein and carbs and 9 kcal/g
// for fat. Each gram value is rounded independently.
func TargetMacros(targetCalories int, goal constants.Goal) models.Macros {
	pSplit, cSplit, fSplit := 0.3, 0.4, 0.3
	switch goal {
	case constants.GoalLose:
		pSplit, cSplit, fSplit = 0.4, 0.3, 0.3
	case constants.GoalGain:
		pSplit, cSplit, fSplit = 0.3, 0.5, 0.2
	}

	t := float64(targetCalories)
	return models.Macros{
		Protein: int(math.Round(t * pSplit / 4)),
		Carbs:   int(math.Round(t * cSplit / 4)),
		Fat:     int(math.Round(t * fSplit / 9)),
	}
}

// BMI computes the body mass index from centimeters and kilograms,
// rejecting implausible input.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMICategory maps a BMI value to its WHO classification.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}
