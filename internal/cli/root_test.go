package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

func TestParseDay(t *testing.T) {
	today := time.Now().Format(constants.DateFormat)
	yesterday := time.Now().AddDate(0, 0, -1).Format(constants.DateFormat)

	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{name: "empty means today", input: "", want: today},
		{name: "today keyword", input: "today", want: today},
		{name: "yesterday keyword", input: "yesterday", want: yesterday},
		{name: "explicit date", input: "2026-03-14", want: "2026-03-14"},
		{name: "garbage", input: "last tuesday", wantError: true},
		{name: "wrong format", input: "14/03/2026", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseDay(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCalories(t *testing.T) {
	tests := []struct {
		calories int
		want     string
	}{
		{420, "+420 kcal"},
		{0, "0 kcal"},
		{-320, "-320 kcal"},
	}

	for _, tt := range tests {
		if got := FormatCalories(tt.calories); got != tt.want {
			t.Errorf("FormatCalories(%d) = %q, want %q", tt.calories, got, tt.want)
		}
	}
}

func TestFormatEntryLine(t *testing.T) {
	loggedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.Local)

	food := models.LedgerEntry{
		Estimate: models.Estimate{Name: "Grilled Salmon", Calories: 420},
		Kind:     constants.EntryFood,
		LoggedAt: loggedAt,
	}
	line := FormatEntryLine(food)
	if !strings.Contains(line, "12:30") || !strings.Contains(line, "Grilled Salmon") || !strings.Contains(line, "+420 kcal") {
		t.Errorf("food line = %q", line)
	}

	exercise := models.LedgerEntry{
		Estimate: models.Estimate{Name: "Morning Run", Calories: -320},
		Kind:     constants.EntryExercise,
		LoggedAt: loggedAt,
		Activity: &models.ActivityDetail{Environment: "outdoor", DurationMin: 45},
	}
	line = FormatEntryLine(exercise)
	if !strings.Contains(line, "-320 kcal") || !strings.Contains(line, "outdoor, 45m") {
		t.Errorf("exercise line = %q", line)
	}
}
