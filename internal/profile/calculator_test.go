package profile

import (
	"testing"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

func baseProfile() models.Profile {
	return models.Profile{
		Gender:    constants.GenderMale,
		WeightKg:  75,
		HeightCm:  175,
		Goal:      constants.GoalMaintain,
		Lifestyle: constants.LifestyleGeneral,
	}
}

func TestTargetCalories(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.Profile)
		want   int
	}{
		{
			// BMR = 10*75 + 6.25*175 - 125 + 5 = 1723.75; *1.2 -> 2068.5 -> 2069
			name:   "male maintain general",
			modify: func(p *models.Profile) {},
			want:   2069,
		},
		{
			// 1723.75 * 1.2 * 0.85 = 1758.225 -> 1758
			name:   "male lose general",
			modify: func(p *models.Profile) { p.Goal = constants.GoalLose },
			want:   1758,
		},
		{
			// 1723.75 * 1.2 * 1.15 = 2378.775 -> 2379
			name:   "male gain general",
			modify: func(p *models.Profile) { p.Goal = constants.GoalGain },
			want:   2379,
		},
		{
			// 1723.75 * 1.55 = 2671.8125 -> 2672
			name:   "male maintain athlete",
			modify: func(p *models.Profile) { p.Lifestyle = constants.LifestyleAthlete },
			want:   2672,
		},
		{
			// BMR = 750 + 1093.75 - 125 - 161 = 1557.75; *1.2 -> 1869.3 -> 1869
			name:   "female maintain general",
			modify: func(p *models.Profile) { p.Gender = constants.GenderFemale },
			want:   1869,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			tt.modify(&p)
			if got := TargetCalories(p); got != tt.want {
				t.Errorf("TargetCalories() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTargetCaloriesDeterministic(t *testing.T) {
	p := baseProfile()
	first := TargetCalories(p)
	for i := 0; i < 10; i++ {
		if got := TargetCalories(p); got != first {
			t.Fatalf("TargetCalories() not deterministic: %d != %d", got, first)
		}
	}
}

func TestTargetMacros(t *testing.T) {
	tests := []struct {
		name     string
		calories int
		goal     constants.Goal
		want     models.Macros
	}{
		{
			// 1758*0.4/4=175.8 -> 176; 1758*0.3/4=131.85 -> 132; 1758*0.3/9=58.6 -> 59
			name:     "lose split 40/30/30",
			calories: 1758,
			goal:     constants.GoalLose,
			want:     models.Macros{Protein: 176, Carbs: 132, Fat: 59},
		},
		{
			// 2069*0.3/4=155.175 -> 155; 2069*0.4/4=206.9 -> 207; 2069*0.3/9=68.966 -> 69
			name:     "maintain split 30/40/30",
			calories: 2069,
			goal:     constants.GoalMaintain,
			want:     models.Macros{Protein: 155, Carbs: 207, Fat: 69},
		},
		{
			// 2379*0.3/4=178.425 -> 178; 2379*0.5/4=297.375 -> 297; 2379*0.2/9=52.866 -> 53
			name:     "gain split 30/50/20",
			calories: 2379,
			goal:     constants.GoalGain,
			want:     models.Macros{Protein: 178, Carbs: 297, Fat: 53},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetMacros(tt.calories, tt.goal); got != tt.want {
				t.Errorf("TargetMacros() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		heightCm float64
		weightKg float64
		want     float64
		wantErr  bool
	}{
		{
			name:     "normal adult",
			heightCm: 175,
			weightKg: 75,
			want:     24.489795918367346,
		},
		{
			name:     "zero height rejected",
			heightCm: 0,
			weightKg: 75,
			wantErr:  true,
		},
		{
			name:     "implausible weight rejected",
			heightCm: 175,
			weightKg: 500,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BMI(tt.heightCm, tt.weightKg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BMI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("BMI() = %v, want %v", got, tt.want)
			}
		})
	}
}
