package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func testEntry(name string, calories int, loggedAt time.Time) models.LedgerEntry {
	return models.LedgerEntry{
		ID: uuid.New().String(),
		Estimate: models.Estimate{
			Name:       name,
			Calories:   calories,
			Macros:     models.Macros{Protein: 20, Carbs: 30, Fat: 10},
			Confidence: 0.8,
			Evaluation: "Looks balanced.",
			CapturedAt: loggedAt,
		},
		Kind:     constants.EntryFood,
		LoggedAt: loggedAt,
	}
}

func TestInitIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	store.Close()

	store = NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	store.Close()
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on uninitialized path should fail")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	// Fresh database: zero profile, no error
	p, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() on fresh store error = %v", err)
	}
	if p.SetupDone {
		t.Error("fresh profile should not have SetupDone set")
	}

	want := models.Profile{
		Gender:    constants.GenderFemale,
		WeightKg:  62.5,
		HeightCm:  168,
		Goal:      constants.GoalLose,
		Lifestyle: constants.LifestyleAthlete,
		SetupDone: true,
	}
	if err := store.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	got, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got != want {
		t.Errorf("GetProfile() = %+v, want %+v", got, want)
	}

	// Saving again replaces the single row
	want.WeightKg = 61
	if err := store.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile() replace error = %v", err)
	}
	got, _ = store.GetProfile()
	if got.WeightKg != 61 {
		t.Errorf("replaced profile weight = %v, want 61", got.WeightKg)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	loggedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.Local)
	entry := testEntry("Grilled Salmon", 420, loggedAt)

	if err := store.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}

	got, err := store.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Estimate.Name != "Grilled Salmon" || got.Estimate.Calories != 420 {
		t.Errorf("GetEntry() estimate = %+v", got.Estimate)
	}
	if got.Estimate.Macros != entry.Estimate.Macros {
		t.Errorf("GetEntry() macros = %+v, want %+v", got.Estimate.Macros, entry.Estimate.Macros)
	}
	if got.Kind != constants.EntryFood {
		t.Errorf("GetEntry() kind = %q", got.Kind)
	}
	if !got.LoggedAt.Equal(loggedAt) {
		t.Errorf("GetEntry() loggedAt = %v, want %v", got.LoggedAt, loggedAt)
	}
	if got.Activity != nil {
		t.Errorf("food entry should have no activity detail, got %+v", got.Activity)
	}
}

func TestExerciseEntryKeepsActivityAndNegativeCalories(t *testing.T) {
	store := setupTestStore(t)

	entry := testEntry("Morning Run", -320, time.Now())
	entry.Kind = constants.EntryExercise
	entry.Activity = &models.ActivityDetail{Environment: "outdoor", DurationMin: 45}

	if err := store.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}

	got, err := store.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Estimate.Calories != -320 {
		t.Errorf("exercise calories = %d, want -320", got.Estimate.Calories)
	}
	if got.Activity == nil {
		t.Fatal("exercise entry lost its activity detail")
	}
	if got.Activity.Environment != "outdoor" || got.Activity.DurationMin != 45 {
		t.Errorf("activity = %+v", got.Activity)
	}
}

func TestGetEntriesForDay(t *testing.T) {
	store := setupTestStore(t)

	day1 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)

	for _, e := range []models.LedgerEntry{
		testEntry("Breakfast", 350, day1),
		testEntry("Lunch", 600, day1.Add(4*time.Hour)),
		testEntry("Next Day", 500, day2),
	} {
		if err := store.AddEntry(e); err != nil {
			t.Fatalf("AddEntry() error = %v", err)
		}
	}

	entries, err := store.GetEntriesForDay("2026-03-14")
	if err != nil {
		t.Fatalf("GetEntriesForDay() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("GetEntriesForDay() returned %d entries, want 2", len(entries))
	}
	if entries[0].Estimate.Name != "Breakfast" || entries[1].Estimate.Name != "Lunch" {
		t.Errorf("entries out of order: %q, %q", entries[0].Estimate.Name, entries[1].Estimate.Name)
	}

	ranged, err := store.GetEntries("2026-03-14", "2026-03-15")
	if err != nil {
		t.Fatalf("GetEntries() error = %v", err)
	}
	if len(ranged) != 3 {
		t.Errorf("GetEntries() returned %d entries, want 3", len(ranged))
	}
}

func TestDeleteEntry(t *testing.T) {
	store := setupTestStore(t)

	entry := testEntry("Snack", 150, time.Now())
	if err := store.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if err := store.DeleteEntry(entry.ID); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if _, err := store.GetEntry(entry.ID); err == nil {
		t.Error("GetEntry() after delete should fail")
	}
	if err := store.DeleteEntry(entry.ID); err == nil {
		t.Error("DeleteEntry() on missing entry should fail")
	}
}

func TestBodyLogRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	takenAt := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)
	log := models.BodyLog{
		ID:        uuid.New().String(),
		ImagePath: "/tmp/body.jpg",
		Note:      "Feeling leaner this week.",
		TakenAt:   takenAt,
	}
	if err := store.AddBodyLog(log); err != nil {
		t.Fatalf("AddBodyLog() error = %v", err)
	}

	logs, err := store.GetBodyLogs()
	if err != nil {
		t.Fatalf("GetBodyLogs() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("GetBodyLogs() returned %d logs, want 1", len(logs))
	}
	if logs[0].Note != log.Note || logs[0].ImagePath != log.ImagePath {
		t.Errorf("GetBodyLogs()[0] = %+v", logs[0])
	}

	forDay, err := store.GetBodyLogsForDay("2026-03-14")
	if err != nil {
		t.Fatalf("GetBodyLogsForDay() error = %v", err)
	}
	if len(forDay) != 1 {
		t.Errorf("GetBodyLogsForDay() returned %d logs, want 1", len(forDay))
	}
	if empty, _ := store.GetBodyLogsForDay("2026-03-15"); len(empty) != 0 {
		t.Errorf("GetBodyLogsForDay() for empty day returned %d logs", len(empty))
	}
}
