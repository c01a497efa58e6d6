package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// Gender is the biological sex used for BMR calculation
type Gender string

// Goal represents the user's body-composition goal
type Goal string

// Lifestyle represents the user's activity profile
type Lifestyle string

// EntryKind distinguishes intake entries from exercise entries
type EntryKind string

const (
	AppName           = "intake"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/intake/intake.db"

	// KeyringUser is the keyring account under which the analysis API key is stored
	KeyringUser = "analysis-api-key"
	// APIKeyEnvVar is the environment fallback consulted when the keyring is empty
	APIKeyEnvVar = "INTAKE_API_KEY"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the short time format used in log listings (HH:MM)
	ClockFormat = "15:04"

	// AnalysisModel is the multimodal model asked to estimate nutrition facts
	AnalysisModel = "gemini-3-flash-preview"

	// AnalysisBaseURL is the Generative Language API endpoint prefix
	AnalysisBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// AnalysisTimeout bounds one analysis round trip, including upload
	AnalysisTimeout = 25 * time.Second

	// MaxImageDimension caps the longer edge of an image before transmission.
	// 640 rather than 1024: the smaller payload roughly halves the round trip
	// at the cost of some estimate precision.
	MaxImageDimension = 640

	// JPEGQuality is the re-encode quality applied before transmission.
	// Deliberately low (50) for the same latency/precision trade-off.
	JPEGQuality = 50

	// PlaceholderFoodName is substituted when the service omits a name.
	// It is a default, not an error sentinel: entries carrying it are
	// still confirmable.
	PlaceholderFoodName = "Unidentified Food"

	// AssumedAge is the fixed age used by the BMR formula; the profile
	// deliberately does not collect a birth date.
	AssumedAge = 25

	// Gender constants
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	// Goal constants
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"

	// Lifestyle constants
	LifestyleGeneral Lifestyle = "general"
	LifestyleAthlete Lifestyle = "athlete"

	// Entry kind constants
	EntryFood     EntryKind = "food"
	EntryExercise EntryKind = "exercise"

	// Session States
	StateSetup SessionState = iota
	StateHome
	StateCaptureSource
	StateResult
	StateInput
	StateDiary
	StateBody
	StateBodyNote
	StateSettings
	StateConfirmDiscard
)
