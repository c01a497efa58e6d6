// Package ledger accumulates confirmed nutrition entries into daily
// totals. The ledger is append-only and pure: totals are always a fold
// over the entry list, never a separately maintained counter.
package ledger

import (
	"time"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

// Totals is the folded state of a ledger.
type Totals struct {
	Calories int
	Macros   models.Macros
}

// Ledger holds confirmed entries in insertion order, oldest first.
type Ledger struct {
	entries []models.LedgerEntry
}

// New returns a ledger pre-populated with existing entries, e.g. replayed
// from storage at startup.
func New(entries ...models.LedgerEntry) *Ledger {
	l := &Ledger{}
	l.entries = append(l.entries, entries...)
	return l
}

// Append adds a confirmed entry. Entries are never mutated or removed.
func (l *Ledger) Append(entry models.LedgerEntry) {
	l.entries = append(l.entries, entry)
}

// Entries returns the entries in insertion order. The returned slice is a
// copy; callers may reverse it for display.
func (l *Ledger) Entries() []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Totals folds every entry's calories and macros. Exercise entries carry
// negative calories, so the fold subtracts them naturally.
func (l *Ledger) Totals() Totals {
	var t Totals
	for _, e := range l.entries {
		t.Calories += e.Estimate.Calories
		t.Macros = t.Macros.Add(e.Estimate.Macros)
	}
	return t
}

// TotalsForDay folds only entries logged on the given calendar day in the
// local timezone.
func (l *Ledger) TotalsForDay(day time.Time) Totals {
	var t Totals
	y, m, d := day.Date()
	for _, e := range l.entries {
		ey, em, ed := e.LoggedAt.Date()
		if ey == y && em == m && ed == d {
			t.Calories += e.Estimate.Calories
			t.Macros = t.Macros.Add(e.Estimate.Macros)
		}
	}
	return t
}

// FoodCount returns the number of food (non-exercise) entries.
func (l *Ledger) FoodCount() int {
	n := 0
	for _, e := range l.entries {
		if e.Kind == constants.EntryFood {
			n++
		}
	}
	return n
}
