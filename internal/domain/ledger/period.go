package ledger

import (
	"fmt"
	"time"

	"github.com/cashboard/backend/internal/domain/shared"
)

// ErrInvalidPeriod is returned when an explicit window resolves with start
// after end. The bounds are never silently swapped; callers must not guess
// user intent.
var ErrInvalidPeriod = shared.NewDomainError("INVALID_PERIOD", "Period start must not be after period end")

// Preset is a fixed relative period selector anchored to "today".
type Preset string

const (
	PresetLast30Days   Preset = "last-30-days"
	PresetLast3Months  Preset = "last-3-months"
	PresetLast6Months  Preset = "last-6-months"
	PresetLast12Months Preset = "last-12-months"
)

// IsValid checks if the preset is a known Preset
func (p Preset) IsValid() bool {
	switch p {
	case PresetLast30Days, PresetLast3Months, PresetLast6Months, PresetLast12Months:
		return true
	}
	return false
}

// Selector picks a period either by preset or by explicit bounds. When both
// explicit bounds are set they win; a partially filled explicit selection
// falls back to the last-6-months preset.
type Selector struct {
	Preset Preset     `json:"preset,omitempty"`
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
}

// SelectPreset builds a preset selector
func SelectPreset(p Preset) Selector {
	return Selector{Preset: p}
}

// SelectExplicit builds an explicit selector
func SelectExplicit(start, end time.Time) Selector {
	return Selector{Start: &start, End: &end}
}

// String renders a stable cache-key form of the selector.
func (s Selector) String() string {
	if s.Start != nil && s.End != nil {
		return fmt.Sprintf("%s..%s", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))
	}
	if s.Preset != "" {
		return string(s.Preset)
	}
	return string(PresetLast6Months)
}

// Window is a concrete resolved period, inclusive on both ends.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive day count of the window
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether the date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// ResolvePeriod turns a selector into a concrete window anchored to today.
//
// Preset windows always end on the last calendar day of the month containing
// today; the start is today minus the preset offset with plain calendar
// arithmetic. Explicit bounds are used verbatim. A selector with only one
// explicit bound falls back to last-6-months.
func ResolvePeriod(selector Selector, today time.Time) (Window, error) {
	today = DateOf(today)

	if selector.Start != nil && selector.End != nil {
		w := Window{Start: DateOf(*selector.Start), End: DateOf(*selector.End)}
		if w.Start.After(w.End) {
			return Window{}, ErrInvalidPeriod
		}
		return w, nil
	}

	preset := selector.Preset
	if !preset.IsValid() {
		preset = PresetLast6Months
	}

	var start time.Time
	switch preset {
	case PresetLast30Days:
		start = today.AddDate(0, 0, -30)
	case PresetLast3Months:
		start = today.AddDate(0, -3, 0)
	case PresetLast6Months:
		start = today.AddDate(0, -6, 0)
	case PresetLast12Months:
		start = today.AddDate(0, -12, 0)
	}

	w := Window{Start: start, End: endOfMonth(today)}
	if w.Start.After(w.End) {
		return Window{}, ErrInvalidPeriod
	}
	return w, nil
}

// endOfMonth returns the last calendar day of the month containing the date.
func endOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
