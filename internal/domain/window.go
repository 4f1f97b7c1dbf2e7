package domain

import "time"

// Window is a named retrospective time range used to scope aggregation
type Window string

const (
	WindowAllTime Window = "allTime"
	Window1W      Window = "1w"
	Window1M      Window = "1m"
	Window1Y      Window = "1y"
	WindowYTD     Window = "ytd"
)

// Mode is a transit type filter applied alongside a window
type Mode string

const (
	ModeAll   Mode = "all"
	ModeBus   Mode = "bus"
	ModeTrain Mode = "train"
)

// Windows lists every window in a stable order
func Windows() []Window {
	return []Window{WindowAllTime, Window1W, Window1M, Window1Y, WindowYTD}
}

// Modes lists every mode in a stable order
func Modes() []Mode {
	return []Mode{ModeAll, ModeBus, ModeTrain}
}

// IsValid reports whether the window is a known value
func (w Window) IsValid() bool {
	switch w {
	case WindowAllTime, Window1W, Window1M, Window1Y, WindowYTD:
		return true
	}
	return false
}

// IsValid reports whether the mode is a known value
func (m Mode) IsValid() bool {
	switch m {
	case ModeAll, ModeBus, ModeTrain:
		return true
	}
	return false
}

// Bounded reports whether the window has a finite cutoff
func (w Window) Bounded() bool {
	return w != WindowAllTime
}

// CutoffAt resolves the window to its inclusive cutoff instant relative to now.
// The second return value is false for the unbounded all-time window.
func (w Window) CutoffAt(now time.Time) (time.Time, bool) {
	switch w {
	case Window1W:
		return now.AddDate(0, 0, -7), true
	case Window1M:
		return now.AddDate(0, -1, 0), true
	case Window1Y:
		return now.AddDate(-1, 0, 0), true
	case WindowYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// Matches reports whether a ride's type passes the mode filter
func (m Mode) Matches(t TransitType) bool {
	return m == ModeAll || string(t) == string(m)
}

// Includes reports whether a ride belongs to the (window, mode) pair as of now.
// In-progress rides are never included: their totals are still accumulating.
func Includes(r *Ride, w Window, m Mode, now time.Time) bool {
	if r.InProgress {
		return false
	}
	if !m.Matches(r.Type) {
		return false
	}
	if cutoff, ok := w.CutoffAt(now); ok {
		return !r.StartTime.Before(cutoff)
	}
	return true
}

// StatsKey is the strongly typed composite key for stats documents
type StatsKey struct {
	Window Window
	Mode   Mode
}

// StatsKeys returns every (window, mode) pair in a stable order
func StatsKeys() []StatsKey {
	keys := make([]StatsKey, 0, len(Windows())*len(Modes()))
	for _, w := range Windows() {
		for _, m := range Modes() {
			keys = append(keys, StatsKey{Window: w, Mode: m})
		}
	}
	return keys
}

// DocID renders the key in the persisted document id format
func (k StatsKey) DocID() string {
	return string(k.Window) + "_" + string(k.Mode)
}
