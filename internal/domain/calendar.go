package domain

import "time"

// StateID is the legacy calendar state identifier. The values come from the
// availability_calendar_state table and are stable across environments.
type StateID int

const (
	StateAvailable  StateID = 5
	StateCheckIn    StateID = 6
	StateCheckOut   StateID = 7
	StateTurnAround StateID = 8
	StateBooked     StateID = 9
)

// CSSClass returns the legacy css class for a state.
func (s StateID) CSSClass() string {
	switch s {
	case StateAvailable:
		return "cal-available"
	case StateCheckIn:
		return "cal-in"
	case StateCheckOut:
		return "cal-out"
	case StateTurnAround:
		return "cal-inout"
	case StateBooked:
		return "cal-booked"
	}
	return ""
}

// CalendarState is a row of the availability_calendar_state lookup table,
// ordered by Weight for display.
type CalendarState struct {
	SID         StateID `json:"sid"`
	CSSClass    string  `json:"css_class"`
	Label       string  `json:"label,omitempty"`
	Weight      int     `json:"weight"`
	IsAvailable bool    `json:"is_available"`
}

// DayState is one reconciled availability row: the state of a single date
// within a calendar. At most one row exists per (CalendarID, Date).
type DayState struct {
	CalendarID int64   `json:"cid"`
	Date       string  `json:"date"` // YYYY-MM-DD
	SID        StateID `json:"sid"`
}

// CalendarMapping links a cabin to its calendar namespace and its
// Streamline unit id. Maintained externally; the sync only reads it.
type CalendarMapping struct {
	CabinID      string `json:"cabin_id"`
	CalendarID   int64  `json:"calendar_id"`
	StreamlineID int64  `json:"streamline_id"`
}

// DailyRate is the nightly rate for a property on a given date.
type DailyRate struct {
	ID           string     `json:"id"`
	CabinID      string     `json:"cabin_id,omitempty"`
	StreamlineID int64      `json:"streamline_id"`
	Date         string     `json:"date"` // YYYY-MM-DD
	DailyRate    float64    `json:"daily_rate"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
