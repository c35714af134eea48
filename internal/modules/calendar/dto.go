package calendar

import "cabinrentals/internal/domain"

// DayAvailability is one calendar cell: the persisted state row joined with
// its lookup-table entry.
type DayAvailability struct {
	CID   int64                 `json:"cid"`
	Date  string                `json:"date"`
	SID   domain.StateID        `json:"sid"`
	State *domain.CalendarState `json:"state,omitempty"`
}

// Month is one month of availability and rates keyed by date string.
// Dates missing from Availability are available.
type Month struct {
	Year         int                         `json:"year"`
	MonthNumber  int                         `json:"month"`
	Availability map[string]DayAvailability  `json:"availability"`
	Rates        map[string]domain.DailyRate `json:"rates"`
	States       []domain.CalendarState      `json:"states"`
}

// CabinCalendar is the multi-month view for one cabin.
type CabinCalendar struct {
	CabinID      string  `json:"cabin_id"`
	CalendarID   int64   `json:"calendar_id"`
	StreamlineID *int64  `json:"streamline_id,omitempty"`
	Months       []Month `json:"months"`
}
