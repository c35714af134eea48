package availability

import (
	"sort"
	"time"

	"cabinrentals/internal/domain"
)

// DateFormat is the key format of computed state maps and of the date column
// in availability_calendar_availability.
const DateFormat = "2006-01-02"

// BlockedInterval is a reserved stay. Both bounds are inclusive calendar
// dates; End is the last occupied night, not the departure day.
type BlockedInterval struct {
	Start time.Time
	End   time.Time
}

// Checkout is the day guests vacate: the day after the last occupied night.
func (b BlockedInterval) Checkout() time.Time {
	return b.End.AddDate(0, 0, 1)
}

// ComputeStates converts blocked intervals into a per-day state map for the
// closed range [yearStart, yearEnd]. Dates absent from the map are available.
//
// Intervals are walked in start-date order (stable for ties) so that a date
// touched twice resolves correctly: a check-out from one stay followed by a
// check-in of the next becomes a turn-around day. The checkout day of an
// interval is included in the walk when it still falls inside the range.
func ComputeStates(intervals []BlockedInterval, yearStart, yearEnd time.Time) map[string]domain.StateID {
	states := make(map[string]domain.StateID)

	sorted := make([]BlockedInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	for _, iv := range sorted {
		if iv.Start.After(yearEnd) {
			continue
		}

		checkout := iv.Checkout()

		from := iv.Start
		if from.Before(yearStart) {
			from = yearStart
		}
		to := checkout
		if to.After(yearEnd) {
			to = yearEnd
		}

		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			key := d.Format(DateFormat)

			switch {
			case d.Equal(iv.Start):
				// First day of the stay. What it becomes depends on what an
				// earlier interval already put there.
				switch states[key] {
				case domain.StateCheckOut, domain.StateTurnAround:
					states[key] = domain.StateTurnAround
				default:
					states[key] = domain.StateCheckIn
				}
			case d.Equal(checkout):
				states[key] = domain.StateCheckOut
			case d.After(iv.Start) && !d.After(iv.End):
				states[key] = domain.StateBooked
			}
		}
	}

	return states
}

// OverlappingIntervals returns pairs of intervals whose occupied nights
// intersect. Back-to-back stays (checkout day == next check-in) do not
// overlap. The caller logs these as data-quality warnings; the calculator
// still processes them in order.
func OverlappingIntervals(intervals []BlockedInterval) [][2]BlockedInterval {
	if len(intervals) < 2 {
		return nil
	}

	sorted := make([]BlockedInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var pairs [][2]BlockedInterval
	prev := sorted[0]
	for _, iv := range sorted[1:] {
		if !iv.Start.After(prev.End) {
			pairs = append(pairs, [2]BlockedInterval{prev, iv})
		}
		if iv.End.After(prev.End) {
			prev = iv
		}
	}
	return pairs
}
