package availability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"cabinrentals/internal/domain"
	"cabinrentals/internal/repository"
)

const defaultLookupBatch = 100

// CalendarStore is the persisted side of reconciliation: the read/write
// contract of the availability_calendar_availability table.
type CalendarStore interface {
	GetStates(ctx context.Context, calendarID int64, dates []string) (map[string]domain.StateID, error)
	InsertState(ctx context.Context, calendarID int64, date string, sid domain.StateID) error
	UpdateState(ctx context.Context, calendarID int64, date string, sid domain.StateID) error
	DeleteRange(ctx context.Context, calendarID int64, from, to string) error
}

// Result counts the writes a reconcile run performed. Failed counts dates
// whose write did not stick; those are logged and never abort the run.
type Result struct {
	Inserted int
	Updated  int
	Failed   int
}

// Reconciler diffs computed day states against persisted rows and applies
// the minimal set of writes. Re-running with the same computed map is a
// no-op.
type Reconciler struct {
	store     CalendarStore
	batchSize int
}

func NewReconciler(store CalendarStore, batchSize int) *Reconciler {
	if batchSize <= 0 {
		batchSize = defaultLookupBatch
	}
	return &Reconciler{store: store, batchSize: batchSize}
}

func (r *Reconciler) Reconcile(ctx context.Context, calendarID int64, computed map[string]domain.StateID, yearStart, yearEnd time.Time) (Result, error) {
	var res Result

	// An empty map means no blocked dates at all: clear whatever a previous
	// run persisted so the property reads as fully available.
	if len(computed) == 0 {
		from := yearStart.Format(DateFormat)
		to := yearEnd.Format(DateFormat)
		if err := r.store.DeleteRange(ctx, calendarID, from, to); err != nil {
			return res, fmt.Errorf("clear calendar %d: %w", calendarID, err)
		}
		return res, nil
	}

	dates := make([]string, 0, len(computed))
	for d := range computed {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	// Batched lookups keep the IN clause bounded. A failed batch is not
	// fatal: the missing dates fall through to the insert path, and the
	// duplicate-key recovery below picks up any rows that did exist.
	existing := make(map[string]domain.StateID, len(dates))
	for i := 0; i < len(dates); i += r.batchSize {
		end := i + r.batchSize
		if end > len(dates) {
			end = len(dates)
		}
		got, err := r.store.GetStates(ctx, calendarID, dates[i:end])
		if err != nil {
			log.Printf("calendar %d: existing-state lookup failed for batch %d: %v", calendarID, i/r.batchSize+1, err)
			continue
		}
		for d, sid := range got {
			existing[d] = sid
		}
	}

	for _, date := range dates {
		sid := computed[date]

		if have, ok := existing[date]; ok {
			if have == sid {
				continue
			}
			if err := r.store.UpdateState(ctx, calendarID, date, sid); err != nil {
				log.Printf("calendar %d: update %s failed: %v", calendarID, date, err)
				res.Failed++
				continue
			}
			res.Updated++
			continue
		}

		err := r.store.InsertState(ctx, calendarID, date, sid)
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, repository.ErrDuplicateDay):
			// Someone else inserted the row first. Retry as an update.
			if uerr := r.store.UpdateState(ctx, calendarID, date, sid); uerr != nil {
				log.Printf("calendar %d: update after conflict on %s failed: %v", calendarID, date, uerr)
				res.Failed++
				continue
			}
			res.Updated++
		default:
			log.Printf("calendar %d: insert %s failed: %v", calendarID, date, err)
			res.Failed++
		}
	}

	return res, nil
}
