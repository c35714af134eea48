package availability

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"cabinrentals/internal/domain"
	"cabinrentals/internal/streamline"
)

// PMS is the external availability source: blocked stays per unit id.
type PMS interface {
	PropertyBlockedPeriods(ctx context.Context, unitID int64) ([]streamline.BlockedPeriod, error)
}

// MappingSource lists the cabin -> calendar -> unit links to process.
type MappingSource interface {
	ListAll(ctx context.Context) ([]domain.CalendarMapping, error)
}

type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// PropertyResult is the outcome of one property's fetch -> compute ->
// reconcile pipeline. Results are aggregated by the caller; nothing is
// counted through shared state, so properties can run in parallel.
type PropertyResult struct {
	CabinID      string  `json:"cabin_id,omitempty"`
	CalendarID   int64   `json:"calendar_id"`
	StreamlineID int64   `json:"streamline_id"`
	Status       Status  `json:"status"`
	Inserted     int     `json:"inserted"`
	Updated      int     `json:"updated"`
	Error        string  `json:"error,omitempty"`
	Err          error   `json:"-"`
}

type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	Inserted   int `json:"inserted"`
	Updated    int `json:"updated"`
}

type ServiceConfig struct {
	Year        int // calendar year to process, e.g. 2026
	Workers     int // parallel property pipelines; 1 = sequential
	LookupBatch int // reconciler existing-row batch size
}

// Service runs the availability sync: for every mapped property it fetches
// blocked periods from the PMS, derives per-day states and reconciles them
// into the calendar table.
type Service struct {
	pms        PMS
	mappings   MappingSource
	reconciler *Reconciler
	yearStart  time.Time
	yearEnd    time.Time
	workers    int
}

func NewService(pms PMS, mappings MappingSource, store CalendarStore, cfg ServiceConfig) *Service {
	year := cfg.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Service{
		pms:        pms,
		mappings:   mappings,
		reconciler: NewReconciler(store, cfg.LookupBatch),
		yearStart:  time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		yearEnd:    time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		workers:    workers,
	}
}

// ProcessProperty runs the full pipeline for one mapping. Fetch problems
// (unit gone, transport failure, PMS-side error) skip the property;
// reconcile errors fail it. Neither aborts the batch.
func (s *Service) ProcessProperty(ctx context.Context, m domain.CalendarMapping) PropertyResult {
	res := PropertyResult{
		CabinID:      m.CabinID,
		CalendarID:   m.CalendarID,
		StreamlineID: m.StreamlineID,
	}

	if m.CalendarID == 0 || m.StreamlineID == 0 {
		log.Printf("skipping mapping for cabin %s: missing calendar_id or streamline_id", m.CabinID)
		res.Status = StatusSkipped
		return res
	}

	periods, err := s.pms.PropertyBlockedPeriods(ctx, m.StreamlineID)
	if err != nil {
		res.Err = err
		res.Error = err.Error()

		var apiErr *streamline.APIError
		switch {
		case errors.Is(err, streamline.ErrPropertyNotFound):
			log.Printf("calendar %d: unit %d not found in Streamline (inactive or removed)", m.CalendarID, m.StreamlineID)
			res.Status = StatusSkipped
		case errors.Is(err, streamline.ErrTransport):
			log.Printf("calendar %d: Streamline fetch failed: %v", m.CalendarID, err)
			res.Status = StatusSkipped
		case errors.As(err, &apiErr):
			log.Printf("calendar %d: Streamline API error: %v", m.CalendarID, err)
			res.Status = StatusSkipped
		default:
			res.Status = StatusFailed
		}
		return res
	}

	intervals := s.parseIntervals(m.CalendarID, periods)

	if pairs := OverlappingIntervals(intervals); len(pairs) > 0 {
		for _, p := range pairs {
			log.Printf("calendar %d: overlapping blocked periods %s..%s and %s..%s",
				m.CalendarID,
				p[0].Start.Format(DateFormat), p[0].End.Format(DateFormat),
				p[1].Start.Format(DateFormat), p[1].End.Format(DateFormat))
		}
	}

	computed := ComputeStates(intervals, s.yearStart, s.yearEnd)

	rec, err := s.reconciler.Reconcile(ctx, m.CalendarID, computed, s.yearStart, s.yearEnd)
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		res.Status = StatusFailed
		return res
	}

	res.Inserted = rec.Inserted
	res.Updated = rec.Updated
	res.Status = StatusOK
	return res
}

// parseIntervals converts raw period strings to intervals, dropping any with
// unparsable dates.
func (s *Service) parseIntervals(calendarID int64, periods []streamline.BlockedPeriod) []BlockedInterval {
	intervals := make([]BlockedInterval, 0, len(periods))
	for _, p := range periods {
		start, err := ParseDate(p.StartDate)
		if err != nil {
			log.Printf("calendar %d: dropping period with bad start date %q", calendarID, p.StartDate)
			continue
		}
		end, err := ParseDate(p.EndDate)
		if err != nil {
			log.Printf("calendar %d: dropping period with bad end date %q", calendarID, p.EndDate)
			continue
		}
		intervals = append(intervals, BlockedInterval{Start: start, End: end})
	}
	return intervals
}

// Run processes every mapped property and aggregates the per-property
// results. With Workers > 1 the pipelines run in parallel; each property's
// own fetch -> compute -> reconcile stays ordered.
func (s *Service) Run(ctx context.Context) (Summary, []PropertyResult, error) {
	mappings, err := s.mappings.ListAll(ctx)
	if err != nil {
		return Summary{}, nil, err
	}

	log.Printf("availability sync: %d properties, range %s..%s",
		len(mappings), s.yearStart.Format(DateFormat), s.yearEnd.Format(DateFormat))

	results := make([]PropertyResult, len(mappings))

	if s.workers == 1 {
		for i, m := range mappings {
			results[i] = s.ProcessProperty(ctx, m)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, s.workers)
		for i, m := range mappings {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, m domain.CalendarMapping) {
				defer wg.Done()
				defer func() { <-sem }()
				results[i] = s.ProcessProperty(ctx, m)
			}(i, m)
		}
		wg.Wait()
	}

	var sum Summary
	sum.Total = len(results)
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			sum.Successful++
			sum.Inserted += r.Inserted
			sum.Updated += r.Updated
		case StatusSkipped:
			sum.Skipped++
		case StatusFailed:
			sum.Failed++
			log.Printf("calendar %d: sync failed: %v", r.CalendarID, r.Err)
		}
	}

	log.Printf("availability sync done: ok=%d skipped=%d failed=%d inserted=%d updated=%d",
		sum.Successful, sum.Skipped, sum.Failed, sum.Inserted, sum.Updated)

	return sum, results, nil
}
