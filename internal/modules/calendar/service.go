package calendar

import (
	"context"
	"errors"
	"time"

	"cabinrentals/internal/domain"
	"cabinrentals/internal/repository"
)

const dateFormat = "2006-01-02"

type Service struct {
	mappings MappingRepository
	states   StateRepository
	days     DayStateRepository
	rates    RateRepository
	cabins   CabinSource
}

func NewService(mappings MappingRepository, states StateRepository, days DayStateRepository, rates RateRepository, cabins CabinSource) *Service {
	return &Service{
		mappings: mappings,
		states:   states,
		days:     days,
		rates:    rates,
		cabins:   cabins,
	}
}

// States returns the calendar state lookup table in display order.
func (s *Service) States(ctx context.Context) ([]domain.CalendarState, error) {
	return s.states.ListOrdered(ctx)
}

// CabinCalendar assembles months of availability (and optionally rates) for
// a cabin starting at start's month.
func (s *Service) CabinCalendar(ctx context.Context, cabinID string, months int, start time.Time, includeRates bool) (*CabinCalendar, error) {
	if months < 1 || months > 12 {
		return nil, ErrValidation
	}

	mapping, err := s.resolveMapping(ctx, cabinID)
	if err != nil {
		return nil, err
	}

	stateList, err := s.states.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	stateByID := make(map[domain.StateID]domain.CalendarState, len(stateList))
	for _, st := range stateList {
		stateByID[st.SID] = st
	}

	out := &CabinCalendar{
		CabinID:    cabinID,
		CalendarID: mapping.CalendarID,
	}
	if mapping.StreamlineID != 0 {
		sid := mapping.StreamlineID
		out.StreamlineID = &sid
	}

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		firstDay := cursor
		lastDay := cursor.AddDate(0, 1, -1)

		month := Month{
			Year:         firstDay.Year(),
			MonthNumber:  int(firstDay.Month()),
			Availability: make(map[string]DayAvailability),
			Rates:        make(map[string]domain.DailyRate),
			States:       stateList,
		}

		days, err := s.days.ListRange(ctx, mapping.CalendarID, firstDay.Format(dateFormat), lastDay.Format(dateFormat))
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			cell := DayAvailability{CID: d.CalendarID, Date: d.Date, SID: d.SID}
			if st, ok := stateByID[d.SID]; ok {
				cell.State = &st
			}
			month.Availability[d.Date] = cell
		}

		if includeRates && mapping.StreamlineID != 0 {
			rates, err := s.rates.ListRange(ctx, mapping.StreamlineID, firstDay.Format(dateFormat), lastDay.Format(dateFormat))
			if err != nil {
				return nil, err
			}
			for _, rate := range rates {
				month.Rates[rate.Date] = rate
			}
		}

		out.Months = append(out.Months, month)
		cursor = cursor.AddDate(0, 1, 0)
	}

	return out, nil
}

// CabinCalendarBySlug resolves a published cabin by slug first, then builds
// the same view.
func (s *Service) CabinCalendarBySlug(ctx context.Context, slug string, months int, start time.Time, includeRates bool) (*CabinCalendar, error) {
	cabin, err := s.cabins.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCabinNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, err
	}
	return s.CabinCalendar(ctx, cabin.ID, months, start, includeRates)
}

// resolveMapping finds the calendar mapping for a cabin, falling back to a
// lookup by the cabin's own Streamline id when no direct mapping row exists.
func (s *Service) resolveMapping(ctx context.Context, cabinID string) (*domain.CalendarMapping, error) {
	mapping, err := s.mappings.GetByCabinID(ctx, cabinID)
	if err == nil {
		return mapping, nil
	}
	if !errors.Is(err, repository.ErrMappingNotFound) {
		return nil, err
	}

	cabin, cerr := s.cabins.GetByID(ctx, cabinID)
	if cerr != nil {
		if errors.Is(cerr, repository.ErrCabinNotFound) {
			return nil, ErrCabinNotFound
		}
		return nil, cerr
	}
	if cabin.StreamlineID == nil {
		return nil, ErrCalendarNotFound
	}

	mapping, err = s.mappings.GetByStreamlineID(ctx, *cabin.StreamlineID)
	if err != nil {
		if errors.Is(err, repository.ErrMappingNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}
	return mapping, nil
}
