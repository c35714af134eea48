package calendar

import (
	"context"

	"cabinrentals/internal/domain"
)

// MappingRepository resolves cabins to their calendar namespace.
type MappingRepository interface {
	GetByCabinID(ctx context.Context, cabinID string) (*domain.CalendarMapping, error)
	GetByStreamlineID(ctx context.Context, streamlineID int64) (*domain.CalendarMapping, error)
}

// StateRepository lists the calendar state lookup table.
type StateRepository interface {
	ListOrdered(ctx context.Context) ([]domain.CalendarState, error)
}

// DayStateRepository reads reconciled availability rows. This module never
// writes them; the availability sync owns the table.
type DayStateRepository interface {
	ListRange(ctx context.Context, calendarID int64, from, to string) ([]domain.DayState, error)
}

// RateRepository reads nightly rates.
type RateRepository interface {
	ListRange(ctx context.Context, streamlineID int64, from, to string) ([]domain.DailyRate, error)
}

// CabinSource resolves cabins by id or slug.
type CabinSource interface {
	GetByID(ctx context.Context, id string) (*domain.Cabin, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Cabin, error)
}
