package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cabinrentals/internal/domain"
	"cabinrentals/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCalendarStore struct {
	mock.Mock
}

func (m *MockCalendarStore) GetStates(ctx context.Context, calendarID int64, dates []string) (map[string]domain.StateID, error) {
	args := m.Called(ctx, calendarID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StateID), args.Error(1)
}

func (m *MockCalendarStore) InsertState(ctx context.Context, calendarID int64, date string, sid domain.StateID) error {
	args := m.Called(ctx, calendarID, date, sid)
	return args.Error(0)
}

func (m *MockCalendarStore) UpdateState(ctx context.Context, calendarID int64, date string, sid domain.StateID) error {
	args := m.Called(ctx, calendarID, date, sid)
	return args.Error(0)
}

func (m *MockCalendarStore) DeleteRange(ctx context.Context, calendarID int64, from, to string) error {
	args := m.Called(ctx, calendarID, from, to)
	return args.Error(0)
}

// fakeCalendarStore is an in-memory CalendarStore for multi-run tests.
// Safe for concurrent use so parallel-worker tests can share it.
type fakeCalendarStore struct {
	mu      sync.Mutex
	rows    map[string]domain.StateID
	inserts int
	updates int
	deletes int
	lookups []int // batch sizes seen by GetStates
}

func newFakeCalendarStore() *fakeCalendarStore {
	return &fakeCalendarStore{rows: make(map[string]domain.StateID)}
}

func (f *fakeCalendarStore) GetStates(_ context.Context, _ int64, dates []string) (map[string]domain.StateID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, len(dates))
	out := make(map[string]domain.StateID)
	for _, d := range dates {
		if sid, ok := f.rows[d]; ok {
			out[d] = sid
		}
	}
	return out, nil
}

func (f *fakeCalendarStore) InsertState(_ context.Context, _ int64, date string, sid domain.StateID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[date]; ok {
		return repository.ErrDuplicateDay
	}
	f.rows[date] = sid
	f.inserts++
	return nil
}

func (f *fakeCalendarStore) UpdateState(_ context.Context, _ int64, date string, sid domain.StateID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[date] = sid
	f.updates++
	return nil
}

func (f *fakeCalendarStore) DeleteRange(_ context.Context, _ int64, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for d := range f.rows {
		if d >= from && d <= to {
			delete(f.rows, d)
		}
	}
	f.deletes++
	return nil
}

func TestReconcile_PlansInsertsUpdatesAndNoops(t *testing.T) {
	store := new(MockCalendarStore)

	computed := map[string]domain.StateID{
		"2026-06-10": domain.StateCheckIn,
		"2026-06-11": domain.StateBooked,
		"2026-06-12": domain.StateCheckOut,
	}
	store.On("GetStates", mock.Anything, int64(7), []string{"2026-06-10", "2026-06-11", "2026-06-12"}).
		Return(map[string]domain.StateID{
			"2026-06-11": domain.StateBooked,   // same -> no-op
			"2026-06-12": domain.StateBooked,   // differs -> update
		}, nil)
	store.On("InsertState", mock.Anything, int64(7), "2026-06-10", domain.StateCheckIn).Return(nil)
	store.On("UpdateState", mock.Anything, int64(7), "2026-06-12", domain.StateCheckOut).Return(nil)

	r := NewReconciler(store, 0)
	res, err := r.Reconcile(context.Background(), 7, computed, year2026Start, year2026End)
	require.NoError(t, err)

	assert.Equal(t, Result{Inserted: 1, Updated: 1}, res)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "UpdateState", mock.Anything, int64(7), "2026-06-11", mock.Anything)
}

func TestReconcile_EmptyComputedClearsRange(t *testing.T) {
	store := new(MockCalendarStore)
	store.On("DeleteRange", mock.Anything, int64(7), "2026-01-01", "2026-12-31").Return(nil)

	r := NewReconciler(store, 0)
	res, err := r.Reconcile(context.Background(), 7, nil, year2026Start, year2026End)
	require.NoError(t, err)

	assert.Equal(t, Result{}, res)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "GetStates", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_ConflictFallsBackToUpdate(t *testing.T) {
	store := new(MockCalendarStore)

	// Row missing from the lookup but present in the table: a concurrent
	// writer got there first.
	store.On("GetStates", mock.Anything, int64(7), mock.Anything).
		Return(map[string]domain.StateID{}, nil)
	store.On("InsertState", mock.Anything, int64(7), "2026-06-10", domain.StateCheckIn).
		Return(repository.ErrDuplicateDay)
	store.On("UpdateState", mock.Anything, int64(7), "2026-06-10", domain.StateCheckIn).
		Return(nil)

	r := NewReconciler(store, 0)
	res, err := r.Reconcile(context.Background(), 7, map[string]domain.StateID{
		"2026-06-10": domain.StateCheckIn,
	}, year2026Start, year2026End)
	require.NoError(t, err)

	assert.Equal(t, Result{Updated: 1}, res)
	store.AssertExpectations(t)
}

func TestReconcile_SingleDateFailureDoesNotAbort(t *testing.T) {
	store := new(MockCalendarStore)

	store.On("GetStates", mock.Anything, int64(7), mock.Anything).
		Return(map[string]domain.StateID{}, nil)
	store.On("InsertState", mock.Anything, int64(7), "2026-06-10", domain.StateCheckIn).
		Return(errors.New("connection reset"))
	store.On("InsertState", mock.Anything, int64(7), "2026-06-11", domain.StateBooked).
		Return(nil)

	r := NewReconciler(store, 0)
	res, err := r.Reconcile(context.Background(), 7, map[string]domain.StateID{
		"2026-06-10": domain.StateCheckIn,
		"2026-06-11": domain.StateBooked,
	}, year2026Start, year2026End)
	require.NoError(t, err)

	assert.Equal(t, Result{Inserted: 1, Failed: 1}, res)
	store.AssertExpectations(t)
}

func TestReconcile_Idempotent(t *testing.T) {
	store := newFakeCalendarStore()
	r := NewReconciler(store, 0)

	computed := ComputeStates([]BlockedInterval{
		{Start: day(2026, time.June, 10), End: day(2026, time.June, 12)},
	}, year2026Start, year2026End)

	first, err := r.Reconcile(context.Background(), 7, computed, year2026Start, year2026End)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 4}, first)

	second, err := r.Reconcile(context.Background(), 7, computed, year2026Start, year2026End)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)
	assert.Equal(t, 4, store.inserts)
	assert.Equal(t, 0, store.updates)
}

func TestReconcile_BatchesLookups(t *testing.T) {
	store := newFakeCalendarStore()
	r := NewReconciler(store, 2)

	computed := map[string]domain.StateID{
		"2026-06-10": domain.StateCheckIn,
		"2026-06-11": domain.StateBooked,
		"2026-06-12": domain.StateBooked,
		"2026-06-13": domain.StateBooked,
		"2026-06-14": domain.StateCheckOut,
	}

	_, err := r.Reconcile(context.Background(), 7, computed, year2026Start, year2026End)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, store.lookups)
}
