package repository

import (
	"context"
	"errors"
	"fmt"

	"cabinrentals/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateDay signals a unique-key conflict on (cid, date). The
// reconciler treats it as "someone inserted first" and retries as an update.
var ErrDuplicateDay = errors.New("calendar day already exists")

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

type dayStateModel struct {
	CID  int64  `gorm:"column:cid;primaryKey;autoIncrement:false"`
	Date string `gorm:"column:date;primaryKey"`
	SID  int    `gorm:"column:sid"`
}

func (dayStateModel) TableName() string { return "availability_calendar_availability" }

func (r *CalendarRepository) GetStates(ctx context.Context, calendarID int64, dates []string) (map[string]domain.StateID, error) {
	if len(dates) == 0 {
		return map[string]domain.StateID{}, nil
	}

	var rows []dayStateModel
	tx := r.db.WithContext(ctx).
		Where("cid = ? AND date IN ?", calendarID, dates).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[string]domain.StateID, len(rows))
	for _, row := range rows {
		out[row.Date] = domain.StateID(row.SID)
	}
	return out, nil
}

func (r *CalendarRepository) InsertState(ctx context.Context, calendarID int64, date string, sid domain.StateID) error {
	m := dayStateModel{CID: calendarID, Date: date, SID: int(sid)}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isDuplicate(tx.Error) {
			return fmt.Errorf("%w: cid=%d date=%s", ErrDuplicateDay, calendarID, date)
		}
		return tx.Error
	}
	return nil
}

func (r *CalendarRepository) UpdateState(ctx context.Context, calendarID int64, date string, sid domain.StateID) error {
	tx := r.db.WithContext(ctx).
		Model(&dayStateModel{}).
		Where("cid = ? AND date = ?", calendarID, date).
		Update("sid", int(sid))
	return tx.Error
}

func (r *CalendarRepository) DeleteRange(ctx context.Context, calendarID int64, from, to string) error {
	tx := r.db.WithContext(ctx).
		Where("cid = ? AND date >= ? AND date <= ?", calendarID, from, to).
		Delete(&dayStateModel{})
	return tx.Error
}

func (r *CalendarRepository) ListRange(ctx context.Context, calendarID int64, from, to string) ([]domain.DayState, error) {
	var rows []dayStateModel
	tx := r.db.WithContext(ctx).
		Where("cid = ? AND date >= ? AND date <= ?", calendarID, from, to).
		Order("date").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.DayState, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.DayState{
			CalendarID: row.CID,
			Date:       row.Date,
			SID:        domain.StateID(row.SID),
		})
	}
	return out, nil
}

// isDuplicate matches unique-violation errors from both dialects: gorm's
// translated sentinel and the raw PostgreSQL 23505 code.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
