package repository

import (
	"context"

	"cabinrentals/internal/domain"

	"gorm.io/gorm"
)

type StateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{db: db}
}

type calendarStateModel struct {
	SID         int    `gorm:"column:sid;primaryKey;autoIncrement:false"`
	CSSClass    string `gorm:"column:css_class"`
	Label       string `gorm:"column:label"`
	Weight      int    `gorm:"column:weight"`
	IsAvailable bool   `gorm:"column:is_available"`
}

func (calendarStateModel) TableName() string { return "availability_calendar_state" }

// ListOrdered returns all calendar states in display order.
func (r *StateRepository) ListOrdered(ctx context.Context) ([]domain.CalendarState, error) {
	var rows []calendarStateModel
	tx := r.db.WithContext(ctx).Order("weight").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CalendarState, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CalendarState{
			SID:         domain.StateID(row.SID),
			CSSClass:    row.CSSClass,
			Label:       row.Label,
			Weight:      row.Weight,
			IsAvailable: row.IsAvailable,
		})
	}
	return out, nil
}
