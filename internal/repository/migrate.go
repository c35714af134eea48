package repository

import "gorm.io/gorm"

// AutoMigrate creates the calendar and catalog tables. Used by cmd/seed and
// the test suites; production schemas are managed externally.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&calendarStateModel{},
		&dayStateModel{},
		&mappingModel{},
		&cabinModel{},
		&dailyRateModel{},
	)
}
