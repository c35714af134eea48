package main

import (
	"fmt"
	"log"
	"time"

	"cabinrentals/internal/database"
	"cabinrentals/internal/repository"
)

// Seeds a local database with the calendar state lookup table and a few
// cabins with mappings and rates. Not for production use.
func main() {
	db, err := database.Connect("cabins.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM daily_rates")
	db.Exec("DELETE FROM availability_calendar_availability")
	db.Exec("DELETE FROM cabin_calendar_mapping")
	db.Exec("DELETE FROM cabins")
	db.Exec("DELETE FROM availability_calendar_state")

	log.Println("Seeding calendar states...")
	states := []struct {
		sid         int
		cssClass    string
		label       string
		weight      int
		isAvailable bool
	}{
		{5, "cal-available", "Available", 0, true},
		{6, "cal-in", "Check-in", 1, false},
		{7, "cal-out", "Check-out", 2, false},
		{8, "cal-inout", "Turn-around", 3, false},
		{9, "cal-booked", "Booked", 4, false},
	}
	for _, s := range states {
		db.Exec(
			"INSERT INTO availability_calendar_state (sid, css_class, label, weight, is_available) VALUES (?, ?, ?, ?, ?)",
			s.sid, s.cssClass, s.label, s.weight, s.isAvailable,
		)
	}

	log.Println("Seeding cabins...")
	cabins := []struct {
		id           string
		name         string
		slug         string
		streamlineID int64
		calendarID   int64
	}{
		{"11111111-1111-1111-1111-111111111111", "Bear Ridge Lodge", "bear-ridge-lodge", 100101, 1},
		{"22222222-2222-2222-2222-222222222222", "Creekside Hideaway", "creekside-hideaway", 100102, 2},
		{"33333333-3333-3333-3333-333333333333", "Smoky View Chalet", "smoky-view-chalet", 100103, 3},
	}
	now := time.Now().UTC()
	for _, c := range cabins {
		db.Exec(
			"INSERT INTO cabins (id, name, cabin_slug, status, streamline_id, bedrooms, bathrooms, sleeps, created_at, updated_at) VALUES (?, ?, ?, 'published', ?, 3, 2, 8, ?, ?)",
			c.id, c.name, c.slug, c.streamlineID, now, now,
		)
		db.Exec(
			"INSERT INTO cabin_calendar_mapping (cabin_id, calendar_id, streamline_id) VALUES (?, ?, ?)",
			c.id, c.calendarID, c.streamlineID,
		)

		// A month of flat rates per cabin so the calendar view has data.
		for d := 0; d < 30; d++ {
			date := now.AddDate(0, 0, d).Format("2006-01-02")
			db.Exec(
				"INSERT INTO daily_rates (id, cabin_id, streamline_id, date, daily_rate, created_at) VALUES (?, ?, ?, ?, ?, ?)",
				fmt.Sprintf("%s-%s", c.id[:8], date), c.id, c.streamlineID, date, 249.0, now,
			)
		}
	}

	log.Println("Seed complete")
}
