// Command availability_sync pulls blocked periods from Streamline for every
// mapped cabin and reconciles the derived day states into the calendar
// table. Runs once by default; -schedule keeps it resident under a cron
// expression.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"cabinrentals/internal/availability"
	"cabinrentals/internal/config"
	"cabinrentals/internal/database"
	"cabinrentals/internal/repository"
	"cabinrentals/internal/streamline"
)

func main() {
	schedule := flag.String("schedule", "", `cron expression, e.g. "0 4 * * *"; empty runs the sync once`)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireStreamline(); err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	client, err := streamline.New(cfg.StreamlineAPIURL, cfg.StreamlineTokenKey, cfg.StreamlineTokenSecret, cfg.StreamlineTimeout)
	if err != nil {
		log.Fatal(err)
	}

	service := availability.NewService(
		client,
		repository.NewMappingRepository(db),
		repository.NewCalendarRepository(db),
		availability.ServiceConfig{
			Year:        cfg.SyncYear,
			Workers:     cfg.SyncWorkers,
			LookupBatch: cfg.LookupBatch,
		},
	)

	run := func() {
		summary, _, err := service.Run(context.Background())
		if err != nil {
			log.Printf("availability sync failed: %v", err)
			return
		}
		log.Printf("properties: total=%d ok=%d skipped=%d failed=%d",
			summary.Total, summary.Successful, summary.Skipped, summary.Failed)
		log.Printf("rows: inserted=%d updated=%d", summary.Inserted, summary.Updated)
	}

	if *schedule == "" {
		run()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, run); err != nil {
		log.Fatalf("invalid schedule %q: %v", *schedule, err)
	}
	log.Printf("availability sync scheduled: %s", *schedule)
	c.Run()
}
