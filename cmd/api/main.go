package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cabinrentals/internal/availability"
	"cabinrentals/internal/config"
	"cabinrentals/internal/database"
	"cabinrentals/internal/modules/calendar"
	"cabinrentals/internal/modules/catalog"
	"cabinrentals/internal/modules/pms"
	syncmod "cabinrentals/internal/modules/sync"
	"cabinrentals/internal/repository"
	"cabinrentals/internal/streamline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	cabinRepo := repository.NewCabinRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	stateRepo := repository.NewStateRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	rateRepo := repository.NewRateRepository(db)

	calendarService := calendar.NewService(mappingRepo, stateRepo, calendarRepo, rateRepo, cabinRepo)
	calendarHandler := calendar.NewHandler(calendarService)

	catalogHandler := catalog.NewHandler(cabinRepo)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		calendarHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// The PMS-backed surface only exists when credentials are present;
		// the read API works without them.
		if err := cfg.RequireStreamline(); err == nil {
			client, err := streamline.New(cfg.StreamlineAPIURL, cfg.StreamlineTokenKey, cfg.StreamlineTokenSecret, cfg.StreamlineTimeout)
			if err != nil {
				log.Fatal(err)
			}

			syncService := availability.NewService(client, mappingRepo, calendarRepo, availability.ServiceConfig{
				Year:        cfg.SyncYear,
				Workers:     cfg.SyncWorkers,
				LookupBatch: cfg.LookupBatch,
			})

			syncmod.NewHandler(syncService).RegisterRoutes(v1)
			pms.NewHandler(client).RegisterRoutes(v1)
		} else {
			log.Printf("Streamline credentials missing; sync and PMS routes disabled")
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
