package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bensuskins/pantry-hub/internal/config"
	"github.com/bensuskins/pantry-hub/internal/database"
	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/server"
	"github.com/bensuskins/pantry-hub/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	if cfg.LogLevel == "debug" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)

	ctx := context.Background()
	authService, err := services.NewAuthService(ctx, cfg, userRepo)
	if err != nil {
		slog.Error("creating auth service", "error", err)
		os.Exit(1)
	}

	matcher := services.NewRecipeClient(cfg.RecipeAPIURL, cfg.RecipeAPIKey)
	transcriber := services.NewSTTClient(cfg.STTURL)
	lookup := services.NewProductLookup(cfg.ProductLookupURL)

	pantryRepo := repository.NewPantryItemRepository(db)
	go runExpirySweep(pantryRepo)

	srv := server.New(db, cfg, authService, matcher, transcriber, lookup.Lookup)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// runExpirySweep logs a per-user count of items at or near expiry once an
// hour. It is the server-side nudge behind client notification polling.
func runExpirySweep(pantryRepo repository.PantryItemRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		ctx := context.Background()
		items, err := pantryRepo.FindDated(ctx)
		if err != nil {
			slog.Error("loading dated items for expiry sweep", "error", err)
			<-ticker.C
			continue
		}

		type counts struct{ critical, soon int }
		today := time.Now()
		perUser := make(map[string]*counts)
		for _, item := range items {
			tier := services.ClassifyUrgency(services.DaysUntil(item.ExpiryDate, today))
			if tier < models.UrgencySoon {
				continue
			}
			c := perUser[item.UserID]
			if c == nil {
				c = &counts{}
				perUser[item.UserID] = c
			}
			if tier == models.UrgencyCritical {
				c.critical++
			} else {
				c.soon++
			}
		}

		for userID, c := range perUser {
			slog.Info("expiry sweep", "user_id", userID, "critical", c.critical, "soon", c.soon)
		}

		<-ticker.C
	}
}
