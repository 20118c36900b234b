package main

import (
	"context"
	"log"

	"github.com/arnavshah/roster-api/pkg/auth"
	"github.com/arnavshah/roster-api/pkg/config"
	"github.com/arnavshah/roster-api/pkg/database"
	"github.com/arnavshah/roster-api/pkg/handlers"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	store := database.NewStore(db)
	svc := roster.NewService(store, nil)

	if err := auth.EnsureBossExists(context.Background(), store, svc, cfg.BossName, cfg.BossEmail, cfg.BossPassword); err != nil {
		log.Fatalf("could not bootstrap boss account: %v", err)
	}

	h := &handlers.Handler{
		Roster:    svc,
		Employees: store,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	}
	r := handlers.NewRouter(h)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
