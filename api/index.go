package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/arnavshah/roster-api/pkg/auth"
	"github.com/arnavshah/roster-api/pkg/config"
	"github.com/arnavshah/roster-api/pkg/database"
	"github.com/arnavshah/roster-api/pkg/handlers"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/gin-gonic/gin"
)

var r http.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	store := database.NewStore(db)
	svc := roster.NewService(store, nil)
	if err := auth.EnsureBossExists(context.Background(), store, svc, cfg.BossName, cfg.BossEmail, cfg.BossPassword); err != nil {
		log.Printf("could not bootstrap boss account: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(&handlers.Handler{
		Roster:    svc,
		Employees: store,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	})
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
