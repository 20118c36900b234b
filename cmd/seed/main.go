package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/arnavshah/roster-api/pkg/auth"
	"github.com/arnavshah/roster-api/pkg/config"
	"github.com/arnavshah/roster-api/pkg/database"
	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
)

type seedUser struct {
	email, name, password string
	role                  models.Role
}

var users = []seedUser{
	{"boss@example.com", "Boss", "bosspass", models.RoleBoss},
	{"manager@example.com", "Manager", "managerpass", models.RoleManager},
	{"staff1@example.com", "Alice", "staffpass1", models.RoleEmployee},
	{"staff2@example.com", "Bob", "staffpass2", models.RoleEmployee},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	db := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	store := database.NewStore(db)
	svc := roster.NewService(store, nil)
	ctx := context.Background()

	ids := make(map[string]string, len(users))
	for _, u := range users {
		emp, err := upsertUser(ctx, store, svc, u)
		if err != nil {
			log.Fatalf("seed %s: %v", u.email, err)
		}
		ids[u.email] = emp.ID
	}

	boss := models.Principal{ID: ids["boss@example.com"], Role: models.RoleBoss}
	shift, err := svc.CreateShift(ctx, boss, roster.CreateShiftInput{
		Date:      "2025-09-22",
		StartTime: "09:00",
		EndTime:   "17:00",
		Location:  "Depot A",
		Position:  "Driver",
	})
	if err != nil {
		log.Fatalf("seed shift: %v", err)
	}

	for _, email := range []string{"staff1@example.com", "staff2@example.com"} {
		_, err := svc.CreateAssignment(ctx, boss, ids[email], shift.ID)
		if err != nil && !errors.Is(err, roster.ErrOverlapConflict) {
			log.Fatalf("seed assignment for %s: %v", email, err)
		}
	}

	fmt.Println("Seed done.")
}

// upsertUser returns the existing account for u.email or registers it
func upsertUser(ctx context.Context, store *database.Store, svc *roster.Service, u seedUser) (*models.Employee, error) {
	emp, err := store.FindEmployeeByEmail(ctx, u.email)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, roster.ErrEmployeeNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(u.password)
	if err != nil {
		return nil, err
	}
	return svc.RegisterEmployee(ctx, roster.CreateEmployeeInput{
		Name:         u.name,
		Email:        u.email,
		Role:         u.role,
		PasswordHash: hash,
	})
}
