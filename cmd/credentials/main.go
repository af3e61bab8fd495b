// Command credentials creates or resets a login, storing a bcrypt hash.
package main

import (
	"context"
	"flag"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/app"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	role := flag.String("role", "student", "admin or student")
	id := flag.String("id", "", "admin id or student registration number")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *id == "" || *password == "" {
		flag.Usage()
		logger.Error.Fatalf("-id and -password are required")
	}

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	store, err := app.NewStore(config)
	if err != nil {
		logger.Error.Fatalf("Failed to init store: %v", err)
	}
	defer store.Close()

	auth := app.NewAuthenticator(store)
	if err := auth.SetPassword(context.Background(), models.Role(*role), *id, *password); err != nil {
		logger.Error.Fatalf("Failed to save credential: %v", err)
	}

	logger.Info.Printf("Saved %s credential for %s", *role, *id)
}
