// Command createuser creates a user account directly in the database. It is
// the bootstrap path for the first specialist account, since the HTTP API only
// lets existing specialists create users.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Domikas122/ITSM-System-VIKO/internal/config"
	"github.com/Domikas122/ITSM-System-VIKO/internal/identity"
	identitypostgres "github.com/Domikas122/ITSM-System-VIKO/internal/identity/postgres"
	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", os.Getenv("APP_CONFIG_PATH"), "path to config file")
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "password (required)")
	role := flag.String("role", "employee", "role: employee or specialist")
	displayName := flag.String("name", "", "display name (defaults to username)")
	email := flag.String("email", "", "email address (required)")
	flag.Parse()

	if *username == "" || *password == "" || *email == "" {
		flag.Usage()
		return fmt.Errorf("username, password and email are required")
	}
	if *displayName == "" {
		*displayName = *username
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	service := identity.NewService(identitypostgres.NewRepository(db), nil)

	user, err := service.Register(ctx, identity.RegisterInput{
		Username:    *username,
		Password:    *password,
		Role:        *role,
		DisplayName: *displayName,
		Email:       *email,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created user %s (%s) with role %s\n", user.Username, user.ID, user.Role)
	return nil
}
