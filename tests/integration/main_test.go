//go:build integration

package integration

import (
	"context"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domikas122/ITSM-System-VIKO/internal/app"
	"github.com/Domikas122/ITSM-System-VIKO/internal/config"
	"github.com/Domikas122/ITSM-System-VIKO/internal/identity"
	identitypostgres "github.com/Domikas122/ITSM-System-VIKO/internal/identity/postgres"
	"github.com/Domikas122/ITSM-System-VIKO/internal/testutil"
)

var (
	testServer *httptest.Server
	testDB     *pgxpool.Pool

	// Mailpit for E2E email testing
	mailpitContainer *testutil.MailpitContainer
	mailpitClient    *MailpitClient

	specialistID string
	employeeID   string
)

const (
	specialistUsername = "admin"
	specialistPassword = "admin12345"
	employeeUsername   = "jonas"
	employeePassword   = "jonas12345"
)

// newTestClient creates a fresh unauthenticated client for a test.
func newTestClient(t *testing.T) *testutil.Client {
	t.Helper()
	return testutil.NewClient(testServer.URL)
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := testutil.NewPostgresContainer(ctx)
	if err != nil {
		log.Fatalf("start postgres: %v", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("terminate postgres: %v", err)
		}
	}()

	// Mailpit container for E2E email tests
	mailpitContainer, err = testutil.NewMailpitContainer(ctx)
	if err != nil {
		log.Fatalf("start mailpit: %v", err)
	}
	defer func() {
		if err := mailpitContainer.Terminate(ctx); err != nil {
			log.Printf("terminate mailpit: %v", err)
		}
	}()

	mailpitClient = NewMailpitClient(
		mailpitContainer.APIHost,
		mailpitContainer.APIPort,
	)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			MetricsPort:    "0",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			RequestTimeout: 15 * time.Second,
		},
		Database: config.DatabaseConfig{
			URL:             pgContainer.ConnectionString,
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 3,
			// Embedded migrations run on startup
			MigrateOnStart: true,
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "text",
		},
		JWT: config.JWTConfig{
			SecretKey:           "test-secret-key",
			AccessTokenDuration: 15 * time.Minute,
		},
		// Notifications disabled at app level so the global worker does not
		// compete with test-specific workers for queue items. The queue and
		// delivery tests create their own repositories and workers.
		Notifications: config.NotificationsConfig{
			Enabled: false,
		},
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("create app: %v", err)
	}

	// Direct DB connection for tests that need it
	testDB, err = pgxpool.New(ctx, pgContainer.ConnectionString)
	if err != nil {
		log.Fatalf("create test db pool: %v", err)
	}

	if err := seedUsers(ctx); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	testServer = httptest.NewServer(application.Router())

	code := m.Run()

	testServer.Close()
	testDB.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown app: %v", err)
	}

	os.Exit(code)
}

// seedUsers creates the bootstrap accounts through the identity service so the
// stored credentials are real bcrypt hashes.
func seedUsers(ctx context.Context) error {
	service := identity.NewService(identitypostgres.NewRepository(testDB), nil)

	specialist, err := service.Register(ctx, identity.RegisterInput{
		Username:    specialistUsername,
		Password:    specialistPassword,
		Role:        "specialist",
		DisplayName: "Admin Specialist",
		Email:       "admin@example.com",
	})
	if err != nil {
		return err
	}
	specialistID = specialist.ID

	employee, err := service.Register(ctx, identity.RegisterInput{
		Username:    employeeUsername,
		Password:    employeePassword,
		Role:        "employee",
		DisplayName: "Jonas Employee",
		Email:       "jonas@example.com",
	})
	if err != nil {
		return err
	}
	employeeID = employee.ID

	return nil
}
