package config

import (
	"database/sql"
	"fmt"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/fluffyriot/peerbench/internal/database"

	_ "github.com/lib/pq"
)

type AppConfig struct {
	Address string `env:"ADDRESS" envDefault:":8080"`

	PostgresDB       string `env:"POSTGRES_DB"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"db"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`

	// Discovery service used for Instagram and TikTok candidate lookups.
	DiscoveryAPIURL string `env:"DISCOVERY_API_URL" envDefault:"http://localhost:8090"`
	// YouTube goes through the Data API directly.
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	InsightsAPIURL string `env:"INSIGHTS_API_URL" envDefault:"http://localhost:8091"`
	InsightsAPIKey string `env:"INSIGHTS_API_KEY"`

	// RunTimeoutSeconds bounds how long a status read waits for platforms
	// before forcing data-bearing ones to completed.
	RunTimeoutSeconds    int `env:"RUN_TIMEOUT_SECONDS" envDefault:"90"`
	SweepIntervalSeconds int `env:"SWEEP_INTERVAL_SECONDS" envDefault:"60"`

	// DBInitErr is set when the database could not be initialized at boot.
	// Handlers check it so the API degrades instead of crashing.
	DBInitErr error `env:"-"`
}

func Load() (*AppConfig, error) {
	// Optional .env for local runs; in containers everything comes from the
	// environment.
	_ = godotenv.Load()

	cfg := AppConfig{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func LoadDatabase(cfg *AppConfig) (*database.Queries, *sql.DB, error) {
	if cfg.PostgresDB == "" || cfg.PostgresUser == "" || cfg.PostgresPassword == "" {
		return nil, nil, fmt.Errorf("failed to load the database environment configuration")
	}

	connectDbUrl := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)

	db, err := sql.Open("postgres", connectDbUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to the DB: %w", err)
	}

	migrationsDir := "./sql/schema"
	if err := goose.Up(db, migrationsDir); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.EnsureDBVersion(db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get DB version: %w", err)
	}
	fmt.Printf("Migrations applied successfully. Current DB version: %d\n", version)

	return database.New(db), db, nil
}
