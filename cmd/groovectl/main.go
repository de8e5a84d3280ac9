package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/2beens/groove/internal/config"
	"github.com/2beens/groove/internal/groove"
	"github.com/2beens/groove/internal/logging"
	"github.com/2beens/groove/internal/notify"
	"github.com/2beens/groove/internal/store"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := os.Getenv("GROOVE_ENV")
	if env == "" {
		env = "development"
	}
	configPath := os.Getenv("GROOVE_CONFIG")
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	// only warnings and up, the output is for humans
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogLevel:    "warn",
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("location: %s", err)
	}

	ctx := context.Background()
	opened, err := store.Open(ctx, store.OpenParams{
		Backend:        cfg.StoreBackend,
		RedisHost:      cfg.RedisHost,
		RedisPort:      cfg.RedisPort,
		RedisPassword:  cfg.RedisPassword,
		RedisKeyPrefix: cfg.RedisKeyPrefix,
		PostgresHost:   cfg.PostgresHost,
		PostgresPort:   cfg.PostgresPort,
		PostgresDBName: cfg.PostgresDBName,
		SQLitePath:     cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("open store: %s", err)
	}

	// alerts are delivered by the service; the CLI only records what it would schedule
	recorder := notify.NewRecorder()
	app := NewApp(groove.NewService(groove.ServiceParams{
		Store:          opened.Store,
		Notifier:       recorder,
		SnoozeDuration: cfg.SnoozeDuration(),
		Now: func() time.Time {
			return time.Now().In(loc)
		},
	}), loc)

	cmdErr := SetupCommands(app).ExecuteContext(ctx)
	if err := opened.Close(); err != nil {
		log.Errorf("close store: %s", err)
	}
	if cmdErr != nil {
		os.Exit(1)
	}
}
