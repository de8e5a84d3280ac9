package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/2beens/groove/internal"
	"github.com/2beens/groove/internal/config"
	"github.com/2beens/groove/internal/logging"
	"github.com/2beens/groove/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: "groove-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("using store backend: [%s]", cfg.StoreBackend)

	if cfg.LogsPath != "" {
		if exists, err := pkg.PathExists(filepath.Dir(cfg.LogsPath), true); err != nil || !exists {
			log.Fatalf("logs dir for [%s] not found: %v", cfg.LogsPath, err)
		}
	}
	if cfg.StoreBackend == "sqlite" {
		if exists, err := pkg.PathExists(filepath.Dir(cfg.SQLitePath), true); err != nil || !exists {
			log.Fatalf("sqlite dir for [%s] not found: %v", cfg.SQLitePath, err)
		}
	}

	if cfg.StoreBackend == "redis" && cfg.RedisPassword == "" {
		log.Errorf("redis password not set. use GROOVE_REDIS_PASS")
	}
	if cfg.SentryEnabled && cfg.SentryDSN == "" {
		log.Errorf("sentry enabled but DSN not set. use SENTRY_DSN")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config: cfg,
	})
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
