package integration_testing

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/2beens/groove/internal"
	"github.com/2beens/groove/internal/config"
	"github.com/2beens/groove/internal/db"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const serverHost = "localhost"

type Suite struct {
	dockerPool *dockertest.Pool
	teardown   []func()
}

func newSuite() (*Suite, error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}

	// uses pool to try to connect to Docker
	if err = pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}
	pool.MaxWait = time.Minute

	return &Suite{
		dockerPool: pool,
	}, nil
}

func (s *Suite) cleanup() {
	for _, teardown := range s.teardown {
		teardown()
	}
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "groove-redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}

	s.teardown = append(s.teardown, func() {
		_ = redisResource.Close()
	})

	redisPort := redisResource.GetPort("6379/tcp")
	err = s.dockerPool.Retry(func() error {
		rdb := redis.NewClient(&redis.Options{
			Addr: net.JoinHostPort("localhost", redisPort),
		})
		defer rdb.Close()
		return rdb.Ping(context.Background()).Err()
	})
	if err != nil {
		return "", fmt.Errorf("wait for redis: %w", err)
	}

	return redisPort, nil
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Name:       "groove-postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=groove",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %w", err)
	}

	s.teardown = append(s.teardown, func() {
		_ = pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	err = s.dockerPool.Retry(func() error {
		ctx := context.Background()
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost: "localhost",
			DBPort: pgPort,
			DBName: "groove",
		})
		if err != nil {
			return err
		}
		defer pool.Close()
		return pool.Ping(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("wait for postgres: %w", err)
	}

	return pgPort, nil
}

func getTestConfig(backend string, port int) *config.Config {
	return &config.Config{
		Environment:     "development",
		Host:            serverHost,
		Port:            port,
		MetricsHost:     serverHost,
		MetricsPort:     "0",
		Timezone:        "UTC",
		StoreBackend:    backend,
		StoreCacheSize:  1024 * 1024,
		RedisHost:       "localhost",
		RedisKeyPrefix:  "groove-test",
		PostgresHost:    "localhost",
		PostgresDBName:  "groove",
		SnoozeMinutes:   15,
		RefreshInterval: config.Duration{Duration: time.Hour},
	}
}

func startServer(ctx context.Context, cfg *config.Config) (*internal.Server, error) {
	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config: cfg,
	})
	if err != nil {
		return nil, err
	}
	server.Serve(ctx, cfg.Host, cfg.Port)
	return server, nil
}
