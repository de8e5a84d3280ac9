package store

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/2beens/groove/internal/db"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type OpenParams struct {
	Backend   string
	CacheSize int

	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisKeyPrefix string

	PostgresHost   string
	PostgresPort   string
	PostgresDBName string

	SQLitePath string

	TracingEnabled bool
}

// Opened is a store together with the resources it owns.
type Opened struct {
	Store Store
	// Collectors to be registered on the metrics registry (backend specific).
	Collectors []prometheus.Collector

	closers []func() error
}

func (o *Opened) Close() error {
	var err error
	for _, c := range o.closers {
		err = multierr.Append(err, c())
	}
	return err
}

// Open builds the configured backend, wrapped in a cache when CacheSize > 0.
func Open(ctx context.Context, params OpenParams) (*Opened, error) {
	opened := &Opened{}

	switch strings.ToLower(params.Backend) {
	case "", BackendMemory:
		log.Warnln("using in-memory store, state will not survive a restart")
		opened.Store = NewMemory()
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.RedisHost, params.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.TracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		redisStore := NewRedis(rdb, params.RedisKeyPrefix)
		opened.Store = redisStore
		opened.closers = append(opened.closers, redisStore.Close)
	case BackendPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         params.PostgresHost,
			DBPort:         params.PostgresPort,
			DBName:         params.PostgresDBName,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		pgStore, err := NewPostgres(ctx, dbPool)
		if err != nil {
			dbPool.Close()
			return nil, err
		}
		opened.Store = pgStore
		opened.Collectors = append(opened.Collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": params.PostgresDBName},
		))
		opened.closers = append(opened.closers, pgStore.Close)
	case BackendSQLite:
		sqliteStore, err := NewSQLite(params.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		opened.Store = sqliteStore
		opened.closers = append(opened.closers, sqliteStore.Close)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", params.Backend)
	}

	if params.CacheSize > 0 {
		opened.Store = NewCached(opened.Store, params.CacheSize)
	}

	return opened, nil
}
