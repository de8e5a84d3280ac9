package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/groove/internal/api"
	"github.com/2beens/groove/internal/config"
	"github.com/2beens/groove/internal/groove"
	"github.com/2beens/groove/internal/middleware"
	"github.com/2beens/groove/internal/notify"
	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/telemetry/metrics"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config   *config.Config
	loc      *time.Location
	store    *store.Opened
	notifier *notify.LocalNotifier
	service  *groove.Service

	// daily refresh loop
	runCancel context.CancelFunc
	runDone   chan struct{}

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config *config.Config
	// Deliver is called for every due alert; nil logs it.
	Deliver func(notify.Alert)
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opened, err := store.Open(ctx, store.OpenParams{
		Backend:        cfg.StoreBackend,
		CacheSize:      cfg.StoreCacheSize,
		RedisHost:      cfg.RedisHost,
		RedisPort:      cfg.RedisPort,
		RedisPassword:  cfg.RedisPassword,
		RedisKeyPrefix: cfg.RedisKeyPrefix,
		PostgresHost:   cfg.PostgresHost,
		PostgresPort:   cfg.PostgresPort,
		PostgresDBName: cfg.PostgresDBName,
		SQLitePath:     cfg.SQLitePath,
		TracingEnabled: cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	promRegistry := metrics.SetupPrometheus(opened.Collectors...)
	metricsManager := metrics.NewManager("groove", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	notifier := notify.NewLocalNotifier(params.Deliver)
	service := groove.NewService(groove.ServiceParams{
		Store:          opened.Store,
		Notifier:       notifier,
		Metrics:        metricsManager,
		SnoozeDuration: cfg.SnoozeDuration(),
		Now: func() time.Time {
			return time.Now().In(loc)
		},
	})

	return &Server{
		config:         cfg,
		loc:            loc,
		store:          opened,
		notifier:       notifier,
		service:        service,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("groove-router"))

	apiHandler := api.NewHandler(s.service, s.loc)
	apiHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// Serve starts the API and metrics servers and the daily refresh loop. It does not block.
func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.MetricsHost, s.config.MetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	runCtx, runCancel := context.WithCancel(ctx)
	s.runCancel = runCancel
	s.runDone = make(chan struct{})
	go func() {
		defer close(s.runDone)
		s.service.Run(runCtx, s.config.RefreshInterval.Duration)
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.runCancel != nil {
		s.runCancel()
		<-s.runDone
		log.Debugln("daily refresh loop stopped")
	}

	s.notifier.Stop()

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if err := s.store.Close(); err != nil {
		log.Errorf("failed to close store: %s", err)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
