package groove

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/notify"
	"github.com/2beens/groove/internal/schedule"
	"github.com/2beens/groove/internal/settings"
	"github.com/2beens/groove/internal/sprint"
	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/telemetry/metrics"
	"github.com/2beens/groove/internal/walk"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultSnoozeDuration = 15 * time.Minute
	// SprintNotificationID stays clear of both slot ids and snoozed ids.
	SprintNotificationID = 9000
)

type ServiceParams struct {
	Store          store.Store
	Notifier       notify.Notifier
	Metrics        *metrics.Manager
	SnoozeDuration time.Duration
	// Now defaults to time.Now; its location decides the calendar days.
	Now     func() time.Time
	NewRand func() *rand.Rand
}

// Service runs the daily refresh and every user operation. Each operation is a
// read-modify-write against the store; the mutex keeps them from interleaving.
type Service struct {
	mutex sync.Mutex

	exercisesRepo *exercises.Repo
	settingsRepo  *settings.Repo
	scheduleRepo  *schedule.Repo
	engine        *schedule.Engine
	sprints       *sprint.Scheduler
	walks         *walk.Tracker
	walkTimer     *walk.Timer

	notifier       notify.Notifier
	metrics        *metrics.Manager
	snoozeDuration time.Duration
	now            func() time.Time
}

func NewService(params ServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	snooze := params.SnoozeDuration
	if snooze <= 0 {
		snooze = DefaultSnoozeDuration
	}
	metricsManager := params.Metrics
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}

	walks := walk.NewTracker(params.Store)
	return &Service{
		exercisesRepo:  exercises.NewRepo(params.Store),
		settingsRepo:   settings.NewRepo(params.Store),
		scheduleRepo:   schedule.NewRepo(params.Store),
		engine:         schedule.NewEngine(params.NewRand),
		sprints:        sprint.NewScheduler(params.Store, params.NewRand),
		walks:          walks,
		walkTimer:      walk.NewTimer(walks, walk.WithClock(now)),
		notifier:       params.Notifier,
		metrics:        metricsManager,
		snoozeDuration: snooze,
		now:            now,
	}
}

// Run refreshes the schedule right away and then on every tick, until ctx is done.
// A running walk timer is stopped and persisted on the way out.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	log.Infof("daily refresh loop started, interval: %s", interval)

	if _, err := s.DailyRefresh(ctx); err != nil {
		log.Errorf("daily refresh: %s", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if _, err := s.StopWalkTimer(context.WithoutCancel(ctx)); err != nil {
				log.Errorf("stop walk timer on shutdown: %s", err)
			}
			log.Infoln("daily refresh loop stopped")
			return
		case <-ticker.C:
			if _, err := s.DailyRefresh(ctx); err != nil {
				log.Errorf("daily refresh: %s", err)
			}
		}
	}
}
