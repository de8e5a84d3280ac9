package groove

import (
	"context"

	"github.com/2beens/groove/internal/settings"
	"github.com/2beens/groove/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

func (s *Service) Settings(ctx context.Context) settings.AppSettings {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.settingsRepo.Load(ctx)
}

// UpdateSettings stores the settings, clamped. When the change affects today's schedule or
// turns notifications on or off, today is rescheduled.
func (s *Service) UpdateSettings(ctx context.Context, updated settings.AppSettings) (_ settings.AppSettings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.updateSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	previous := s.settingsRepo.Load(ctx)
	updated = updated.Normalize()
	if err := s.settingsRepo.Save(ctx, updated); err != nil {
		return settings.AppSettings{}, err
	}

	if previous.ScheduleChanged(updated) || previous.NotificationsEnabled != updated.NotificationsEnabled {
		log.Infoln("settings changed, rescheduling today")
		if _, err := s.rescheduleLocked(ctx, s.now(), false); err != nil {
			return settings.AppSettings{}, err
		}
	}
	return updated, nil
}

func (s *Service) CompleteOnboarding(ctx context.Context) (settings.AppSettings, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current := s.settingsRepo.Load(ctx)
	current.HasSeenOnboarding = true
	if err := s.settingsRepo.Save(ctx, current); err != nil {
		return settings.AppSettings{}, err
	}
	return current, nil
}
