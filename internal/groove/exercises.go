package groove

import (
	"context"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/progression"
	"github.com/2beens/groove/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// Exercises lists the catalog; an empty type lists all of it.
func (s *Service) Exercises(ctx context.Context, exType exercises.Type) ([]exercises.Exercise, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	catalog, err := s.exercisesRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if exType == "" {
		return catalog.All(), nil
	}
	return catalog.OfType(exType), nil
}

func (s *Service) Exercise(ctx context.Context, id string) (exercises.Exercise, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	catalog, err := s.exercisesRepo.Load(ctx)
	if err != nil {
		return exercises.Exercise{}, err
	}
	return catalog.ByID(id)
}

// CompleteSession records a performed snack and progresses the exercise when it was easy.
func (s *Service) CompleteSession(ctx context.Context, id string, actualReps int, wasEasy bool) (_ exercises.Exercise, _ progression.Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.completeSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	catalog, err := s.exercisesRepo.Load(ctx)
	if err != nil {
		return exercises.Exercise{}, progression.Result{}, err
	}

	ex, result, err := progression.CompleteSession(catalog, id, actualReps, wasEasy, s.now())
	if err != nil {
		return exercises.Exercise{}, progression.Result{}, err
	}
	if err := s.exercisesRepo.Save(ctx, catalog); err != nil {
		return exercises.Exercise{}, progression.Result{}, err
	}

	s.metrics.CounterSessionsCompleted.WithLabelValues(ex.Type.String()).Inc()
	if result.Progressed {
		s.metrics.CounterProgressions.Inc()
		log.Infof("%s progressed: %d -> %d %s", ex.ID, result.PreviousReps, result.NewReps, ex.Unit())
	}
	return ex, result, nil
}

func (s *Service) MarkAsPerformed(ctx context.Context, id string) (exercises.Exercise, error) {
	return s.mutateCatalog(ctx, "service.markAsPerformed", func(catalog *exercises.Catalog) (exercises.Exercise, error) {
		ex, err := progression.MarkAsPerformed(catalog, id, s.now())
		if err == nil {
			s.metrics.CounterSessionsCompleted.WithLabelValues(ex.Type.String()).Inc()
		}
		return ex, err
	})
}

func (s *Service) SetExerciseEnabled(ctx context.Context, id string, enabled bool) (exercises.Exercise, error) {
	return s.mutateCatalog(ctx, "service.setExerciseEnabled", func(catalog *exercises.Catalog) (exercises.Exercise, error) {
		return catalog.SetEnabled(id, enabled)
	})
}

func (s *Service) AdjustReps(ctx context.Context, id string, reps int) (exercises.Exercise, error) {
	return s.mutateCatalog(ctx, "service.adjustReps", func(catalog *exercises.Catalog) (exercises.Exercise, error) {
		return catalog.AdjustReps(id, reps)
	})
}

func (s *Service) ResetExercise(ctx context.Context, id string) (exercises.Exercise, error) {
	return s.mutateCatalog(ctx, "service.resetExercise", func(catalog *exercises.Catalog) (exercises.Exercise, error) {
		return catalog.ResetProgress(id)
	})
}

func (s *Service) AddExercise(ctx context.Context, ex exercises.Exercise) (exercises.Exercise, error) {
	return s.mutateCatalog(ctx, "service.addExercise", func(catalog *exercises.Catalog) (exercises.Exercise, error) {
		return catalog.Add(ex)
	})
}

// RemoveExercise deletes the exercise. Entries already scheduled today keep their snapshot.
func (s *Service) RemoveExercise(ctx context.Context, id string) error {
	_, err := s.mutateCatalog(ctx, "service.removeExercise", func(catalog *exercises.Catalog) (exercises.Exercise, error) {
		ex, err := catalog.ByID(id)
		if err != nil {
			return exercises.Exercise{}, err
		}
		return ex, catalog.Remove(id)
	})
	return err
}

func (s *Service) mutateCatalog(
	ctx context.Context,
	spanName string,
	mutate func(catalog *exercises.Catalog) (exercises.Exercise, error),
) (_ exercises.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, spanName)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	catalog, err := s.exercisesRepo.Load(ctx)
	if err != nil {
		return exercises.Exercise{}, err
	}

	ex, err := mutate(catalog)
	if err != nil {
		return exercises.Exercise{}, err
	}
	if err := s.exercisesRepo.Save(ctx, catalog); err != nil {
		return exercises.Exercise{}, err
	}
	return ex, nil
}
