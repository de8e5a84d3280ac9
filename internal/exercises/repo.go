package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type Repo struct {
	store store.Store
}

func NewRepo(s store.Store) *Repo {
	return &Repo{
		store: s,
	}
}

// Load returns the persisted catalog. On first run the seed catalog is stored and returned.
// Unreadable or malformed data is logged and replaced by the seed catalog, never failing the caller.
func (r *Repo) Load(ctx context.Context) (*Catalog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.load")
	defer span.End()

	var list []Exercise
	found, err := store.LoadJSON(ctx, r.store, store.KeyExercises, &list)
	if err != nil {
		if errors.Is(err, store.ErrParse) {
			log.Errorf("exercises malformed, falling back to seed catalog: %s", err)
		} else {
			log.Errorf("load exercises, falling back to seed catalog: %s", err)
		}
		return NewSeededCatalog(), nil
	}

	if !found {
		log.Infoln("no exercises stored yet, seeding the catalog")
		catalog := NewSeededCatalog()
		if err := r.Save(ctx, catalog); err != nil {
			log.Errorf("store seed catalog: %s", err)
		}
		return catalog, nil
	}

	return NewCatalog(list), nil
}

func (r *Repo) Save(ctx context.Context, catalog *Catalog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := store.SaveJSON(ctx, r.store, store.KeyExercises, catalog.All()); err != nil {
		return fmt.Errorf("save exercises: %w", err)
	}
	return nil
}
