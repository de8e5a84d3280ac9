package settings

import (
	"context"
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

// Load never fails: absent or unreadable settings yield the defaults.
func (r *Repo) Load(ctx context.Context) AppSettings {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.load")
	defer span.End()

	var s AppSettings
	found, err := store.LoadJSON(ctx, r.store, store.KeyAppSettings, &s)
	if err != nil {
		log.Errorf("load app settings, using defaults: %s", err)
		return Defaults()
	}
	if !found {
		return Defaults()
	}
	return s
}

func (r *Repo) Save(ctx context.Context, s AppSettings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := store.SaveJSON(ctx, r.store, store.KeyAppSettings, s.Normalize()); err != nil {
		return fmt.Errorf("save app settings: %w", err)
	}
	return nil
}
