package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrParse    = errors.New("stored value malformed")
)

// Keys under which the app state is persisted.
const (
	KeyExercises          = "exercises"
	KeyAppSettings        = "app_settings"
	KeyLastScheduledDate  = "last_scheduled_date"
	KeyScheduledExercises = "scheduled_exercises"
	KeyDailyWalks         = "daily_walks"
	KeySprintSessions     = "sprint_sessions"
)

// Store is a key/value blob store with no cross-key transactions.
// Get returns ErrNotFound for an absent key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// LoadJSON reads key and unmarshals it into v.
// An absent key is not an error: found is false and v is untouched.
// A value that fails to parse is reported wrapped in ErrParse.
func LoadJSON(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: unmarshal %s: %s", ErrParse, key, err)
	}

	return true, nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
