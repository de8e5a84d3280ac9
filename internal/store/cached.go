package store

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*Cached)(nil)

// Cached puts a freecache in front of another store.
// Writes go to the backing store first, then to the cache.
type Cached struct {
	inner Store
	cache *freecache.Cache
}

func NewCached(inner Store, cacheSize int) *Cached {
	return &Cached{
		inner: inner,
		cache: freecache.NewCache(cacheSize),
	}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	if v, err := c.cache.Get([]byte(key)); err == nil {
		return v, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("cached store, get [%s] from cache: %s", key, err)
	}

	v, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set([]byte(key), v, 0); err != nil {
		log.Warnf("cached store, cache [%s]: %s", key, err)
	}
	return v, nil
}

func (c *Cached) Set(ctx context.Context, key string, value []byte) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.cache.Del([]byte(key))
		return err
	}

	if err := c.cache.Set([]byte(key), value, 0); err != nil {
		// too large for the cache, make sure a stale value is not served
		c.cache.Del([]byte(key))
		log.Warnf("cached store, cache [%s]: %s", key, err)
	}
	return nil
}
