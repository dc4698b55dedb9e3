package pool

import (
	"context"
	"fmt"
	"time"

	"reservoir/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a pool store with a short lived read cache. Mutating
// services must keep using the raw store, the wrapper only serves the
// read side of the api.
func Cache(store core.PoolStore, exp time.Duration) core.PoolStore {
	return &cachePoolStore{
		PoolStore: store,
		cache:     gcache.New(256).LRU().Expiration(exp).Build(),
		sf:        &singleflight.Group{},
	}
}

type cachePoolStore struct {
	core.PoolStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePoolStore) Create(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	if err := s.PoolStore.Create(ctx, tx, pool); err != nil {
		return err
	}
	s.cache.Remove(s.listKey())
	return nil
}

func (s *cachePoolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	if v, err := s.cache.Get(s.assetKey(assetID)); err == nil {
		if pool, ok := v.(*core.Pool); ok {
			return pool, nil
		}
	}

	v, err, _ := s.sf.Do(s.assetKey(assetID), func() (interface{}, error) {
		pool, err := s.PoolStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if pool.ID > 0 {
			s.cachePool(pool)
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Pool), nil
}

func (s *cachePoolStore) All(ctx context.Context) ([]*core.Pool, error) {
	if v, err := s.cache.Get(s.listKey()); err == nil {
		if pools, ok := v.([]*core.Pool); ok {
			return pools, nil
		}
	}

	v, err, _ := s.sf.Do(s.listKey(), func() (interface{}, error) {
		pools, err := s.PoolStore.All(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(s.listKey(), pools)
		for _, pool := range pools {
			s.cachePool(pool)
		}
		return pools, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.Pool), nil
}

func (s *cachePoolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	if err := s.PoolStore.Update(ctx, tx, pool); err != nil {
		return err
	}
	s.cache.Remove(s.assetKey(pool.AssetID))
	s.cache.Remove(s.listKey())
	return nil
}

func (s *cachePoolStore) cachePool(pool *core.Pool) {
	s.cache.Set(s.assetKey(pool.AssetID), pool)
}

func (s *cachePoolStore) assetKey(assetID string) string {
	return fmt.Sprintf("pool:asset:%s", assetID)
}

func (s *cachePoolStore) listKey() string {
	return "pool:all"
}
