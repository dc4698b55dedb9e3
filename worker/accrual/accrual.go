package accrual

import (
	"context"
	"time"

	"reservoir/core"
	"reservoir/pkg/reservoir"
	"reservoir/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Accruer rolls pool interest forward so rates and indexes stay fresh
// between operations. Paused pools keep accruing, outstanding debt does
// not stop growing.
type Accruer struct {
	worker.BaseJob
	Config    *core.Config
	DB        *db.DB
	PoolStore core.PoolStore
}

// New new accrual worker
func New(cfg *core.Config, database *db.DB, poolStore core.PoolStore) *Accruer {
	job := Accruer{
		Config:    cfg,
		DB:        database,
		PoolStore: poolStore,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Accruer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	pools, err := w.PoolStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("pools.All")
		return err
	}

	now := time.Now()
	for _, pool := range pools {
		if now.Unix() <= pool.LastAccruedAt.Unix() {
			continue
		}

		reservoir.AccrueInterest(pool, now)

		if err := w.DB.Tx(func(tx *db.DB) error {
			return w.PoolStore.Update(ctx, tx, pool)
		}); err != nil {
			// an operation accrued this pool first, the next round catches up
			if err == db.ErrOptimisticLock {
				continue
			}

			log.WithError(err).Errorln("pools.Update")
			return err
		}
	}

	return nil
}
