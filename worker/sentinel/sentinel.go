package sentinel

import (
	"context"
	"errors"
	"time"

	"reservoir/core"
	"reservoir/pkg/reservoir"
	"reservoir/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	checkpointKey = "positions_checkpoint"
	limit         = 500
)

// Sentinel sweeps positions and keeps their health status current.
//
// Repay never reads the oracle, flipping a position back to healthy is
// this worker's job, as is flagging fresh shortfalls for liquidation.
type Sentinel struct {
	worker.TickWorker
	db            *db.DB
	capacity      int64
	propertyStore property.Store
	poolStore     core.PoolStore
	positionStore core.PositionStore
	healthService core.HealthService
}

// New new sentinel worker
func New(
	database *db.DB,
	capacity int64,
	propertyStore property.Store,
	poolStore core.PoolStore,
	positionStore core.PositionStore,
	healthService core.HealthService,
) *Sentinel {
	if capacity <= 0 {
		capacity = 8
	}

	return &Sentinel{
		db:            database,
		capacity:      capacity,
		propertyStore: propertyStore,
		poolStore:     poolStore,
		positionStore: positionStore,
		healthService: healthService,
	}
}

// Run run worker
func (w *Sentinel) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sentinel")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Sentinel) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.propertyStore.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get error")
		return err
	}

	positions, err := w.positionStore.List(ctx, uint64(v.Int64()), limit)
	if err != nil {
		log.WithError(err).Errorln("positions.List")
		return err
	}

	if len(positions) == 0 {
		if v.Int64() > 0 {
			if err := w.propertyStore.Save(ctx, checkpointKey, 0); err != nil {
				log.WithError(err).Errorln("property.Save")
				return err
			}
		}

		return errors.New("EOF")
	}

	pools, err := w.poolStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("pools.All")
		return err
	}

	// accrue once per batch, valuation only, nothing is written back
	overrides := make(map[string]*core.Pool, len(pools))
	now := time.Now()
	for _, pool := range pools {
		accrued := *pool
		reservoir.AccrueInterest(&accrued, now)
		overrides[accrued.AssetID] = &accrued
	}

	sem := semaphore.NewWeighted(w.capacity)
	g := errgroup.Group{}

	for idx := range positions {
		position := positions[idx]

		if err := sem.Acquire(ctx, 1); err != nil {
			return g.Wait()
		}

		g.Go(func() error {
			defer sem.Release(1)
			return w.refresh(ctx, position, overrides)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return w.propertyStore.Save(ctx, checkpointKey, positions[len(positions)-1].ID)
}

func (w *Sentinel) refresh(ctx context.Context, position *core.Position, overrides map[string]*core.Pool) error {
	log := logger.FromContext(ctx).WithField("position_id", position.PositionID)

	if position.Status == core.PositionStatusClosed {
		return nil
	}

	collaterals, err := w.positionStore.ListCollaterals(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListCollaterals")
		return err
	}

	debts, err := w.positionStore.ListDebts(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListDebts")
		return err
	}

	snapshot, err := w.healthService.Evaluate(ctx, collaterals, debts, overrides)
	if err != nil {
		// a stale or missing price must not wedge the sweep
		log.WithError(err).Infoln("skip: health evaluate")
		return nil
	}

	next := core.PositionStatusHealthy
	if snapshot.Liquidatable() {
		next = core.PositionStatusLiquidatable
	}

	if next == position.Status {
		return nil
	}

	position.Status = next
	if err := w.db.Tx(func(tx *db.DB) error {
		return w.positionStore.Update(ctx, tx, position)
	}); err != nil {
		// an operation moved the position first, the next sweep settles it
		if err == db.ErrOptimisticLock {
			return nil
		}

		log.WithError(err).Errorln("positions.Update")
		return err
	}

	log.Infoln("position status refreshed:", next.String())
	return nil
}
