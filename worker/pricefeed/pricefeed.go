package pricefeed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reservoir/core"
	"reservoir/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

// priceWindow seconds per provision window, one price per asset per window
const priceWindow = 60

// Worker price feed worker, pulls tickers from the remote feed and
// provides them through the oracle write path
type Worker struct {
	worker.TickWorker
	Config             *core.Config
	PoolStore          core.PoolStore
	PriceStore         core.PriceStore
	PriceOracleService core.PriceOracleService
}

// New new price feed worker
func New(cfg *core.Config, poolStore core.PoolStore, priceStore core.PriceStore, priceSrv core.PriceOracleService) *Worker {
	job := Worker{
		TickWorker: worker.TickWorker{
			Delay:    10 * time.Second,
			ErrDelay: 30 * time.Second,
		},
		Config:             cfg,
		PoolStore:          poolStore,
		PriceStore:         priceStore,
		PriceOracleService: priceSrv,
	}

	return &job
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricefeed")

	pools, err := w.PoolStore.All(ctx)
	if err != nil {
		log.Errorln("fetch all pools error:", err)
		return err
	}

	if len(pools) <= 0 {
		return nil
	}

	wg := sync.WaitGroup{}
	for _, p := range pools {
		wg.Add(1)
		go func(pool *core.Pool) {
			defer wg.Done()
			if !w.isPriceProvided(ctx, pool) {
				ticker, e := w.PriceOracleService.PullPriceTicker(ctx, pool.AssetID, time.Now())
				if e != nil {
					log.Errorln("pull price ticker error:", e)
					return
				}
				if ticker.Price.LessThanOrEqual(decimal.Zero) {
					log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
					return
				}

				w.providePrice(ctx, pool, ticker)
			}
		}(p)
	}

	wg.Wait()

	return nil
}

func (w *Worker) isPriceProvided(ctx context.Context, pool *core.Pool) bool {
	log := logger.FromContext(ctx).WithField("worker", "pricefeed")

	price, e := w.PriceStore.Find(ctx, pool.AssetID)
	if e != nil {
		log.WithError(e).Errorln("prices.Find")
		return false
	}

	if price.ID == 0 {
		return false
	}

	return price.UpdatedAt.Unix()/priceWindow == time.Now().Unix()/priceWindow
}

func (w *Worker) providePrice(ctx context.Context, pool *core.Pool, ticker *core.PriceTicker) error {
	log := logger.FromContext(ctx).WithField("worker", "pricefeed")

	window := time.Now().Unix() / priceWindow
	traceID := uuid.Modify(pool.AssetID, fmt.Sprintf("price:%s:%d", ticker.Provider, window))

	if _, e := w.PriceOracleService.ProvidePrice(ctx, &core.ProvidePriceReq{
		TraceID:    traceID,
		AssetID:    pool.AssetID,
		Symbol:     ticker.Symbol,
		Price:      ticker.Price,
		Confidence: ticker.Confidence,
		Provider:   ticker.Provider,
	}); e != nil {
		log.Errorln("provide price error:", e)
		return e
	}

	return nil
}
