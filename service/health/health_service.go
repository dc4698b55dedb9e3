package health

import (
	"context"
	"time"

	"reservoir/core"
	"reservoir/pkg/reservoir"

	"github.com/shopspring/decimal"
)

type healthService struct {
	poolStore    core.PoolStore
	priceService core.PriceOracleService
}

// New new health service
func New(poolStore core.PoolStore, priceSrv core.PriceOracleService) core.HealthService {
	return &healthService{
		poolStore:    poolStore,
		priceService: priceSrv,
	}
}

// Evaluate value the legs of a position and derive its solvency snapshot.
//
// Legs arrive in memory so pending mutations are valued exactly. Pools the
// caller has already accrued override the stored state, every other pool is
// accrued on a copy so valuation never writes back.
func (s *healthService) Evaluate(ctx context.Context, collaterals []*core.Collateral, debts []*core.Debt, pools map[string]*core.Pool) (*core.HealthSnapshot, error) {
	now := time.Now()

	snapshot := &core.HealthSnapshot{
		EvaluatedAt: now,
	}

	collateralValue := decimal.Zero
	borrowLimit := decimal.Zero
	liquidationLimit := decimal.Zero

	for _, collateral := range collaterals {
		if snapshot.PositionID == "" {
			snapshot.PositionID = collateral.PositionID
		}

		if !collateral.Shares.IsPositive() {
			continue
		}

		pool, err := s.poolOf(ctx, pools, collateral.AssetID, now)
		if err != nil {
			return nil, err
		}

		price, err := s.priceService.GetPrice(ctx, collateral.AssetID)
		if err != nil {
			return nil, err
		}

		value := collateral.Shares.Mul(reservoir.CurExchangeRate(pool)).Mul(price)
		collateralValue = collateralValue.Add(value)
		borrowLimit = borrowLimit.Add(value.Mul(pool.CollateralFactor))
		liquidationLimit = liquidationLimit.Add(value.Mul(pool.LiquidationThreshold))
	}

	debtValue := decimal.Zero

	for _, debt := range debts {
		if snapshot.PositionID == "" {
			snapshot.PositionID = debt.PositionID
		}

		if !debt.Principal.IsPositive() {
			continue
		}

		pool, err := s.poolOf(ctx, pools, debt.AssetID, now)
		if err != nil {
			return nil, err
		}

		value, err := s.priceService.GetUSDValue(ctx, debt.AssetID, reservoir.DebtBalance(debt, pool))
		if err != nil {
			return nil, err
		}

		debtValue = debtValue.Add(value)
	}

	snapshot.CollateralValue = collateralValue.Truncate(8)
	snapshot.DebtValue = debtValue.Truncate(8)
	snapshot.BorrowLimit = borrowLimit.Truncate(8)
	snapshot.LiquidationLimit = liquidationLimit.Truncate(8)
	snapshot.Liquidity = snapshot.BorrowLimit.Sub(snapshot.DebtValue)
	snapshot.HealthFactor = reservoir.HealthFactor(snapshot.LiquidationLimit, snapshot.DebtValue)

	return snapshot, nil
}

// poolOf resolve a pool for valuation, preferring the caller's accrued copy
func (s *healthService) poolOf(ctx context.Context, overrides map[string]*core.Pool, assetID string, at time.Time) (*core.Pool, error) {
	if pool, ok := overrides[assetID]; ok {
		return pool, nil
	}

	pool, err := s.poolStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if pool.ID == 0 {
		return nil, core.ErrPoolNotFound
	}

	accrued := *pool
	reservoir.AccrueInterest(&accrued, at)
	return &accrued, nil
}
