package pool

import (
	"context"
	"strings"
	"time"

	"reservoir/core"
	"reservoir/pkg/reservoir"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

var one = decimal.New(1, 0)

// AddPool open a lending pool for a new asset
func (s *poolService) AddPool(ctx context.Context, req *core.AddPoolReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "add_pool",
		"asset_id": req.AssetID,
	})
	ctx = logger.WithContext(ctx, log)

	transaction, err := s.transactionStore.FindByTraceID(ctx, req.TraceID)
	if err != nil {
		log.WithError(err).Errorln("transactions.FindByTraceID")
		return nil, err
	}

	if transaction.ID > 0 {
		return transaction, nil
	}

	symbol := strings.ToUpper(req.Symbol)

	pool, err := s.poolStore.Find(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("pools.Find")
		return nil, err
	}

	if pool.ID == 0 {
		pool, err = s.poolStore.FindBySymbol(ctx, symbol)
		if err != nil {
			log.WithError(err).Errorln("pools.FindBySymbol")
			return nil, err
		}
	}

	if err := reservoir.Require(pool.ID == 0, "pool/exists"); err != nil {
		log.WithError(err).Infoln("reject: pool exists")
		return nil, core.ErrPoolExists
	}

	if err := validateRiskParams(
		req.ReserveFactor,
		req.LiquidationBonus,
		req.BorrowCap,
		req.CollateralFactor,
		req.LiquidationThreshold,
		req.CloseFactor,
		req.BaseRate,
		req.Slope1,
		req.Slope2,
		req.OptimalUtilization,
	); err != nil {
		log.WithError(err).Infoln("reject: invalid risk params")
		return nil, core.ErrInvalidArgument
	}

	precision := req.Precision
	if precision <= 0 {
		precision = 8
	}

	initExchangeRate := req.InitExchangeRate
	if !initExchangeRate.IsPositive() {
		initExchangeRate = one
	}

	shareSymbol := req.ShareSymbol
	if shareSymbol == "" {
		shareSymbol = "R" + symbol
	}

	pool = &core.Pool{
		AssetID:              req.AssetID,
		Symbol:               symbol,
		ShareSymbol:          strings.ToUpper(shareSymbol),
		Precision:            precision,
		InitExchangeRate:     initExchangeRate,
		ReserveFactor:        req.ReserveFactor,
		LiquidationBonus:     req.LiquidationBonus,
		BorrowCap:            req.BorrowCap,
		CollateralFactor:     req.CollateralFactor,
		LiquidationThreshold: req.LiquidationThreshold,
		CloseFactor:          req.CloseFactor,
		BaseRate:             req.BaseRate,
		Slope1:               req.Slope1,
		Slope2:               req.Slope2,
		OptimalUtilization:   req.OptimalUtilization,
		Status:               core.PoolStatusActive,
	}
	reservoir.AccrueInterest(pool, time.Now())

	// the journal keeps the full parameter set for the audit trail
	extra := core.TransactionExtraData(structs.Map(req))

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeAddPool, req.AssetID, decimal.Zero, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Create(ctx, tx, pool); err != nil {
			log.WithError(err).Errorln("pools.Create")
			return err
		}

		if err := s.transactionStore.Create(ctx, tx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	log.Infoln("pool added")
	return transaction, nil
}

// UpdatePool replace the risk parameters of a pool, balances are untouched
func (s *poolService) UpdatePool(ctx context.Context, req *core.UpdatePoolReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "update_pool",
		"asset_id": req.AssetID,
	})
	ctx = logger.WithContext(ctx, log)

	transaction, err := s.transactionStore.FindByTraceID(ctx, req.TraceID)
	if err != nil {
		log.WithError(err).Errorln("transactions.FindByTraceID")
		return nil, err
	}

	if transaction.ID > 0 {
		return transaction, nil
	}

	pool, err := s.poolStore.Find(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("pools.Find")
		return nil, err
	}

	if err := reservoir.Require(pool.ID > 0, "pool/not-found"); err != nil {
		log.WithError(err).Infoln("reject: no pool")
		return nil, core.ErrPoolNotFound
	}

	if err := validateRiskParams(
		req.ReserveFactor,
		req.LiquidationBonus,
		req.BorrowCap,
		req.CollateralFactor,
		req.LiquidationThreshold,
		req.CloseFactor,
		req.BaseRate,
		req.Slope1,
		req.Slope2,
		req.OptimalUtilization,
	); err != nil {
		log.WithError(err).Infoln("reject: invalid risk params")
		return nil, core.ErrInvalidArgument
	}

	// settle accrued interest under the old curve before switching
	reservoir.AccrueInterest(pool, time.Now())

	pool.ReserveFactor = req.ReserveFactor
	pool.LiquidationBonus = req.LiquidationBonus
	pool.BorrowCap = req.BorrowCap
	pool.CollateralFactor = req.CollateralFactor
	pool.LiquidationThreshold = req.LiquidationThreshold
	pool.CloseFactor = req.CloseFactor
	pool.BaseRate = req.BaseRate
	pool.Slope1 = req.Slope1
	pool.Slope2 = req.Slope2
	pool.OptimalUtilization = req.OptimalUtilization
	pool.BorrowRate = reservoir.CurBorrowRate(pool)
	pool.SupplyRate = reservoir.CurSupplyRate(pool)

	// the journal keeps the full parameter set for the audit trail
	extra := core.TransactionExtraData(structs.Map(req))

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeUpdatePool, req.AssetID, decimal.Zero, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			log.WithError(err).Errorln("pools.Update")
			return err
		}

		if err := s.transactionStore.Create(ctx, tx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	log.Infoln("pool updated")
	return transaction, nil
}

// SetPoolStatus pause or resume a pool
func (s *poolService) SetPoolStatus(ctx context.Context, req *core.SetPoolStatusReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "set_pool_status",
		"asset_id": req.AssetID,
	})
	ctx = logger.WithContext(ctx, log)

	transaction, err := s.transactionStore.FindByTraceID(ctx, req.TraceID)
	if err != nil {
		log.WithError(err).Errorln("transactions.FindByTraceID")
		return nil, err
	}

	if transaction.ID > 0 {
		return transaction, nil
	}

	var status core.PoolStatus
	switch strings.ToLower(req.Status) {
	case core.PoolStatusActive.String():
		status = core.PoolStatusActive
	case core.PoolStatusPaused.String():
		status = core.PoolStatusPaused
	default:
		log.Infoln("reject: unknown status", req.Status)
		return nil, core.ErrInvalidArgument
	}

	pool, err := s.poolStore.Find(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("pools.Find")
		return nil, err
	}

	if err := reservoir.Require(pool.ID > 0, "pool/not-found"); err != nil {
		log.WithError(err).Infoln("reject: no pool")
		return nil, core.ErrPoolNotFound
	}

	reservoir.AccrueInterest(pool, time.Now())
	pool.Status = status

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put("status", status.String())

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeSetPoolStatus, req.AssetID, decimal.Zero, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			log.WithError(err).Errorln("pools.Update")
			return err
		}

		if err := s.transactionStore.Create(ctx, tx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	log.Infoln("pool status set to", status.String())
	return transaction, nil
}

func validateRiskParams(
	reserveFactor,
	liquidationBonus,
	borrowCap,
	collateralFactor,
	liquidationThreshold,
	closeFactor,
	baseRate,
	slope1,
	slope2,
	optimalUtilization decimal.Decimal,
) error {
	if err := reservoir.Require(
		!reserveFactor.IsNegative() && reserveFactor.LessThan(one),
		"pool/reserve-factor"); err != nil {
		return err
	}

	if err := reservoir.Require(
		!liquidationBonus.IsNegative() && liquidationBonus.LessThanOrEqual(reservoir.LiquidationBonusMax),
		"pool/liquidation-bonus"); err != nil {
		return err
	}

	if err := reservoir.Require(!borrowCap.IsNegative(), "pool/borrow-cap"); err != nil {
		return err
	}

	if err := reservoir.Require(
		!collateralFactor.IsNegative() && collateralFactor.LessThanOrEqual(reservoir.CollateralFactorMax),
		"pool/collateral-factor"); err != nil {
		return err
	}

	if err := reservoir.Require(
		liquidationThreshold.GreaterThanOrEqual(collateralFactor) && liquidationThreshold.LessThan(one),
		"pool/liquidation-threshold"); err != nil {
		return err
	}

	if err := reservoir.Require(
		closeFactor.GreaterThanOrEqual(reservoir.CloseFactorMin) && closeFactor.LessThanOrEqual(reservoir.CloseFactorMax),
		"pool/close-factor"); err != nil {
		return err
	}

	if err := reservoir.Require(
		!baseRate.IsNegative() && !slope1.IsNegative() && !slope2.IsNegative(),
		"pool/rate-curve"); err != nil {
		return err
	}

	return reservoir.Require(
		optimalUtilization.IsPositive() && optimalUtilization.LessThan(one),
		"pool/optimal-utilization")
}
