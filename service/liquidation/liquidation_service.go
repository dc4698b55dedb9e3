package liquidation

import (
	"context"
	"time"

	"reservoir/core"
	"reservoir/pkg/reservoir"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type liquidationService struct {
	db               *db.DB
	poolStore        core.PoolStore
	positionStore    core.PositionStore
	ledgerStore      core.LedgerStore
	liquidationStore core.LiquidationStore
	transactionStore core.TransactionStore
	priceService     core.PriceOracleService
	healthService    core.HealthService
}

// New new liquidation service
func New(
	db *db.DB,
	poolStore core.PoolStore,
	positionStore core.PositionStore,
	ledgerStore core.LedgerStore,
	liquidationStore core.LiquidationStore,
	transactionStore core.TransactionStore,
	priceService core.PriceOracleService,
	healthService core.HealthService,
) core.LiquidationService {
	return &liquidationService{
		db:               db,
		poolStore:        poolStore,
		positionStore:    positionStore,
		ledgerStore:      ledgerStore,
		liquidationStore: liquidationStore,
		transactionStore: transactionStore,
		priceService:     priceService,
		healthService:    healthService,
	}
}

// shareCredit a pending credit to a user's free share ledger, credits to
// the same account merge so one account is touched once per operation
type shareCredit struct {
	userID  string
	assetID string
	shares  decimal.Decimal
}

func addCredit(credits []*shareCredit, userID, assetID string, shares decimal.Decimal) []*shareCredit {
	for _, credit := range credits {
		if credit.userID == userID && credit.assetID == assetID {
			credit.shares = credit.shares.Add(shares)
			return credits
		}
	}

	return append(credits, &shareCredit{userID: userID, assetID: assetID, shares: shares})
}

// Liquidate repay part of a shortfall position's debt and seize discounted
// collateral. Works on paused pools.
func (s *liquidationService) Liquidate(ctx context.Context, req *core.LiquidateReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":       "liquidate",
		"position_id": req.PositionID,
		"asset_id":    req.AssetID,
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

	position, err := s.positionStore.Find(ctx, req.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if err := reservoir.Require(position.ID > 0, "liquidation/no-position"); err != nil {
		log.WithError(err).Infoln("reject: no position")
		return nil, core.ErrPositionNotFound
	}

	debtPool, err := s.mustGetPool(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Infoln("reject: no debt pool")
		return nil, err
	}

	collateralPool, err := s.mustGetPool(ctx, req.CollateralAssetID)
	if err != nil {
		log.WithError(err).Infoln("reject: no collateral pool")
		return nil, err
	}

	now := time.Now()
	reservoir.AccrueInterest(debtPool, now)
	reservoir.AccrueInterest(collateralPool, now)

	overrides := map[string]*core.Pool{
		debtPool.AssetID:       debtPool,
		collateralPool.AssetID: collateralPool,
	}

	amount := req.Amount.Truncate(debtPool.Precision)
	if err := reservoir.Require(amount.IsPositive(), "liquidation/invalid-amount"); err != nil {
		log.WithError(err).Infoln("reject: invalid amount")
		return nil, core.ErrInvalidAmount
	}

	collaterals, err := s.positionStore.ListCollaterals(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListCollaterals")
		return nil, err
	}

	debts, err := s.positionStore.ListDebts(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListDebts")
		return nil, err
	}

	pre, err := s.healthService.Evaluate(ctx, collaterals, debts, overrides)
	if err != nil {
		log.WithError(err).Errorln("health.Evaluate")
		return nil, err
	}

	if err := reservoir.Require(pre.Liquidatable(), "liquidation/healthy"); err != nil {
		log.WithError(err).Infoln("reject: position healthy")
		return nil, core.ErrPositionHealthy
	}

	debt := findDebt(debts, req.AssetID)
	if err := reservoir.Require(debt != nil && debt.Principal.IsPositive(), "liquidation/no-debt"); err != nil {
		log.WithError(err).Infoln("reject: no debt leg")
		return nil, core.ErrDebtNotFound
	}

	collateral := findCollateral(collaterals, req.CollateralAssetID)
	if err := reservoir.Require(collateral != nil && collateral.Shares.IsPositive(), "liquidation/no-collateral"); err != nil {
		log.WithError(err).Infoln("reject: no collateral leg")
		return nil, core.ErrInvalidCollateral
	}

	debtPrice, err := s.priceService.GetPrice(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("oracle.GetPrice")
		return nil, err
	}

	collateralPrice, err := s.priceService.GetPrice(ctx, req.CollateralAssetID)
	if err != nil {
		log.WithError(err).Errorln("oracle.GetPrice")
		return nil, err
	}

	reservoir.AccrueDebt(debt, debtPool)

	balance := debt.Principal
	repayAmount := amount
	excess := decimal.Zero
	if repayAmount.GreaterThan(balance) {
		repayAmount = balance
		excess = amount.Sub(balance)
	}

	repayValue := repayAmount.Mul(debtPrice).Truncate(reservoir.MaxPrecision)
	maxRepayValue := reservoir.MaxRepayValue(pre.DebtValue, debtPool.CloseFactor)
	if err := reservoir.Require(repayValue.LessThanOrEqual(maxRepayValue), "liquidation/close-factor"); err != nil {
		log.WithError(err).Infoln("reject: repay above the close factor limit")
		return nil, core.ErrExceedsCloseFactor
	}

	exchangeRate := reservoir.CurExchangeRate(collateralPool)
	seizedShares := reservoir.SeizeShares(repayValue, collateralPool.LiquidationBonus, collateralPrice, exchangeRate)
	// the clamp trims the liquidator's bonus, never the debt reduction
	if seizedShares.GreaterThan(collateral.Shares) {
		seizedShares = collateral.Shares
	}

	if err := reservoir.Require(seizedShares.IsPositive(), "liquidation/nothing-seized"); err != nil {
		log.WithError(err).Infoln("reject: seized shares round to zero")
		return nil, core.ErrInvalidAmount
	}

	seizedValue := seizedShares.Mul(exchangeRate).Mul(collateralPrice).Truncate(8)

	debt.Principal = balance.Sub(repayAmount)
	collateral.Shares = collateral.Shares.Sub(seizedShares)

	// the repaid value returns to the pool as lendable liquidity
	debtPool.ReturnFromBorrow(repayAmount)

	post, err := s.healthService.Evaluate(ctx, collaterals, debts, overrides)
	if err != nil {
		log.WithError(err).Errorln("health.Evaluate")
		return nil, err
	}

	cleared := totalPrincipal(debts).IsZero()

	if !cleared {
		if err := reservoir.Require(post.HealthFactor.GreaterThan(pre.HealthFactor), "liquidation/not-improved"); err != nil {
			log.WithError(err).Infoln("reject: health factor not improved")
			return nil, core.ErrLiquidationNotImproved
		}
	}

	credits := addCredit(nil, req.Liquidator, req.CollateralAssetID, seizedShares)

	touched := []*core.Collateral{collateral}
	if cleared {
		// the last debt is gone, hand the leftover collateral back and
		// close the position
		for _, leg := range collaterals {
			if !leg.Shares.IsPositive() {
				continue
			}
			credits = addCredit(credits, position.UserID, leg.AssetID, leg.Shares)
			leg.Shares = decimal.Zero
			if leg != collateral {
				touched = append(touched, leg)
			}
		}
		position.Status = core.PositionStatusClosed
	} else {
		position.Status = core.PositionStatusPartiallyLiquidated
	}
	position.LastAccruedAt = now

	accounts := make([]*core.ShareAccount, 0, len(credits))
	for _, credit := range credits {
		account, err := s.ledgerStore.Find(ctx, credit.userID, credit.assetID)
		if err != nil {
			log.WithError(err).Errorln("ledgers.Find")
			return nil, err
		}

		if account.ID == 0 {
			account.UserID = credit.userID
			account.AssetID = credit.assetID
		}
		account.Shares = account.Shares.Add(credit.shares)
		accounts = append(accounts, account)
	}

	record := &core.Liquidation{
		TraceID:           req.TraceID,
		PositionID:        position.PositionID,
		UserID:            position.UserID,
		Liquidator:        req.Liquidator,
		DebtAssetID:       req.AssetID,
		DebtAmount:        repayAmount,
		CollateralAssetID: req.CollateralAssetID,
		SeizedShares:      seizedShares,
		SeizedValue:       seizedValue,
		PreHealthFactor:   pre.HealthFactor,
		PostHealthFactor:  post.HealthFactor,
		CreatedAt:         now,
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyPositionID, position.PositionID)
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyAmount, repayAmount)
	extra.Put(core.TransactionKeyExcessReturned, excess)
	extra.Put(core.TransactionKeyCollateralAssetID, req.CollateralAssetID)
	extra.Put(core.TransactionKeySeizedShares, seizedShares)
	extra.Put(core.TransactionKeyHealthFactor, post.HealthFactor)

	transaction = core.BuildTransaction(req.Liquidator, req.TraceID, core.ActionTypeLiquidate, req.AssetID, repayAmount, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.positionStore.UpdateDebt(ctx, tx, debt); err != nil {
			log.WithError(err).Errorln("debts.Update")
			return err
		}

		for _, leg := range touched {
			if err := s.positionStore.UpdateCollateral(ctx, tx, leg); err != nil {
				log.WithError(err).Errorln("collaterals.Update")
				return err
			}
		}

		for _, account := range accounts {
			if account.ID == 0 {
				if err := s.ledgerStore.Save(ctx, tx, account); err != nil {
					log.WithError(err).Errorln("ledgers.Save")
					return err
				}
			} else {
				if err := s.ledgerStore.Update(ctx, tx, account); err != nil {
					log.WithError(err).Errorln("ledgers.Update")
					return err
				}
			}
		}

		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
			log.WithError(err).Errorln("pools.Update")
			return err
		}

		if err := s.positionStore.Update(ctx, tx, position); err != nil {
			log.WithError(err).Errorln("positions.Update")
			return err
		}

		if err := s.liquidationStore.Create(ctx, tx, record); err != nil {
			log.WithError(err).Errorln("liquidations.Create")
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

	log.Infoln("liquidation completed")
	return transaction, nil
}

func (s *liquidationService) mustGetPool(ctx context.Context, assetID string) (*core.Pool, error) {
	pool, err := s.poolStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if pool.ID == 0 {
		return nil, core.ErrPoolNotFound
	}

	return pool, nil
}

func findCollateral(collaterals []*core.Collateral, assetID string) *core.Collateral {
	for _, collateral := range collaterals {
		if collateral.AssetID == assetID {
			return collateral
		}
	}
	return nil
}

func findDebt(debts []*core.Debt, assetID string) *core.Debt {
	for _, debt := range debts {
		if debt.AssetID == assetID {
			return debt
		}
	}
	return nil
}

func totalPrincipal(debts []*core.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, debt := range debts {
		total = total.Add(debt.Principal)
	}
	return total
}
