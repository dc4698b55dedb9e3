package position

import (
	"context"
	"fmt"
	"time"

	"reservoir/core"
	"reservoir/pkg/id"
	"reservoir/pkg/reservoir"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type positionService struct {
	db               *db.DB
	poolStore        core.PoolStore
	positionStore    core.PositionStore
	ledgerStore      core.LedgerStore
	transactionStore core.TransactionStore
	healthService    core.HealthService
}

// New new position service
func New(
	db *db.DB,
	poolStore core.PoolStore,
	positionStore core.PositionStore,
	ledgerStore core.LedgerStore,
	transactionStore core.TransactionStore,
	healthService core.HealthService,
) core.PositionService {
	return &positionService{
		db:               db,
		poolStore:        poolStore,
		positionStore:    positionStore,
		ledgerStore:      ledgerStore,
		transactionStore: transactionStore,
		healthService:    healthService,
	}
}

// Borrow pledge collateral shares and draw debt against the position
func (s *positionService) Borrow(ctx context.Context, req *core.BorrowReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "borrow",
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

	debtPool, err := s.mustGetPool(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Infoln("reject: no debt pool")
		return nil, err
	}

	if err := reservoir.Require(!debtPool.IsPaused(), "position/debt-pool-paused"); err != nil {
		log.WithError(err).Infoln("reject: debt pool paused")
		return nil, core.ErrPoolPaused
	}

	now := time.Now()
	reservoir.AccrueInterest(debtPool, now)

	amount := req.Amount.Truncate(debtPool.Precision)
	if err := reservoir.Require(amount.IsPositive(), "position/invalid-amount"); err != nil {
		log.WithError(err).Infoln("reject: invalid amount")
		return nil, core.ErrInvalidAmount
	}

	if err := debtPool.AllocateForBorrow(amount); err != nil {
		log.WithError(err).Infoln("reject: not enough lendable liquidity")
		return nil, err
	}

	position, created, err := s.findOrBuildPosition(ctx, req.UserID)
	if err != nil {
		log.WithError(err).Errorln("positions.FindByUser")
		return nil, err
	}

	collaterals, debts, err := s.loadLegs(ctx, position, created)
	if err != nil {
		log.WithError(err).Errorln("positions.ListLegs")
		return nil, err
	}

	overrides := map[string]*core.Pool{debtPool.AssetID: debtPool}

	pledgeShares := req.CollateralShares.Truncate(8)
	var account *core.ShareAccount
	var pledged *core.Collateral

	if pledgeShares.IsPositive() {
		if err := reservoir.Require(req.CollateralAssetID != "" && req.CollateralAssetID != req.AssetID, "position/self-collateral"); err != nil {
			log.WithError(err).Infoln("reject: collateral matches debt asset")
			return nil, core.ErrInvalidCollateral
		}

		collateralPool, err := s.mustGetPool(ctx, req.CollateralAssetID)
		if err != nil {
			log.WithError(err).Infoln("reject: no collateral pool")
			return nil, err
		}

		accrued := *collateralPool
		reservoir.AccrueInterest(&accrued, now)
		overrides[accrued.AssetID] = &accrued

		account, err = s.ledgerStore.Find(ctx, req.UserID, req.CollateralAssetID)
		if err != nil {
			log.WithError(err).Errorln("ledgers.Find")
			return nil, err
		}

		if err := reservoir.Require(account.ID > 0 && account.Shares.GreaterThanOrEqual(pledgeShares), "position/insufficient-shares"); err != nil {
			log.WithError(err).Infoln("reject: not enough free shares")
			return nil, core.ErrInsufficientBalance
		}

		account.Shares = account.Shares.Sub(pledgeShares)

		pledged = findCollateral(collaterals, req.CollateralAssetID)
		if pledged == nil {
			pledged = &core.Collateral{
				PositionID: position.PositionID,
				UserID:     req.UserID,
				AssetID:    req.CollateralAssetID,
			}
			collaterals = append(collaterals, pledged)
		}
		pledged.Shares = pledged.Shares.Add(pledgeShares)
	}

	// one pool never sits on both sides of a position
	for _, collateral := range collaterals {
		if err := reservoir.Require(!(collateral.AssetID == req.AssetID && collateral.Shares.IsPositive()), "position/two-sided-pool"); err != nil {
			log.WithError(err).Infoln("reject: debt asset pledged as collateral")
			return nil, core.ErrInvalidCollateral
		}
	}
	for _, debt := range debts {
		if err := reservoir.Require(!(debt.AssetID == req.CollateralAssetID && debt.Principal.IsPositive()), "position/two-sided-pool"); err != nil {
			log.WithError(err).Infoln("reject: collateral asset carries debt")
			return nil, core.ErrInvalidCollateral
		}
	}

	debt := findDebt(debts, req.AssetID)
	if debt == nil {
		debt = &core.Debt{
			PositionID:    position.PositionID,
			UserID:        req.UserID,
			AssetID:       req.AssetID,
			InterestIndex: debtPool.BorrowIndex,
		}
		debts = append(debts, debt)
	}

	reservoir.AccrueDebt(debt, debtPool)
	debt.Principal = debt.Principal.Add(amount)

	snapshot, err := s.healthService.Evaluate(ctx, collaterals, debts, overrides)
	if err != nil {
		log.WithError(err).Errorln("health.Evaluate")
		return nil, err
	}

	if err := reservoir.Require(!snapshot.Liquidity.IsNegative(), "position/exceeds-capacity"); err != nil {
		log.WithError(err).Infoln("reject: borrow exceeds capacity")
		return nil, core.ErrBorrowNotAllowed
	}

	position.InterestRate = reservoir.CurBorrowRate(debtPool)
	position.Status = core.PositionStatusHealthy
	position.LastAccruedAt = now

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyAmount, amount)
	extra.Put(core.TransactionKeyPositionID, position.PositionID)
	extra.Put(core.TransactionKeyHealthFactor, snapshot.HealthFactor)
	if pledgeShares.IsPositive() {
		extra.Put(core.TransactionKeyCollateralAssetID, req.CollateralAssetID)
		extra.Put(core.TransactionKeyCollateralShares, pledgeShares)
	}

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeBorrow, req.AssetID, amount, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if created {
			if err := s.positionStore.Create(ctx, tx, position); err != nil {
				log.WithError(err).Errorln("positions.Create")
				return err
			}
		} else {
			if err := s.positionStore.Update(ctx, tx, position); err != nil {
				log.WithError(err).Errorln("positions.Update")
				return err
			}
		}

		if account != nil {
			if err := s.ledgerStore.Update(ctx, tx, account); err != nil {
				log.WithError(err).Errorln("ledgers.Update")
				return err
			}
		}

		if pledged != nil {
			if err := s.saveCollateral(ctx, tx, pledged); err != nil {
				log.WithError(err).Errorln("collaterals.Save")
				return err
			}
		}

		if err := s.saveDebt(ctx, tx, debt); err != nil {
			log.WithError(err).Errorln("debts.Save")
			return err
		}

		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
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

	log.Infoln("borrow completed")
	return transaction, nil
}

// Repay pay debt back, amounts above the debt balance are returned
func (s *positionService) Repay(ctx context.Context, req *core.RepayReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "repay",
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

	// repayments stay open while a pool is paused
	pool, err := s.mustGetPool(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Infoln("reject: no pool")
		return nil, err
	}

	now := time.Now()
	reservoir.AccrueInterest(pool, now)

	amount := req.Amount.Truncate(pool.Precision)
	if err := reservoir.Require(amount.IsPositive(), "position/invalid-amount"); err != nil {
		log.WithError(err).Infoln("reject: invalid amount")
		return nil, core.ErrInvalidAmount
	}

	position, err := s.positionStore.FindByUser(ctx, req.UserID)
	if err != nil {
		log.WithError(err).Errorln("positions.FindByUser")
		return nil, err
	}

	if err := reservoir.Require(position.ID > 0, "position/not-found"); err != nil {
		log.WithError(err).Infoln("reject: no position")
		return nil, core.ErrPositionNotFound
	}

	debts, err := s.positionStore.ListDebts(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListDebts")
		return nil, err
	}

	debt := findDebt(debts, req.AssetID)
	if err := reservoir.Require(debt != nil && debt.Principal.IsPositive(), "position/no-debt"); err != nil {
		log.WithError(err).Infoln("reject: no debt leg")
		return nil, core.ErrDebtNotFound
	}

	reservoir.AccrueDebt(debt, pool)

	balance := debt.Principal
	repaid := amount
	excess := decimal.Zero
	if repaid.GreaterThan(balance) {
		repaid = balance
		excess = amount.Sub(balance)
	}

	debt.Principal = balance.Sub(repaid)
	pool.ReturnFromBorrow(repaid)

	position.LastAccruedAt = now
	if !debt.Principal.IsPositive() && totalPrincipal(debts).IsZero() {
		position.Status = core.PositionStatusHealthy
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyRepaidAmount, repaid)
	extra.Put(core.TransactionKeyExcessReturned, excess)
	extra.Put(core.TransactionKeyPositionID, position.PositionID)

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeRepay, req.AssetID, repaid, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.positionStore.UpdateDebt(ctx, tx, debt); err != nil {
			log.WithError(err).Errorln("debts.Update")
			return err
		}

		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			log.WithError(err).Errorln("pools.Update")
			return err
		}

		if err := s.positionStore.Update(ctx, tx, position); err != nil {
			log.WithError(err).Errorln("positions.Update")
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

	log.Infoln("repay completed")
	return transaction, nil
}

// Release move pledged collateral back to the borrower's free ledger
func (s *positionService) Release(ctx context.Context, req *core.ReleaseReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "release",
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

	shares := req.Shares.Truncate(8)
	if err := reservoir.Require(shares.IsPositive(), "position/invalid-shares"); err != nil {
		log.WithError(err).Infoln("reject: invalid shares")
		return nil, core.ErrInvalidAmount
	}

	position, err := s.positionStore.FindByUser(ctx, req.UserID)
	if err != nil {
		log.WithError(err).Errorln("positions.FindByUser")
		return nil, err
	}

	if err := reservoir.Require(position.ID > 0, "position/not-found"); err != nil {
		log.WithError(err).Infoln("reject: no position")
		return nil, core.ErrPositionNotFound
	}

	collaterals, err := s.positionStore.ListCollaterals(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListCollaterals")
		return nil, err
	}

	collateral := findCollateral(collaterals, req.AssetID)
	if err := reservoir.Require(collateral != nil && collateral.Shares.GreaterThanOrEqual(shares), "position/insufficient-collateral"); err != nil {
		log.WithError(err).Infoln("reject: not enough collateral pledged")
		return nil, core.ErrInsufficientCollateral
	}

	debts, err := s.positionStore.ListDebts(ctx, position.PositionID)
	if err != nil {
		log.WithError(err).Errorln("positions.ListDebts")
		return nil, err
	}

	collateral.Shares = collateral.Shares.Sub(shares)

	// releases are free once the position owes nothing, otherwise the
	// remaining collateral must still cover the debt
	if totalPrincipal(debts).IsPositive() {
		snapshot, err := s.healthService.Evaluate(ctx, collaterals, debts, nil)
		if err != nil {
			log.WithError(err).Errorln("health.Evaluate")
			return nil, err
		}

		if err := reservoir.Require(!snapshot.Liquidity.IsNegative(), "position/release-denied"); err != nil {
			log.WithError(err).Infoln("reject: release breaks the borrow limit")
			return nil, core.ErrInsufficientCollateral
		}
	}

	account, err := s.ledgerStore.Find(ctx, req.UserID, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("ledgers.Find")
		return nil, err
	}

	now := time.Now()
	position.LastAccruedAt = now
	if totalPrincipal(debts).IsZero() && totalShares(collaterals).IsZero() {
		position.Status = core.PositionStatusClosed
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyShares, shares)
	extra.Put(core.TransactionKeyPositionID, position.PositionID)

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeRelease, req.AssetID, shares, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.positionStore.UpdateCollateral(ctx, tx, collateral); err != nil {
			log.WithError(err).Errorln("collaterals.Update")
			return err
		}

		if account.ID == 0 {
			account = &core.ShareAccount{
				UserID:  req.UserID,
				AssetID: req.AssetID,
				Shares:  shares,
			}
			if err := s.ledgerStore.Save(ctx, tx, account); err != nil {
				log.WithError(err).Errorln("ledgers.Save")
				return err
			}
		} else {
			account.Shares = account.Shares.Add(shares)
			if err := s.ledgerStore.Update(ctx, tx, account); err != nil {
				log.WithError(err).Errorln("ledgers.Update")
				return err
			}
		}

		if err := s.positionStore.Update(ctx, tx, position); err != nil {
			log.WithError(err).Errorln("positions.Update")
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

	log.Infoln("release completed")
	return transaction, nil
}

// QuickBorrow deposit, pledge and borrow in one atomic operation, the
// minted shares go straight into the position
func (s *positionService) QuickBorrow(ctx context.Context, req *core.QuickBorrowReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":           "quick_borrow",
		"asset_id":        req.AssetID,
		"supply_asset_id": req.SupplyAssetID,
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

	if err := reservoir.Require(req.SupplyAssetID != req.AssetID, "position/self-collateral"); err != nil {
		log.WithError(err).Infoln("reject: supply matches debt asset")
		return nil, core.ErrInvalidCollateral
	}

	supplyPool, err := s.mustGetPool(ctx, req.SupplyAssetID)
	if err != nil {
		log.WithError(err).Infoln("reject: no supply pool")
		return nil, err
	}

	debtPool, err := s.mustGetPool(ctx, req.AssetID)
	if err != nil {
		log.WithError(err).Infoln("reject: no debt pool")
		return nil, err
	}

	if err := reservoir.Require(!supplyPool.IsPaused() && !debtPool.IsPaused(), "position/pool-paused"); err != nil {
		log.WithError(err).Infoln("reject: pool paused")
		return nil, core.ErrPoolPaused
	}

	now := time.Now()
	reservoir.AccrueInterest(supplyPool, now)
	reservoir.AccrueInterest(debtPool, now)

	supplyAmount := req.SupplyAmount.Truncate(supplyPool.Precision)
	amount := req.Amount.Truncate(debtPool.Precision)
	if err := reservoir.Require(supplyAmount.IsPositive() && amount.IsPositive(), "position/invalid-amount"); err != nil {
		log.WithError(err).Infoln("reject: invalid amount")
		return nil, core.ErrInvalidAmount
	}

	if err := debtPool.AllocateForBorrow(amount); err != nil {
		log.WithError(err).Infoln("reject: not enough lendable liquidity")
		return nil, err
	}

	exchangeRate := reservoir.CurExchangeRate(supplyPool)
	shares := reservoir.MintShares(supplyPool, supplyAmount)
	if err := reservoir.Require(shares.IsPositive(), "position/amount-too-small"); err != nil {
		log.WithError(err).Infoln("reject: supply amount too small")
		return nil, core.ErrInvalidAmount
	}

	position, created, err := s.findOrBuildPosition(ctx, req.UserID)
	if err != nil {
		log.WithError(err).Errorln("positions.FindByUser")
		return nil, err
	}

	collaterals, debts, err := s.loadLegs(ctx, position, created)
	if err != nil {
		log.WithError(err).Errorln("positions.ListLegs")
		return nil, err
	}

	for _, collateral := range collaterals {
		if err := reservoir.Require(!(collateral.AssetID == req.AssetID && collateral.Shares.IsPositive()), "position/two-sided-pool"); err != nil {
			log.WithError(err).Infoln("reject: debt asset pledged as collateral")
			return nil, core.ErrInvalidCollateral
		}
	}
	for _, debt := range debts {
		if err := reservoir.Require(!(debt.AssetID == req.SupplyAssetID && debt.Principal.IsPositive()), "position/two-sided-pool"); err != nil {
			log.WithError(err).Infoln("reject: supply asset carries debt")
			return nil, core.ErrInvalidCollateral
		}
	}

	supplyPool.TotalDeposits = supplyPool.TotalDeposits.Add(supplyAmount)
	supplyPool.TotalShares = supplyPool.TotalShares.Add(shares)

	pledged := findCollateral(collaterals, req.SupplyAssetID)
	if pledged == nil {
		pledged = &core.Collateral{
			PositionID: position.PositionID,
			UserID:     req.UserID,
			AssetID:    req.SupplyAssetID,
		}
		collaterals = append(collaterals, pledged)
	}
	pledged.Shares = pledged.Shares.Add(shares)

	debt := findDebt(debts, req.AssetID)
	if debt == nil {
		debt = &core.Debt{
			PositionID:    position.PositionID,
			UserID:        req.UserID,
			AssetID:       req.AssetID,
			InterestIndex: debtPool.BorrowIndex,
		}
		debts = append(debts, debt)
	}

	reservoir.AccrueDebt(debt, debtPool)
	debt.Principal = debt.Principal.Add(amount)

	overrides := map[string]*core.Pool{
		supplyPool.AssetID: supplyPool,
		debtPool.AssetID:   debtPool,
	}

	snapshot, err := s.healthService.Evaluate(ctx, collaterals, debts, overrides)
	if err != nil {
		log.WithError(err).Errorln("health.Evaluate")
		return nil, err
	}

	if err := reservoir.Require(!snapshot.Liquidity.IsNegative(), "position/exceeds-capacity"); err != nil {
		log.WithError(err).Infoln("reject: borrow exceeds capacity")
		return nil, core.ErrBorrowNotAllowed
	}

	position.InterestRate = reservoir.CurBorrowRate(debtPool)
	position.Status = core.PositionStatusHealthy
	position.LastAccruedAt = now

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyAmount, amount)
	extra.Put(core.TransactionKeyCollateralAssetID, req.SupplyAssetID)
	extra.Put(core.TransactionKeyCollateralShares, shares)
	extra.Put(core.TransactionKeyExchangeRate, exchangeRate)
	extra.Put(core.TransactionKeyPositionID, position.PositionID)
	extra.Put(core.TransactionKeyHealthFactor, snapshot.HealthFactor)

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeQuickBorrow, req.AssetID, amount, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if created {
			if err := s.positionStore.Create(ctx, tx, position); err != nil {
				log.WithError(err).Errorln("positions.Create")
				return err
			}
		} else {
			if err := s.positionStore.Update(ctx, tx, position); err != nil {
				log.WithError(err).Errorln("positions.Update")
				return err
			}
		}

		if err := s.saveCollateral(ctx, tx, pledged); err != nil {
			log.WithError(err).Errorln("collaterals.Save")
			return err
		}

		if err := s.saveDebt(ctx, tx, debt); err != nil {
			log.WithError(err).Errorln("debts.Save")
			return err
		}

		if err := s.poolStore.Update(ctx, tx, supplyPool); err != nil {
			log.WithError(err).Errorln("pools.Update")
			return err
		}

		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
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

	log.Infoln("quick borrow completed")
	return transaction, nil
}

func (s *positionService) mustGetPool(ctx context.Context, assetID string) (*core.Pool, error) {
	pool, err := s.poolStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if pool.ID == 0 {
		return nil, core.ErrPoolNotFound
	}

	return pool, nil
}

// findOrBuildPosition one position row per user, reopened in place after a
// close
func (s *positionService) findOrBuildPosition(ctx context.Context, userID string) (*core.Position, bool, error) {
	position, err := s.positionStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if position.ID > 0 {
		return position, false, nil
	}

	position = &core.Position{
		PositionID: id.TraceIDFrom(fmt.Sprintf("position-%s", userID)),
		UserID:     userID,
		Status:     core.PositionStatusHealthy,
	}

	return position, true, nil
}

func (s *positionService) loadLegs(ctx context.Context, position *core.Position, created bool) ([]*core.Collateral, []*core.Debt, error) {
	if created {
		return nil, nil, nil
	}

	collaterals, err := s.positionStore.ListCollaterals(ctx, position.PositionID)
	if err != nil {
		return nil, nil, err
	}

	debts, err := s.positionStore.ListDebts(ctx, position.PositionID)
	if err != nil {
		return nil, nil, err
	}

	return collaterals, debts, nil
}

func (s *positionService) saveCollateral(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	if collateral.ID == 0 {
		return s.positionStore.SaveCollateral(ctx, tx, collateral)
	}
	return s.positionStore.UpdateCollateral(ctx, tx, collateral)
}

func (s *positionService) saveDebt(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	if debt.ID == 0 {
		return s.positionStore.SaveDebt(ctx, tx, debt)
	}
	return s.positionStore.UpdateDebt(ctx, tx, debt)
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

func totalShares(collaterals []*core.Collateral) decimal.Decimal {
	total := decimal.Zero
	for _, collateral := range collaterals {
		total = total.Add(collateral.Shares)
	}
	return total
}
