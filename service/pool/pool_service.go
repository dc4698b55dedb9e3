package pool

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

type poolService struct {
	db               *db.DB
	poolStore        core.PoolStore
	ledgerStore      core.LedgerStore
	transactionStore core.TransactionStore
}

// New new pool service
func New(
	db *db.DB,
	poolStore core.PoolStore,
	ledgerStore core.LedgerStore,
	transactionStore core.TransactionStore,
) core.PoolService {
	return &poolService{
		db:               db,
		poolStore:        poolStore,
		ledgerStore:      ledgerStore,
		transactionStore: transactionStore,
	}
}

// Deposit supply the pool asset and mint shares at the current exchange rate
func (s *poolService) Deposit(ctx context.Context, req *core.DepositReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "deposit",
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

	if err := reservoir.Require(!pool.IsPaused(), "pool/paused"); err != nil {
		log.WithError(err).Infoln("reject: pool paused")
		return nil, core.ErrPoolPaused
	}

	reservoir.AccrueInterest(pool, time.Now())

	amount := req.Amount.Truncate(pool.Precision)
	if err := reservoir.Require(amount.IsPositive(), "pool/invalid-amount"); err != nil {
		log.WithError(err).Infoln("reject: invalid amount")
		return nil, core.ErrInvalidAmount
	}

	exchangeRate := reservoir.CurExchangeRate(pool)
	shares := reservoir.MintShares(pool, amount)
	if err := reservoir.Require(shares.IsPositive(), "pool/amount-too-small"); err != nil {
		log.WithError(err).Infoln("reject: amount too small")
		return nil, core.ErrInvalidAmount
	}

	pool.TotalDeposits = pool.TotalDeposits.Add(amount)
	pool.TotalShares = pool.TotalShares.Add(shares)

	account, err := s.ledgerStore.Find(ctx, req.UserID, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("ledgers.Find")
		return nil, err
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyAmount, amount)
	extra.Put(core.TransactionKeyShares, shares)
	extra.Put(core.TransactionKeyExchangeRate, exchangeRate)

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeDeposit, req.AssetID, amount, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			log.WithError(err).Errorln("pools.Update")
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

		if err := s.transactionStore.Create(ctx, tx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	log.Infoln("deposit completed")
	return transaction, nil
}

// Withdraw burn shares for the underlying at the current exchange rate
func (s *poolService) Withdraw(ctx context.Context, req *core.WithdrawReq) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "withdraw",
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

	if err := reservoir.Require(!pool.IsPaused(), "pool/paused"); err != nil {
		log.WithError(err).Infoln("reject: pool paused")
		return nil, core.ErrPoolPaused
	}

	reservoir.AccrueInterest(pool, time.Now())

	shares := req.Shares.Truncate(8)
	if err := reservoir.Require(shares.IsPositive(), "pool/invalid-shares"); err != nil {
		log.WithError(err).Infoln("reject: invalid shares")
		return nil, core.ErrInvalidAmount
	}

	account, err := s.ledgerStore.Find(ctx, req.UserID, req.AssetID)
	if err != nil {
		log.WithError(err).Errorln("ledgers.Find")
		return nil, err
	}

	if err := reservoir.Require(account.ID > 0 && account.Shares.GreaterThanOrEqual(shares), "pool/insufficient-shares"); err != nil {
		log.WithError(err).Infoln("reject: not enough shares")
		return nil, core.ErrInsufficientBalance
	}

	exchangeRate := reservoir.CurExchangeRate(pool)
	amount := reservoir.BurnShares(pool, shares)
	if err := reservoir.Require(amount.IsPositive(), "pool/shares-too-few"); err != nil {
		log.WithError(err).Infoln("reject: shares too few")
		return nil, core.ErrInvalidAmount
	}

	if err := reservoir.Require(amount.LessThanOrEqual(pool.AvailableLiquidity()), "pool/insufficient-liquidity"); err != nil {
		log.WithError(err).Infoln("reject: liquidity out on loan")
		return nil, core.ErrInsufficientLiquidity
	}

	pool.TotalShares = pool.TotalShares.Sub(shares)
	pool.TotalDeposits = pool.TotalDeposits.Sub(amount)

	// the last burn sweeps rounding dust into reserves, an empty pool holds
	// no deposits
	if !pool.TotalShares.IsPositive() && pool.TotalDeposits.IsPositive() {
		pool.Reserves = pool.Reserves.Add(pool.TotalDeposits)
		pool.TotalDeposits = decimal.Zero
	}

	account.Shares = account.Shares.Sub(shares)

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyAssetID, req.AssetID)
	extra.Put(core.TransactionKeyAmount, amount)
	extra.Put(core.TransactionKeyShares, shares)
	extra.Put(core.TransactionKeyExchangeRate, exchangeRate)

	transaction = core.BuildTransaction(req.UserID, req.TraceID, core.ActionTypeWithdraw, req.AssetID, amount, extra)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			log.WithError(err).Errorln("pools.Update")
			return err
		}

		if err := s.ledgerStore.Update(ctx, tx, account); err != nil {
			log.WithError(err).Errorln("ledgers.Update")
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

	log.Infoln("withdraw completed")
	return transaction, nil
}
