package cmd

import (
	"reservoir/core"
	healthservice "reservoir/service/health"
	liquidationservice "reservoir/service/liquidation"
	"reservoir/service/oracle"
	poolservice "reservoir/service/pool"
	positionservice "reservoir/service/position"
	"reservoir/store/ledger"
	"reservoir/store/liquidation"
	"reservoir/store/pool"
	"reservoir/store/position"
	"reservoir/store/price"
	"reservoir/store/transaction"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem() *core.System {
	return &core.System{
		Admins:   cfg.Admins,
		Genesis:  cfg.App.Genesis,
		Location: cfg.App.Location,
		Version:  rootCmd.Version,
	}
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.PoolStore {
	return pool.New(db)
}

func providePositionStore(db *db.DB) core.PositionStore {
	return position.New(db)
}

func provideLedgerStore(db *db.DB) core.LedgerStore {
	return ledger.New(db)
}

func provideLiquidationStore(db *db.DB) core.LiquidationStore {
	return liquidation.New(db)
}

func providePriceStore(db *db.DB) core.PriceStore {
	return price.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

// ------------------service------------------------------------

func providePriceService(db *db.DB, priceStore core.PriceStore, transactionStore core.TransactionStore) core.PriceOracleService {
	return oracle.New(db, provideConfig(), priceStore, transactionStore)
}

func provideHealthService(poolStore core.PoolStore, priceService core.PriceOracleService) core.HealthService {
	return healthservice.New(poolStore, priceService)
}

func providePoolService(
	db *db.DB,
	poolStore core.PoolStore,
	ledgerStore core.LedgerStore,
	transactionStore core.TransactionStore,
) core.PoolService {
	return poolservice.New(db, poolStore, ledgerStore, transactionStore)
}

func providePositionService(
	db *db.DB,
	poolStore core.PoolStore,
	positionStore core.PositionStore,
	ledgerStore core.LedgerStore,
	transactionStore core.TransactionStore,
	healthService core.HealthService,
) core.PositionService {
	return positionservice.New(db, poolStore, positionStore, ledgerStore, transactionStore, healthService)
}

func provideLiquidationService(
	db *db.DB,
	poolStore core.PoolStore,
	positionStore core.PositionStore,
	ledgerStore core.LedgerStore,
	liquidationStore core.LiquidationStore,
	transactionStore core.TransactionStore,
	priceService core.PriceOracleService,
	healthService core.HealthService,
) core.LiquidationService {
	return liquidationservice.New(db, poolStore, positionStore, ledgerStore, liquidationStore, transactionStore, priceService, healthService)
}
