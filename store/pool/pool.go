package pool

import (
	"context"

	"reservoir/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.PoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})

		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Create(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	return tx.Update().Where("asset_id = ?", pool.AssetID).FirstOrCreate(pool).Error
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	var pool core.Pool
	err := s.db.View().Where("asset_id = ?", assetID).First(&pool).Error
	if store.IsErrNotFound(err) {
		return &core.Pool{}, nil
	}
	return &pool, err
}

func (s *poolStore) FindBySymbol(ctx context.Context, symbol string) (*core.Pool, error) {
	var pool core.Pool
	err := s.db.View().Where("symbol = ?", symbol).First(&pool).Error
	if store.IsErrNotFound(err) {
		return &core.Pool{}, nil
	}
	return &pool, err
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *poolStore) AllAsMap(ctx context.Context) (map[string]*core.Pool, error) {
	pools, e := s.All(ctx)
	if e != nil {
		return nil, e
	}

	maps := make(map[string]*core.Pool)

	for _, p := range pools {
		maps[p.AssetID] = p
	}

	return maps, nil
}

// toUpdateParams zero values must reach the database, gorm skips them on
// struct updates
func toUpdateParams(pool *core.Pool) map[string]interface{} {
	return map[string]interface{}{
		"total_deposits":        pool.TotalDeposits,
		"total_borrowed":        pool.TotalBorrowed,
		"total_shares":          pool.TotalShares,
		"reserves":              pool.Reserves,
		"reserve_factor":        pool.ReserveFactor,
		"liquidation_bonus":     pool.LiquidationBonus,
		"borrow_cap":            pool.BorrowCap,
		"collateral_factor":     pool.CollateralFactor,
		"liquidation_threshold": pool.LiquidationThreshold,
		"close_factor":          pool.CloseFactor,
		"base_rate":             pool.BaseRate,
		"slope1":                pool.Slope1,
		"slope2":                pool.Slope2,
		"optimal_utilization":   pool.OptimalUtilization,
		"utilization_rate":      pool.UtilizationRate,
		"exchange_rate":         pool.ExchangeRate,
		"borrow_rate":           pool.BorrowRate,
		"supply_rate":           pool.SupplyRate,
		"borrow_index":          pool.BorrowIndex,
		"status":                pool.Status,
		"last_accrued_at":       pool.LastAccruedAt,
	}
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++

	updates := toUpdateParams(pool)
	updates["version"] = pool.Version

	t := tx.Update().Model(core.Pool{}).Where("asset_id = ? and version = ?", pool.AssetID, version).Updates(updates)
	if t.Error != nil {
		return t.Error
	}

	if t.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
