package position

import (
	"context"

	"reservoir/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.PositionStore {
	return &positionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()

		if err := tx.Model(core.Position{}).AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		if err := tx.Model(core.Collateral{}).AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		if err := tx.Model(core.Debt{}).AutoMigrate(core.Debt{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	return tx.Update().Where("position_id = ?", position.PositionID).FirstOrCreate(position).Error
}

func (s *positionStore) Find(ctx context.Context, positionID string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("position_id = ?", positionID).First(&position).Error
	if store.IsErrNotFound(err) {
		return &core.Position{}, nil
	}
	return &position, err
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("user_id = ?", userID).First(&position).Error
	if store.IsErrNotFound(err) {
		return &core.Position{}, nil
	}
	return &position, err
}

func (s *positionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("id > ?", fromID).Limit(limit).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) ListByStatus(ctx context.Context, statuses ...core.PositionStatus) ([]*core.Position, error) {
	query := s.db.View()
	if len(statuses) > 0 {
		query = query.Where("status in (?)", statuses)
	}

	var positions []*core.Position
	if err := query.Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++

	updates := map[string]interface{}{
		"interest_rate":   position.InterestRate,
		"status":          position.Status,
		"last_accrued_at": position.LastAccruedAt,
		"version":         position.Version,
	}

	t := tx.Update().Model(core.Position{}).Where("position_id = ? and version = ?", position.PositionID, version).Updates(updates)
	if t.Error != nil {
		return t.Error
	}

	if t.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *positionStore) FindCollateral(ctx context.Context, positionID, assetID string) (*core.Collateral, error) {
	var collateral core.Collateral
	err := s.db.View().Where("position_id = ? and asset_id = ?", positionID, assetID).First(&collateral).Error
	if store.IsErrNotFound(err) {
		return &core.Collateral{}, nil
	}
	return &collateral, err
}

func (s *positionStore) ListCollaterals(ctx context.Context, positionID string) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	if err := s.db.View().Where("position_id = ?", positionID).Find(&collaterals).Error; err != nil {
		return nil, err
	}
	return collaterals, nil
}

func (s *positionStore) SaveCollateral(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	return tx.Update().Where("position_id = ? and asset_id = ?", collateral.PositionID, collateral.AssetID).FirstOrCreate(collateral).Error
}

func (s *positionStore) UpdateCollateral(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	version := collateral.Version
	collateral.Version++

	updates := map[string]interface{}{
		"shares":  collateral.Shares,
		"version": collateral.Version,
	}

	t := tx.Update().Model(core.Collateral{}).Where("position_id = ? and asset_id = ? and version = ?", collateral.PositionID, collateral.AssetID, version).Updates(updates)
	if t.Error != nil {
		return t.Error
	}

	if t.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *positionStore) FindDebt(ctx context.Context, positionID, assetID string) (*core.Debt, error) {
	var debt core.Debt
	err := s.db.View().Where("position_id = ? and asset_id = ?", positionID, assetID).First(&debt).Error
	if store.IsErrNotFound(err) {
		return &core.Debt{}, nil
	}
	return &debt, err
}

func (s *positionStore) ListDebts(ctx context.Context, positionID string) ([]*core.Debt, error) {
	var debts []*core.Debt
	if err := s.db.View().Where("position_id = ?", positionID).Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

func (s *positionStore) SaveDebt(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	return tx.Update().Where("position_id = ? and asset_id = ?", debt.PositionID, debt.AssetID).FirstOrCreate(debt).Error
}

func (s *positionStore) UpdateDebt(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	version := debt.Version
	debt.Version++

	updates := map[string]interface{}{
		"principal":      debt.Principal,
		"interest_index": debt.InterestIndex,
		"version":        debt.Version,
	}

	t := tx.Update().Model(core.Debt{}).Where("position_id = ? and asset_id = ? and version = ?", debt.PositionID, debt.AssetID, version).Updates(updates)
	if t.Error != nil {
		return t.Error
	}

	if t.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
