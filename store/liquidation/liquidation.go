package liquidation

import (
	"context"
	"time"

	"reservoir/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type liquidationStore struct {
	db *db.DB
}

// New new liquidation store
func New(db *db.DB) core.LiquidationStore {
	return &liquidationStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Liquidation{})

		if err := tx.AutoMigrate(core.Liquidation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *liquidationStore) Create(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	return tx.Update().Where("trace_id = ?", liquidation.TraceID).FirstOrCreate(liquidation).Error
}

func (s *liquidationStore) FindByTraceID(ctx context.Context, traceID string) (*core.Liquidation, error) {
	var liquidation core.Liquidation
	err := s.db.View().Where("trace_id = ?", traceID).First(&liquidation).Error
	if store.IsErrNotFound(err) {
		return &core.Liquidation{}, nil
	}
	return &liquidation, err
}

func (s *liquidationStore) List(ctx context.Context, offset time.Time, limit int) ([]*core.Liquidation, error) {
	if limit <= 0 {
		limit = 500
	}

	var liquidations []*core.Liquidation
	if err := s.db.View().Where("created_at >= ?", offset).Order("created_at ASC").Limit(limit).Find(&liquidations).Error; err != nil {
		return nil, err
	}

	return liquidations, nil
}

func (s *liquidationStore) ListByPosition(ctx context.Context, positionID string) ([]*core.Liquidation, error) {
	var liquidations []*core.Liquidation
	if err := s.db.View().Where("position_id = ?", positionID).Order("created_at ASC").Find(&liquidations).Error; err != nil {
		return nil, err
	}

	return liquidations, nil
}
