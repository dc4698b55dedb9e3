package price

import (
	"context"

	"reservoir/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.PriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Find(ctx context.Context, assetID string) (*core.Price, error) {
	var price core.Price
	err := s.db.View().Where("asset_id = ?", assetID).First(&price).Error
	if store.IsErrNotFound(err) {
		return &core.Price{}, nil
	}
	return &price, err
}

func (s *priceStore) All(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	if err := s.db.View().Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (s *priceStore) Save(ctx context.Context, tx *db.DB, price *core.Price) error {
	var existing core.Price
	err := tx.Update().Where("asset_id = ?", price.AssetID).First(&existing).Error
	if store.IsErrNotFound(err) {
		return tx.Update().Create(price).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"symbol":     price.Symbol,
		"price":      price.Price,
		"confidence": price.Confidence,
		"last_price": price.LastPrice,
		"providers":  price.Providers,
		"updated_at": price.UpdatedAt,
	}

	return tx.Update().Model(core.Price{}).Where("asset_id = ?", price.AssetID).Updates(updates).Error
}
