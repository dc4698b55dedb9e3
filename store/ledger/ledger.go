package ledger

import (
	"context"

	"reservoir/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type ledgerStore struct {
	db *db.DB
}

// New new share ledger store
func New(db *db.DB) core.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.ShareAccount{})

		if err := tx.AutoMigrate(core.ShareAccount{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) Find(ctx context.Context, userID, assetID string) (*core.ShareAccount, error) {
	var account core.ShareAccount
	err := s.db.View().Where("user_id = ? and asset_id = ?", userID, assetID).First(&account).Error
	if store.IsErrNotFound(err) {
		return &core.ShareAccount{}, nil
	}
	return &account, err
}

func (s *ledgerStore) FindByUser(ctx context.Context, userID string) ([]*core.ShareAccount, error) {
	var accounts []*core.ShareAccount
	if err := s.db.View().Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *ledgerStore) FindByAsset(ctx context.Context, assetID string) ([]*core.ShareAccount, error) {
	var accounts []*core.ShareAccount
	if err := s.db.View().Where("asset_id = ?", assetID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *ledgerStore) Save(ctx context.Context, tx *db.DB, account *core.ShareAccount) error {
	return tx.Update().Where("user_id = ? and asset_id = ?", account.UserID, account.AssetID).FirstOrCreate(account).Error
}

func (s *ledgerStore) Update(ctx context.Context, tx *db.DB, account *core.ShareAccount) error {
	version := account.Version
	account.Version++

	updates := map[string]interface{}{
		"shares":  account.Shares,
		"version": account.Version,
	}

	t := tx.Update().Model(core.ShareAccount{}).Where("user_id = ? and asset_id = ? and version = ?", account.UserID, account.AssetID, version).Updates(updates)
	if t.Error != nil {
		return t.Error
	}

	if t.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
