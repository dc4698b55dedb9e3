package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ShareAccount free share balance of one user in one pool.
//
// Shares move between accounts and positions as paired debit and credit
// inside a single database transaction, they are never duplicated.
type ShareAccount struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string          `sql:"size:36;unique_index:share_account_idx" json:"user_id"`
	AssetID   string          `sql:"size:36;unique_index:share_account_idx" json:"asset_id"`
	Shares    decimal.Decimal `sql:"type:decimal(32,8)" json:"shares"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LedgerStore share ledger store interface
type LedgerStore interface {
	Find(ctx context.Context, userID, assetID string) (*ShareAccount, error)
	FindByUser(ctx context.Context, userID string) ([]*ShareAccount, error)
	FindByAsset(ctx context.Context, assetID string) ([]*ShareAccount, error)
	Save(ctx context.Context, tx *db.DB, account *ShareAccount) error
	Update(ctx context.Context, tx *db.DB, account *ShareAccount) error
}
