package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Price oracle price point of one asset, USD denominated
type Price struct {
	ID      uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string          `sql:"size:36;unique_index:price_asset_idx" json:"asset_id"`
	Symbol  string          `sql:"size:20" json:"symbol"`
	Price   decimal.Decimal `sql:"type:decimal(32,8)" json:"price"`
	// Confidence reported by the feed, zero for manual provisions
	Confidence decimal.Decimal `sql:"type:decimal(20,8)" json:"confidence"`
	// LastPrice previous accepted price, anchor for the deviation guard
	LastPrice decimal.Decimal `sql:"type:decimal(32,8)" json:"last_price"`
	// Providers everyone who confirmed the current price, a price change
	// starts the list over
	Providers pq.StringArray `sql:"type:varchar(1024)" json:"providers,omitempty"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PriceTicker price pulled from a remote feed
type PriceTicker struct {
	AssetID    string          `json:"asset_id"`
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	Confidence decimal.Decimal `json:"confidence"`
	Provider   string          `json:"provider"`
}

// ProvidePriceReq price provision request
type ProvidePriceReq struct {
	TraceID    string          `json:"trace_id,omitempty" valid:"uuid,required"`
	AssetID    string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Symbol     string          `json:"symbol,omitempty"`
	Price      decimal.Decimal `json:"price,omitempty"`
	Confidence decimal.Decimal `json:"confidence,omitempty"`
	Provider   string          `json:"provider,omitempty"`
}

// PriceStore price store interface
type PriceStore interface {
	Find(ctx context.Context, assetID string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
	Save(ctx context.Context, tx *db.DB, price *Price) error
}

// PriceOracleService price read and provision interface.
//
// GetPrice returns the current valid price or fails with a price error,
// callers must abort the enclosing operation on failure. ProvidePrice is
// the single write path, the deviation guard applies to the price feed
// and to manual provisions alike.
type PriceOracleService interface {
	GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error)
	GetUSDValue(ctx context.Context, assetID string, amount decimal.Decimal) (decimal.Decimal, error)
	PullPriceTicker(ctx context.Context, assetID string, at time.Time) (*PriceTicker, error)
	ProvidePrice(ctx context.Context, req *ProvidePriceReq) (*Transaction, error)
}
