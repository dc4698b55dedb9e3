package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Liquidation settled liquidation record, append only
type Liquidation struct {
	ID                uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID           string          `sql:"size:36;unique_index:liquidation_trace_idx" json:"trace_id"`
	PositionID        string          `sql:"size:36;index:idx_liquidations_position_id" json:"position_id"`
	UserID            string          `sql:"size:36;index:idx_liquidations_user_id" json:"user_id"`
	Liquidator        string          `sql:"size:36;index:idx_liquidations_liquidator" json:"liquidator"`
	DebtAssetID       string          `sql:"size:36" json:"debt_asset_id"`
	DebtAmount        decimal.Decimal `sql:"type:decimal(32,8)" json:"debt_amount"`
	CollateralAssetID string          `sql:"size:36" json:"collateral_asset_id"`
	SeizedShares      decimal.Decimal `sql:"type:decimal(32,8)" json:"seized_shares"`
	SeizedValue       decimal.Decimal `sql:"type:decimal(32,8)" json:"seized_value"`
	PreHealthFactor   decimal.Decimal `sql:"type:decimal(20,8)" json:"pre_health_factor"`
	PostHealthFactor  decimal.Decimal `sql:"type:decimal(20,8)" json:"post_health_factor"`
	CreatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_liquidations_created_at" json:"created_at"`
}

// LiquidateReq liquidation request
type LiquidateReq struct {
	TraceID           string          `json:"trace_id,omitempty" valid:"uuid,required"`
	Liquidator        string          `json:"liquidator,omitempty" valid:"required"`
	PositionID        string          `json:"position_id,omitempty" valid:"uuid,required"`
	AssetID           string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Amount            decimal.Decimal `json:"amount,omitempty"`
	CollateralAssetID string          `json:"collateral_asset_id,omitempty" valid:"uuid,required"`
}

// LiquidationStore liquidation record store interface
type LiquidationStore interface {
	Create(ctx context.Context, tx *db.DB, liquidation *Liquidation) error
	FindByTraceID(ctx context.Context, traceID string) (*Liquidation, error)
	List(ctx context.Context, offset time.Time, limit int) ([]*Liquidation, error)
	ListByPosition(ctx context.Context, positionID string) ([]*Liquidation, error)
}

// LiquidationService liquidation settlement interface
type LiquidationService interface {
	Liquidate(ctx context.Context, req *LiquidateReq) (*Transaction, error)
}
