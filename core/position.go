package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PositionStatus position status
type PositionStatus int

const (
	// PositionStatusHealthy health factor at or above one
	PositionStatusHealthy PositionStatus = iota
	// PositionStatusLiquidatable health factor below one, open to liquidation
	PositionStatusLiquidatable
	// PositionStatusPartiallyLiquidated some collateral seized, debt remains
	PositionStatusPartiallyLiquidated
	// PositionStatusClosed debt and collateral both zero
	PositionStatusClosed
)

func (s PositionStatus) String() string {
	switch s {
	case PositionStatusHealthy:
		return "healthy"
	case PositionStatusLiquidatable:
		return "liquidatable"
	case PositionStatusPartiallyLiquidated:
		return "partially_liquidated"
	case PositionStatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Position borrow position, one open position per user
type Position struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	PositionID string `sql:"size:36;unique_index:position_idx" json:"position_id"`
	UserID     string `sql:"size:36;unique_index:position_user_idx" json:"user_id"`
	// InterestRate borrow rate snapshot of the debt pool at the last draw
	InterestRate  decimal.Decimal `sql:"type:decimal(20,16)" json:"interest_rate"`
	Status        PositionStatus  `sql:"default:0" json:"status"`
	LastAccruedAt time.Time       `json:"last_accrued_at"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Collateral pledged shares of one pool inside a position
type Collateral struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	PositionID string          `sql:"size:36;unique_index:collateral_idx" json:"position_id"`
	UserID     string          `sql:"size:36;index:idx_collaterals_user_id" json:"user_id"`
	AssetID    string          `sql:"size:36;unique_index:collateral_idx" json:"asset_id"`
	Shares     decimal.Decimal `sql:"type:decimal(32,8)" json:"shares"`
	Version    int64           `sql:"default:0" json:"version"`
	CreatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Debt drawn principal of one pool inside a position
//
// balance = principal * pool.borrow_index / interest_index
type Debt struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	PositionID string `sql:"size:36;unique_index:debt_idx" json:"position_id"`
	UserID     string `sql:"size:36;index:idx_debts_user_id" json:"user_id"`
	// AssetID asset of the pool the debt is drawn from
	AssetID       string          `sql:"size:36;unique_index:debt_idx" json:"asset_id"`
	Principal     decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	InterestIndex decimal.Decimal `sql:"type:decimal(28,16)" json:"interest_index"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BorrowReq borrow request, pledges collateral shares and draws debt
type BorrowReq struct {
	TraceID           string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID            string          `json:"user_id,omitempty" valid:"required"`
	CollateralAssetID string          `json:"collateral_asset_id,omitempty"`
	CollateralShares  decimal.Decimal `json:"collateral_shares,omitempty"`
	AssetID           string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Amount            decimal.Decimal `json:"amount,omitempty"`
}

// RepayReq repay request, excess above the debt balance is returned
type RepayReq struct {
	TraceID string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID  string          `json:"user_id,omitempty" valid:"required"`
	AssetID string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Amount  decimal.Decimal `json:"amount,omitempty"`
}

// ReleaseReq collateral release request
type ReleaseReq struct {
	TraceID string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID  string          `json:"user_id,omitempty" valid:"required"`
	AssetID string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Shares  decimal.Decimal `json:"shares,omitempty"`
}

// QuickBorrowReq deposit, pledge and borrow as one atomic operation,
// minted shares never touch the free ledger
type QuickBorrowReq struct {
	TraceID       string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID        string          `json:"user_id,omitempty" valid:"required"`
	SupplyAssetID string          `json:"supply_asset_id,omitempty" valid:"uuid,required"`
	SupplyAmount  decimal.Decimal `json:"supply_amount,omitempty"`
	AssetID       string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Amount        decimal.Decimal `json:"amount,omitempty"`
}

// PositionStore position store interface
type PositionStore interface {
	Create(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, positionID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) (*Position, error)
	List(ctx context.Context, fromID uint64, limit int) ([]*Position, error)
	ListByStatus(ctx context.Context, statuses ...PositionStatus) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error

	FindCollateral(ctx context.Context, positionID, assetID string) (*Collateral, error)
	ListCollaterals(ctx context.Context, positionID string) ([]*Collateral, error)
	SaveCollateral(ctx context.Context, tx *db.DB, collateral *Collateral) error
	UpdateCollateral(ctx context.Context, tx *db.DB, collateral *Collateral) error

	FindDebt(ctx context.Context, positionID, assetID string) (*Debt, error)
	ListDebts(ctx context.Context, positionID string) ([]*Debt, error)
	SaveDebt(ctx context.Context, tx *db.DB, debt *Debt) error
	UpdateDebt(ctx context.Context, tx *db.DB, debt *Debt) error
}

// PositionService borrow side interface
type PositionService interface {
	Borrow(ctx context.Context, req *BorrowReq) (*Transaction, error)
	Repay(ctx context.Context, req *RepayReq) (*Transaction, error)
	Release(ctx context.Context, req *ReleaseReq) (*Transaction, error)
	QuickBorrow(ctx context.Context, req *QuickBorrowReq) (*Transaction, error)
}
