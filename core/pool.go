package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PoolStatus pool status
type PoolStatus int

const (
	// PoolStatusActive pool open for deposits, withdrawals and borrows
	PoolStatusActive PoolStatus = iota
	// PoolStatusPaused deposits, withdrawals and borrows suspended, repayments and liquidations still accepted
	PoolStatusPaused
)

func (s PoolStatus) String() string {
	switch s {
	case PoolStatusActive:
		return "active"
	case PoolStatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Pool lending pool of a single asset
type Pool struct {
	ID          uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID     string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol      string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	ShareSymbol string `sql:"size:20" json:"share_symbol"`
	// Precision native decimals of the pool asset, amounts truncate here
	Precision int32 `sql:"default:8" json:"precision"`
	// TotalDeposits aggregate claim of all suppliers, includes funds out on loan
	TotalDeposits decimal.Decimal `sql:"type:decimal(32,8)" json:"total_deposits"`
	TotalBorrowed decimal.Decimal `sql:"type:decimal(32,8)" json:"total_borrowed"`
	TotalShares   decimal.Decimal `sql:"type:decimal(32,8)" json:"total_shares"`
	// Reserves protocol owned, backs no shares
	Reserves         decimal.Decimal `sql:"type:decimal(32,8)" json:"reserves"`
	InitExchangeRate decimal.Decimal `sql:"type:decimal(20,8);default:1" json:"init_exchange_rate"`
	// ReserveFactor share of accrued interest kept as reserves, (0, 1)
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	// LiquidationBonus discount granted to liquidators on seized collateral, (0, 1)
	LiquidationBonus decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_bonus"`
	// BorrowCap liquidity that may never be borrowed out
	BorrowCap decimal.Decimal `sql:"type:decimal(32,8);default:0" json:"borrow_cap"`
	// CollateralFactor borrowing power per unit of collateral value, [0, 0.9]
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	// LiquidationThreshold collateral weight used for solvency, >= CollateralFactor
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	// CloseFactor max fraction of a position's debt value one liquidation may repay, [0.05, 0.9]
	CloseFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"close_factor"`
	// BaseRate borrow rate at zero utilization, per year
	BaseRate decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	// Slope1 rate increase up to optimal utilization, per year
	Slope1 decimal.Decimal `sql:"type:decimal(20,8)" json:"slope1"`
	// Slope2 rate increase past optimal utilization, per year
	Slope2             decimal.Decimal `sql:"type:decimal(20,8)" json:"slope2"`
	OptimalUtilization decimal.Decimal `sql:"type:decimal(20,8)" json:"optimal_utilization"`
	UtilizationRate    decimal.Decimal `sql:"type:decimal(20,16)" json:"utilization_rate"`
	ExchangeRate       decimal.Decimal `sql:"type:decimal(20,16)" json:"exchange_rate"`
	BorrowRate         decimal.Decimal `sql:"type:decimal(20,16)" json:"borrow_rate"`
	SupplyRate         decimal.Decimal `sql:"type:decimal(20,16)" json:"supply_rate"`
	BorrowIndex        decimal.Decimal `sql:"type:decimal(28,16)" json:"borrow_index"`
	Status             PoolStatus      `sql:"default:0" json:"status"`
	LastAccruedAt      time.Time       `json:"last_accrued_at"`
	Version            int64           `sql:"default:0" json:"version"`
	CreatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsPaused pool paused
func (p *Pool) IsPaused() bool {
	return p.Status == PoolStatusPaused
}

// AvailableLiquidity deposits not out on loan
func (p *Pool) AvailableLiquidity() decimal.Decimal {
	return p.TotalDeposits.Sub(p.TotalBorrowed)
}

// BorrowAllowed borrowing amount leaves at least BorrowCap of liquidity in the pool
func (p *Pool) BorrowAllowed(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}

	return p.AvailableLiquidity().Sub(amount).GreaterThanOrEqual(p.BorrowCap)
}

// AllocateForBorrow reserve liquidity for a borrow, the caller persists the pool
func (p *Pool) AllocateForBorrow(amount decimal.Decimal) error {
	if !p.BorrowAllowed(amount) {
		return ErrInsufficientLiquidity
	}

	p.TotalBorrowed = p.TotalBorrowed.Add(amount)
	return nil
}

// ReturnFromBorrow release borrowed liquidity on repay or liquidation.
// Per-debt balances round up against the borrower, so the aggregate can
// undershoot by dust, the leftover lands in reserves.
func (p *Pool) ReturnFromBorrow(amount decimal.Decimal) {
	p.TotalBorrowed = p.TotalBorrowed.Sub(amount)
	if p.TotalBorrowed.IsNegative() {
		p.Reserves = p.Reserves.Add(p.TotalBorrowed.Neg())
		p.TotalBorrowed = decimal.Zero
	}
}

// DepositReq deposit request
type DepositReq struct {
	TraceID string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID  string          `json:"user_id,omitempty" valid:"required"`
	AssetID string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Amount  decimal.Decimal `json:"amount,omitempty"`
}

// WithdrawReq withdraw request, shares are burned for the underlying asset
type WithdrawReq struct {
	TraceID string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID  string          `json:"user_id,omitempty" valid:"required"`
	AssetID string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Shares  decimal.Decimal `json:"shares,omitempty"`
}

// AddPoolReq pool creation request, admin only
type AddPoolReq struct {
	TraceID              string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID               string          `json:"user_id,omitempty" valid:"required"`
	AssetID              string          `json:"asset_id,omitempty" valid:"uuid,required"`
	Symbol               string          `json:"symbol,omitempty" valid:"required"`
	ShareSymbol          string          `json:"share_symbol,omitempty"`
	Precision            int32           `json:"precision,omitempty"`
	InitExchangeRate     decimal.Decimal `json:"init_exchange_rate,omitempty"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor,omitempty"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus,omitempty"`
	BorrowCap            decimal.Decimal `json:"borrow_cap,omitempty"`
	CollateralFactor     decimal.Decimal `json:"collateral_factor,omitempty"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold,omitempty"`
	CloseFactor          decimal.Decimal `json:"close_factor,omitempty"`
	BaseRate             decimal.Decimal `json:"base_rate,omitempty"`
	Slope1               decimal.Decimal `json:"slope1,omitempty"`
	Slope2               decimal.Decimal `json:"slope2,omitempty"`
	OptimalUtilization   decimal.Decimal `json:"optimal_utilization,omitempty"`
}

// UpdatePoolReq risk parameter update request, admin only.
//
// Every parameter is replaced, callers send the full set each time.
type UpdatePoolReq struct {
	TraceID              string          `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID               string          `json:"user_id,omitempty" valid:"required"`
	AssetID              string          `json:"asset_id,omitempty" valid:"uuid,required"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor,omitempty"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus,omitempty"`
	BorrowCap            decimal.Decimal `json:"borrow_cap,omitempty"`
	CollateralFactor     decimal.Decimal `json:"collateral_factor,omitempty"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold,omitempty"`
	CloseFactor          decimal.Decimal `json:"close_factor,omitempty"`
	BaseRate             decimal.Decimal `json:"base_rate,omitempty"`
	Slope1               decimal.Decimal `json:"slope1,omitempty"`
	Slope2               decimal.Decimal `json:"slope2,omitempty"`
	OptimalUtilization   decimal.Decimal `json:"optimal_utilization,omitempty"`
}

// SetPoolStatusReq pause or resume request, admin only
type SetPoolStatusReq struct {
	TraceID string `json:"trace_id,omitempty" valid:"uuid,required"`
	UserID  string `json:"user_id,omitempty" valid:"required"`
	AssetID string `json:"asset_id,omitempty" valid:"uuid,required"`
	Status  string `json:"status,omitempty" valid:"required"`
}

// PoolStore pool store interface
type PoolStore interface {
	Create(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, assetID string) (*Pool, error)
	FindBySymbol(ctx context.Context, symbol string) (*Pool, error)
	All(ctx context.Context) ([]*Pool, error)
	AllAsMap(ctx context.Context) (map[string]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// PoolService pool interface, deposits and withdrawals plus the
// admin surface
type PoolService interface {
	Deposit(ctx context.Context, req *DepositReq) (*Transaction, error)
	Withdraw(ctx context.Context, req *WithdrawReq) (*Transaction, error)
	AddPool(ctx context.Context, req *AddPoolReq) (*Transaction, error)
	UpdatePool(ctx context.Context, req *UpdatePoolReq) (*Transaction, error)
	SetPoolStatus(ctx context.Context, req *SetPoolStatusReq) (*Transaction, error)
}
