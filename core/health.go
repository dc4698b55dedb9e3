package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HealthSnapshot solvency view of a position at one instant.
//
// BorrowLimit weights collateral by collateral factor, LiquidationLimit
// by liquidation threshold. A position may be opened only while
// Liquidity stays non negative, and liquidated only once the health
// factor drops below one.
type HealthSnapshot struct {
	PositionID       string          `json:"position_id"`
	CollateralValue  decimal.Decimal `json:"collateral_value"`
	DebtValue        decimal.Decimal `json:"debt_value"`
	BorrowLimit      decimal.Decimal `json:"borrow_limit"`
	LiquidationLimit decimal.Decimal `json:"liquidation_limit"`
	Liquidity        decimal.Decimal `json:"liquidity"`
	HealthFactor     decimal.Decimal `json:"health_factor"`
	EvaluatedAt      time.Time       `json:"evaluated_at"`
}

// Liquidatable position carries debt and sits below the liquidation limit
func (s *HealthSnapshot) Liquidatable() bool {
	return s.DebtValue.IsPositive() && s.HealthFactor.LessThan(decimal.New(1, 0))
}

// HealthService solvency evaluation over the price oracle.
//
// Collateral and debt legs are passed in memory so pending mutations are
// valued exactly, pools may override the stored state of pools the caller
// has already accrued.
type HealthService interface {
	Evaluate(ctx context.Context, collaterals []*Collateral, debts []*Debt, pools map[string]*Pool) (*HealthSnapshot, error)
}
