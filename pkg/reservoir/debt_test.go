package reservoir

import (
	"testing"

	"reservoir/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDebtBalance(t *testing.T) {
	pool := &core.Pool{BorrowIndex: decimal.NewFromFloat(1.1)}
	debt := &core.Debt{
		Principal:     decimal.NewFromInt(90),
		InterestIndex: decimal.New(1, 0),
	}

	assert.Equal(t, "99", DebtBalance(debt, pool).String())
}

func TestDebtBalanceFreshDebt(t *testing.T) {
	// a fresh debt leg adopts the pool index and owes exactly its principal
	pool := &core.Pool{BorrowIndex: decimal.NewFromFloat(1.2345)}
	debt := &core.Debt{Principal: decimal.NewFromInt(10)}

	assert.Equal(t, "10", DebtBalance(debt, pool).String())
	assert.Equal(t, "1.2345", debt.InterestIndex.String())
}

func TestDebtBalanceRoundsUp(t *testing.T) {
	pool := &core.Pool{BorrowIndex: decimal.RequireFromString("1.0000000000000000003")}
	debt := &core.Debt{
		Principal:     decimal.NewFromInt(1),
		InterestIndex: decimal.New(1, 0),
	}

	// interest owed rounds against the borrower, never truncates to zero
	balance := DebtBalance(debt, pool)
	assert.True(t, balance.GreaterThan(decimal.New(1, 0)))
	assert.Equal(t, "1.0000000000000001", balance.String())
}

func TestAccrueDebt(t *testing.T) {
	pool := &core.Pool{BorrowIndex: decimal.NewFromFloat(1.1)}
	debt := &core.Debt{
		Principal:     decimal.NewFromInt(90),
		InterestIndex: decimal.New(1, 0),
	}

	AccrueDebt(debt, pool)
	assert.Equal(t, "99", debt.Principal.String())
	assert.Equal(t, "1.1", debt.InterestIndex.String())

	// already at the current index, accruing again changes nothing
	AccrueDebt(debt, pool)
	assert.Equal(t, "99", debt.Principal.String())
}
