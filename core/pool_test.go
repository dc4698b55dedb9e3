package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPoolAvailableLiquidity(t *testing.T) {
	pool := &Pool{
		TotalDeposits: decimal.NewFromInt(100),
		TotalBorrowed: decimal.NewFromInt(90),
	}

	assert.Equal(t, "10", pool.AvailableLiquidity().String())
}

func TestPoolBorrowAllowed(t *testing.T) {
	pool := &Pool{
		TotalDeposits: decimal.NewFromInt(100),
		TotalBorrowed: decimal.NewFromInt(40),
	}

	assert.True(t, pool.BorrowAllowed(decimal.NewFromInt(60)))
	assert.False(t, pool.BorrowAllowed(decimal.NewFromInt(61)))

	// zero or negative amounts never pass
	assert.False(t, pool.BorrowAllowed(decimal.Zero))
	assert.False(t, pool.BorrowAllowed(decimal.NewFromInt(-1)))

	// the borrow cap keeps a floor of idle liquidity
	pool.BorrowCap = decimal.NewFromInt(20)
	assert.True(t, pool.BorrowAllowed(decimal.NewFromInt(40)))
	assert.False(t, pool.BorrowAllowed(decimal.NewFromInt(41)))
}

func TestPoolAllocateForBorrow(t *testing.T) {
	pool := &Pool{
		TotalDeposits: decimal.NewFromInt(100),
		TotalBorrowed: decimal.NewFromInt(40),
	}

	assert.Nil(t, pool.AllocateForBorrow(decimal.NewFromInt(60)))
	assert.Equal(t, "100", pool.TotalBorrowed.String())

	// a failed allocation leaves the pool untouched
	assert.Equal(t, ErrInsufficientLiquidity, pool.AllocateForBorrow(decimal.NewFromInt(1)))
	assert.Equal(t, "100", pool.TotalBorrowed.String())
}

func TestPoolReturnFromBorrow(t *testing.T) {
	pool := &Pool{
		TotalDeposits: decimal.NewFromInt(100),
		TotalBorrowed: decimal.NewFromInt(40),
	}

	pool.ReturnFromBorrow(decimal.NewFromInt(30))
	assert.Equal(t, "10", pool.TotalBorrowed.String())
	assert.True(t, pool.Reserves.IsZero())

	// debt balances round up per borrower, the dust lands in reserves
	pool.ReturnFromBorrow(decimal.RequireFromString("10.00000001"))
	assert.True(t, pool.TotalBorrowed.IsZero())
	assert.Equal(t, "0.00000001", pool.Reserves.String())
}

func TestPoolStatus(t *testing.T) {
	assert.Equal(t, "active", PoolStatusActive.String())
	assert.Equal(t, "paused", PoolStatusPaused.String())
	assert.Equal(t, "unknown", PoolStatus(9).String())

	p := &Pool{Status: PoolStatusPaused}
	assert.True(t, p.IsPaused())

	p.Status = PoolStatusActive
	assert.False(t, p.IsPaused())
}
