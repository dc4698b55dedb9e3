package reservoir

import (
	"testing"
	"time"

	"reservoir/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExchangeRate(t *testing.T) {
	// empty pool falls back to the initial rate
	r := GetExchangeRate(decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Equal(t, "1", r.String())

	r = GetExchangeRate(decimal.Zero, decimal.Zero, decimal.NewFromFloat(1.5))
	assert.Equal(t, "1.5", r.String())

	r = GetExchangeRate(decimal.NewFromInt(110), decimal.NewFromInt(100), decimal.New(1, 0))
	assert.Equal(t, "1.1", r.String())
}

func testPool() *core.Pool {
	return &core.Pool{
		AssetID:          "a5c5f3b4-3f43-3f97-8a9a-4898b2a547d8",
		Symbol:           "SUI",
		Precision:        9,
		TotalDeposits:    decimal.NewFromInt(100),
		TotalBorrowed:    decimal.NewFromInt(50),
		TotalShares:      decimal.NewFromInt(100),
		InitExchangeRate: decimal.New(1, 0),
		ReserveFactor:    decimal.NewFromFloat(0.2),
		// 0.31536 per year is exactly 1e-8 per second at u=0.5
		BaseRate:           decimal.NewFromFloat(0.31536),
		Slope1:             decimal.Zero,
		Slope2:             decimal.Zero,
		OptimalUtilization: decimal.NewFromFloat(0.8),
		BorrowIndex:        decimal.New(1, 0),
		LastAccruedAt:      time.Unix(1600000000, 0),
	}
}

func TestMintSharesBootstrap(t *testing.T) {
	pool := testPool()
	pool.TotalDeposits = decimal.Zero
	pool.TotalShares = decimal.Zero

	// first deposit into an empty pool mints one share per unit
	shares := MintShares(pool, decimal.NewFromInt(100))
	assert.Equal(t, "100", shares.String())
}

func TestMintShares(t *testing.T) {
	pool := testPool()
	pool.TotalDeposits = decimal.NewFromInt(110)

	// 50 * 100 / 110, truncation favors the pool
	shares := MintShares(pool, decimal.NewFromInt(50))
	assert.Equal(t, "45.45454545", shares.String())
}

func TestBurnShares(t *testing.T) {
	pool := testPool()
	pool.TotalDeposits = decimal.NewFromInt(110)

	amount := BurnShares(pool, decimal.NewFromInt(50))
	assert.Equal(t, "55", amount.String())

	assert.True(t, BurnShares(&core.Pool{}, decimal.NewFromInt(1)).IsZero())
}

func TestMintBurnRoundTrip(t *testing.T) {
	pool := testPool()
	pool.TotalDeposits = decimal.RequireFromString("103.57")

	// burning the freshly minted shares never pays back more than went in
	for _, raw := range []string{"1", "0.333333333", "7000.000000001", "99.999999999"} {
		amount := decimal.RequireFromString(raw)

		shares := MintShares(pool, amount)
		pool.TotalDeposits = pool.TotalDeposits.Add(amount)
		pool.TotalShares = pool.TotalShares.Add(shares)

		back := BurnShares(pool, shares)
		require.True(t, back.LessThanOrEqual(amount), "minted value grew for %s", raw)

		pool.TotalDeposits = pool.TotalDeposits.Sub(back)
		pool.TotalShares = pool.TotalShares.Sub(shares)
	}
}

func TestAccrueInterest(t *testing.T) {
	pool := testPool()
	at := pool.LastAccruedAt.Add(100 * time.Second)

	AccrueInterest(pool, at)

	// 50 * 1e-8 * 100 = 0.00005 interest, 20% to reserves
	assert.Equal(t, "50.00005", pool.TotalBorrowed.String())
	assert.Equal(t, "100.00004", pool.TotalDeposits.String())
	assert.Equal(t, "0.00001", pool.Reserves.String())
	assert.Equal(t, "1.000001", pool.BorrowIndex.String())
	assert.Equal(t, "1.0000004", pool.ExchangeRate.String())
	assert.True(t, pool.LastAccruedAt.Equal(at))
}

func TestAccrueInterestIdempotent(t *testing.T) {
	pool := testPool()
	at := pool.LastAccruedAt.Add(100 * time.Second)

	AccrueInterest(pool, at)
	borrowed, deposits, reserves, index := pool.TotalBorrowed, pool.TotalDeposits, pool.Reserves, pool.BorrowIndex

	// replay at the same timestamp changes nothing
	AccrueInterest(pool, at)
	assert.Equal(t, borrowed.String(), pool.TotalBorrowed.String())
	assert.Equal(t, deposits.String(), pool.TotalDeposits.String())
	assert.Equal(t, reserves.String(), pool.Reserves.String())
	assert.Equal(t, index.String(), pool.BorrowIndex.String())

	// an earlier timestamp is a no-op as well
	AccrueInterest(pool, at.Add(-time.Minute))
	assert.Equal(t, borrowed.String(), pool.TotalBorrowed.String())
}

func TestAccrueInterestConservation(t *testing.T) {
	pool := testPool()
	pool.BaseRate = decimal.NewFromFloat(0.02)
	pool.Slope1 = decimal.NewFromFloat(0.1)
	pool.Slope2 = decimal.NewFromFloat(1.0)
	pool.TotalBorrowed = decimal.NewFromInt(90)

	borrowed0, deposits0, reserves0 := pool.TotalBorrowed, pool.TotalDeposits, pool.Reserves

	AccrueInterest(pool, pool.LastAccruedAt.Add(3600*time.Second))

	// every unit of accrued interest lands either with suppliers or in reserves
	interest := pool.TotalBorrowed.Sub(borrowed0)
	require.True(t, interest.IsPositive())
	grown := pool.TotalDeposits.Sub(deposits0).Add(pool.Reserves.Sub(reserves0))
	assert.Equal(t, interest.String(), grown.String())

	// exchange rate never decreases across accruals
	assert.True(t, pool.ExchangeRate.GreaterThanOrEqual(decimal.New(1, 0)))
}

func TestAccrueInterestEmptyPool(t *testing.T) {
	pool := &core.Pool{
		InitExchangeRate:   decimal.New(1, 0),
		OptimalUtilization: decimal.NewFromFloat(0.8),
		BaseRate:           decimal.NewFromFloat(0.02),
	}

	AccrueInterest(pool, time.Unix(1600000000, 0))

	assert.True(t, pool.TotalDeposits.IsZero())
	assert.True(t, pool.UtilizationRate.IsZero())
	assert.Equal(t, "1", pool.ExchangeRate.String())
	assert.Equal(t, "1", pool.BorrowIndex.String())
}
