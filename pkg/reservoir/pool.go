package reservoir

import (
	"reservoir/core"
	"reservoir/pkg/number"
	"time"

	"github.com/shopspring/decimal"
)

// GetExchangeRate exchange rate of shares to the underlying asset
// exchange_rate = pool.total_deposits / pool.total_shares
func GetExchangeRate(totalDeposits, totalShares, initExchangeRate decimal.Decimal) decimal.Decimal {
	if totalShares.LessThanOrEqual(decimal.Zero) {
		if initExchangeRate.IsPositive() {
			return initExchangeRate
		}
		return decimal.New(1, 0)
	}

	return totalDeposits.Div(totalShares).Truncate(MaxPrecision)
}

// MintShares shares minted for a deposit
// shares = amount * pool.total_shares / pool.total_deposits
//
// Multiplication first, truncation favors the pool. The first deposit
// mints at the init exchange rate, one share per unit by default.
func MintShares(pool *core.Pool, amount decimal.Decimal) decimal.Decimal {
	if !pool.TotalShares.IsPositive() {
		return amount.Div(CurExchangeRate(pool)).Truncate(8)
	}

	return amount.Mul(pool.TotalShares).Div(pool.TotalDeposits).Truncate(8)
}

// BurnShares underlying amount redeemed for burning shares
// amount = shares * pool.total_deposits / pool.total_shares
func BurnShares(pool *core.Pool, shares decimal.Decimal) decimal.Decimal {
	if !pool.TotalShares.IsPositive() {
		return decimal.Zero
	}

	return shares.Mul(pool.TotalDeposits).Div(pool.TotalShares).Truncate(pool.Precision)
}

// CurUtilizationRate current utilization rate
func CurUtilizationRate(pool *core.Pool) decimal.Decimal {
	return UtilizationRate(pool.TotalDeposits, pool.TotalBorrowed)
}

// CurExchangeRate current exchange rate
func CurExchangeRate(pool *core.Pool) decimal.Decimal {
	return GetExchangeRate(pool.TotalDeposits, pool.TotalShares, pool.InitExchangeRate)
}

// CurBorrowRate current borrow APY
func CurBorrowRate(pool *core.Pool) decimal.Decimal {
	return GetBorrowRate(
		CurUtilizationRate(pool),
		pool.BaseRate,
		pool.Slope1,
		pool.Slope2,
		pool.OptimalUtilization,
	)
}

// CurSupplyRate current supply APY
func CurSupplyRate(pool *core.Pool) decimal.Decimal {
	return GetSupplyRate(
		CurUtilizationRate(pool),
		pool.BaseRate,
		pool.Slope1,
		pool.Slope2,
		pool.OptimalUtilization,
		pool.ReserveFactor,
	)
}

func curBorrowRatePerSecondInternal(pool *core.Pool) decimal.Decimal {
	return GetBorrowRatePerSecond(
		CurUtilizationRate(pool),
		pool.BaseRate,
		pool.Slope1,
		pool.Slope2,
		pool.OptimalUtilization,
	)
}

// AccrueInterest accrue interest on the pool up to the given time.
//
// Interest compounds lazily, once per elapsed second span. The borrow side
// grows by borrowed * rate * elapsed, the reserve factor slice goes to
// reserves and the rest raises the suppliers' claim, so the exchange rate
// climbs without minting shares. Calling again at the same timestamp only
// refreshes the rate snapshots.
func AccrueInterest(pool *core.Pool, at time.Time) {
	if !pool.BorrowIndex.IsPositive() {
		pool.BorrowIndex = decimal.New(1, 0)
	}

	if pool.LastAccruedAt.IsZero() {
		pool.LastAccruedAt = at
	}

	if delta := at.Unix() - pool.LastAccruedAt.Unix(); delta > 0 {
		borrowRate := curBorrowRatePerSecondInternal(pool)
		timesBorrowRate := borrowRate.Mul(decimal.NewFromInt(delta))
		interestAccumulated := CompoundInterest(pool.TotalBorrowed, borrowRate, delta)
		reserveShare := interestAccumulated.Mul(pool.ReserveFactor).Truncate(MaxPrecision)

		pool.LastAccruedAt = at
		pool.TotalBorrowed = pool.TotalBorrowed.Add(interestAccumulated)
		pool.TotalDeposits = pool.TotalDeposits.Add(interestAccumulated.Sub(reserveShare))
		pool.Reserves = pool.Reserves.Add(reserveShare)
		pool.BorrowIndex = pool.BorrowIndex.Add(
			number.Ceil(timesBorrowRate.Mul(pool.BorrowIndex), MaxPrecision))
	}

	pool.UtilizationRate = CurUtilizationRate(pool)
	pool.ExchangeRate = CurExchangeRate(pool)
	pool.BorrowRate = CurBorrowRate(pool)
	pool.SupplyRate = CurSupplyRate(pool)
}
