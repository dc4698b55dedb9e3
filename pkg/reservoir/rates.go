package reservoir

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// CloseFactorMin lowest accepted close factor
	CloseFactorMin = decimal.NewFromFloat(0.05)
	// CloseFactorMax highest accepted close factor
	CloseFactorMax = decimal.NewFromFloat(0.9)
	// CollateralFactorMax highest accepted collateral factor
	CollateralFactorMax = decimal.NewFromFloat(0.9)
	// LiquidationBonusMax highest accepted liquidation bonus
	LiquidationBonusMax = decimal.NewFromFloat(0.9)
	// MaxPrecision max precision
	MaxPrecision int32 = 16
)

// UtilizationRate utilization rate
// utilization_rate = pool.total_borrowed / pool.total_deposits
func UtilizationRate(deposits, borrowed decimal.Decimal) decimal.Decimal {
	if deposits.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return borrowed.Div(deposits).Truncate(MaxPrecision)
}

// GetBorrowRate borrow rate per year
//
// Below optimal utilization the rate climbs linearly from base_rate to
// base_rate + slope1, past it the excess utilization is scaled by slope2
// over the remaining headroom.
func GetBorrowRate(utilizationRate, baseRate, slope1, slope2, optimal decimal.Decimal) decimal.Decimal {
	if optimal.LessThanOrEqual(decimal.Zero) {
		return utilizationRate.Mul(slope1).Add(baseRate).Truncate(MaxPrecision)
	}

	if utilizationRate.LessThanOrEqual(optimal) {
		return utilizationRate.Mul(slope1).Div(optimal).Add(baseRate).Truncate(MaxPrecision)
	}

	normalRate := baseRate.Add(slope1)
	excessUtilRate := utilizationRate.Sub(optimal)
	headroom := decimal.New(1, 0).Sub(optimal)
	return excessUtilRate.Mul(slope2).Div(headroom).Add(normalRate).Truncate(MaxPrecision)
}

// GetSupplyRate supply rate per year
// supply_rate = borrow_rate * utilization_rate * (1 - reserve_factor)
func GetSupplyRate(utilizationRate, baseRate, slope1, slope2, optimal, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRate(utilizationRate, baseRate, slope1, slope2, optimal)
	oneMinusReserveFactor := decimal.New(1, 0).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

// GetBorrowRatePerSecond borrow rate per second
func GetBorrowRatePerSecond(utilizationRate, baseRate, slope1, slope2, optimal decimal.Decimal) decimal.Decimal {
	return GetBorrowRate(utilizationRate, baseRate, slope1, slope2, optimal).
		Div(SecondsPerYear).Truncate(MaxPrecision)
}

// CompoundInterest interest accrued over the elapsed span by simple
// per-period accretion
// interest = principal * rate_per_second * elapsed_seconds
func CompoundInterest(principal, ratePerSecond decimal.Decimal, elapsedSeconds int64) decimal.Decimal {
	return principal.Mul(ratePerSecond).
		Mul(decimal.NewFromInt(elapsedSeconds)).
		Truncate(MaxPrecision)
}

// GetSupplyRatePerSecond supply rate per second
func GetSupplyRatePerSecond(utilizationRate, baseRate, slope1, slope2, optimal, reserveFactor decimal.Decimal) decimal.Decimal {
	return GetSupplyRate(utilizationRate, baseRate, slope1, slope2, optimal, reserveFactor).
		Div(SecondsPerYear).Truncate(MaxPrecision)
}
