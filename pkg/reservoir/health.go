package reservoir

import (
	"github.com/shopspring/decimal"
)

// MaxHealthFactor health factor of a position without debt
var MaxHealthFactor = decimal.New(1, 10)

// HealthFactor solvency ratio of a position
// health_factor = liquidation_limit / debt_value
//
// Truncated to 8 decimal places, positions without debt peg to
// MaxHealthFactor and can never be liquidated.
func HealthFactor(liquidationLimit, debtValue decimal.Decimal) decimal.Decimal {
	if debtValue.LessThanOrEqual(decimal.Zero) {
		return MaxHealthFactor
	}

	hf := liquidationLimit.Div(debtValue).Truncate(8)
	if hf.GreaterThan(MaxHealthFactor) {
		return MaxHealthFactor
	}

	return hf
}
