package reservoir

import (
	"github.com/shopspring/decimal"
)

// MaxRepayValue largest debt value one liquidation may repay
// max_repay_value = debt_value * close_factor
func MaxRepayValue(debtValue, closeFactor decimal.Decimal) decimal.Decimal {
	return debtValue.Mul(closeFactor).Truncate(MaxPrecision)
}

// SeizeValue collateral value claimable for a repaid debt value
// seize_value = repay_value * (1 + liquidation_bonus)
func SeizeValue(repayValue, liquidationBonus decimal.Decimal) decimal.Decimal {
	return repayValue.Mul(decimal.New(1, 0).Add(liquidationBonus)).Truncate(MaxPrecision)
}

// SeizeShares collateral shares claimable for a repaid debt value.
//
// The caller clamps the result to the shares actually pledged, the clamp
// trims the liquidator's bonus and never the debt reduction.
func SeizeShares(repayValue, liquidationBonus, collateralPrice, exchangeRate decimal.Decimal) decimal.Decimal {
	if collateralPrice.LessThanOrEqual(decimal.Zero) || exchangeRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	seizedAmount := SeizeValue(repayValue, liquidationBonus).Div(collateralPrice).Truncate(MaxPrecision)
	return seizedAmount.Div(exchangeRate).Truncate(8)
}
