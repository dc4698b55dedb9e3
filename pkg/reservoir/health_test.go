package reservoir

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHealthFactor(t *testing.T) {
	// $10 of collateral at threshold 0.8 against $7.50 of debt
	limit := decimal.NewFromInt(10).Mul(decimal.NewFromFloat(0.8))
	hf := HealthFactor(limit, decimal.NewFromFloat(7.5))
	assert.Equal(t, "1.06666666", hf.String())

	// debt grown to $9, below the liquidation line
	hf = HealthFactor(limit, decimal.NewFromInt(9))
	assert.Equal(t, "0.88888888", hf.String())
	assert.True(t, hf.LessThan(decimal.New(1, 0)))

	// no debt, nothing to liquidate
	hf = HealthFactor(limit, decimal.Zero)
	assert.True(t, hf.Equal(MaxHealthFactor))

	hf = HealthFactor(decimal.Zero, decimal.Zero)
	assert.True(t, hf.Equal(MaxHealthFactor))

	// worthless collateral with debt outstanding
	hf = HealthFactor(decimal.Zero, decimal.NewFromInt(5))
	assert.True(t, hf.IsZero())
}

func TestHealthFactorCapped(t *testing.T) {
	hf := HealthFactor(decimal.New(1, 12), decimal.New(1, 0))
	assert.True(t, hf.Equal(MaxHealthFactor))
}
