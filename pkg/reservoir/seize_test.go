package reservoir

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMaxRepayValue(t *testing.T) {
	v := MaxRepayValue(decimal.NewFromInt(9), decimal.NewFromFloat(0.5))
	assert.Equal(t, "4.5", v.String())
}

func TestSeizeValue(t *testing.T) {
	v := SeizeValue(decimal.NewFromFloat(4.5), decimal.NewFromFloat(0.1))
	assert.Equal(t, "4.95", v.String())
}

func TestSeizeShares(t *testing.T) {
	// $4.50 repaid with a 10% bonus claims $4.95 of collateral
	shares := SeizeShares(
		decimal.NewFromFloat(4.5),
		decimal.NewFromFloat(0.1),
		decimal.New(1, 0),
		decimal.New(1, 0),
	)
	assert.Equal(t, "4.95", shares.String())

	// a grown exchange rate claims fewer shares for the same value
	shares = SeizeShares(
		decimal.NewFromFloat(4.5),
		decimal.NewFromFloat(0.1),
		decimal.New(1, 0),
		decimal.NewFromFloat(1.1),
	)
	assert.Equal(t, "4.5", shares.String())

	// degenerate inputs claim nothing
	assert.True(t, SeizeShares(decimal.NewFromInt(1), decimal.Zero, decimal.Zero, decimal.New(1, 0)).IsZero())
	assert.True(t, SeizeShares(decimal.NewFromInt(1), decimal.Zero, decimal.New(1, 0), decimal.Zero).IsZero())
}
