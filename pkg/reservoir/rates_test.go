package reservoir

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, UtilizationRate(decimal.Zero, decimal.NewFromInt(10)).IsZero())

	u := UtilizationRate(decimal.NewFromInt(100), decimal.NewFromInt(90))
	assert.Equal(t, "0.9", u.String())

	// stays within [0, 1] while borrowed never exceeds deposits
	for _, borrowed := range []int64{0, 1, 50, 99, 100} {
		u := UtilizationRate(decimal.NewFromInt(100), decimal.NewFromInt(borrowed))
		assert.False(t, u.IsNegative())
		assert.True(t, u.LessThanOrEqual(decimal.New(1, 0)))
	}
}

func TestGetBorrowRate(t *testing.T) {
	var (
		base    = decimal.NewFromFloat(0.02)
		slope1  = decimal.NewFromFloat(0.1)
		slope2  = decimal.NewFromFloat(1.0)
		optimal = decimal.NewFromFloat(0.8)
	)

	// idle pool pays the base rate only
	r := GetBorrowRate(decimal.Zero, base, slope1, slope2, optimal)
	assert.Equal(t, "0.02", r.String())

	// utilization 0.9 past the optimal point
	r = GetBorrowRate(decimal.NewFromFloat(0.9), base, slope1, slope2, optimal)
	assert.Equal(t, "0.62", r.String())

	// both legs meet at the optimal point
	atKink := GetBorrowRate(optimal, base, slope1, slope2, optimal)
	assert.Equal(t, "0.12", atKink.String())

	justPast := GetBorrowRate(decimal.NewFromFloat(0.80001), base, slope1, slope2, optimal)
	assert.True(t, justPast.Sub(atKink).Abs().LessThan(decimal.NewFromFloat(0.0001)))

	// fully utilized pool pays base + slope1 + slope2
	r = GetBorrowRate(decimal.New(1, 0), base, slope1, slope2, optimal)
	assert.Equal(t, "1.12", r.String())

	// rate never decreases as utilization climbs
	prev := decimal.Zero
	for i := 0; i <= 100; i++ {
		u := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(100))
		r := GetBorrowRate(u, base, slope1, slope2, optimal)
		require.True(t, r.GreaterThanOrEqual(prev), "rate dropped at u=%s", u)
		prev = r
	}
}

func TestGetSupplyRate(t *testing.T) {
	var (
		base          = decimal.NewFromFloat(0.02)
		slope1        = decimal.NewFromFloat(0.1)
		slope2        = decimal.NewFromFloat(1.0)
		optimal       = decimal.NewFromFloat(0.8)
		reserveFactor = decimal.NewFromFloat(0.1)
		u             = decimal.NewFromFloat(0.9)
	)

	// 0.62 * 0.9 * (1 - 0.1)
	r := GetSupplyRate(u, base, slope1, slope2, optimal, reserveFactor)
	assert.Equal(t, "0.5022", r.String())

	// suppliers never earn more than borrowers pay
	borrowRate := GetBorrowRate(u, base, slope1, slope2, optimal)
	assert.True(t, r.LessThan(borrowRate))
}

func TestGetBorrowRatePerSecond(t *testing.T) {
	// 0.31536 per year is exactly 1e-8 per second
	r := GetBorrowRatePerSecond(decimal.NewFromFloat(0.5), decimal.NewFromFloat(0.31536), decimal.Zero, decimal.Zero, decimal.NewFromFloat(0.8))
	assert.Equal(t, "0.00000001", r.String())
}

func TestCompoundInterest(t *testing.T) {
	principal := decimal.NewFromInt(1000)
	rate := decimal.RequireFromString("0.00000001")

	// 1000 * 1e-8 * 3600
	interest := CompoundInterest(principal, rate, 3600)
	assert.Equal(t, "0.036", interest.String())

	assert.True(t, CompoundInterest(principal, rate, 0).IsZero())
	assert.True(t, CompoundInterest(decimal.Zero, rate, 3600).IsZero())
}
