package pool

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type riskParams struct {
	reserveFactor        decimal.Decimal
	liquidationBonus     decimal.Decimal
	borrowCap            decimal.Decimal
	collateralFactor     decimal.Decimal
	liquidationThreshold decimal.Decimal
	closeFactor          decimal.Decimal
	baseRate             decimal.Decimal
	slope1               decimal.Decimal
	slope2               decimal.Decimal
	optimalUtilization   decimal.Decimal
}

func saneRiskParams() riskParams {
	return riskParams{
		reserveFactor:        decimal.NewFromFloat(0.1),
		liquidationBonus:     decimal.NewFromFloat(0.05),
		borrowCap:            decimal.Zero,
		collateralFactor:     decimal.NewFromFloat(0.75),
		liquidationThreshold: decimal.NewFromFloat(0.8),
		closeFactor:          decimal.NewFromFloat(0.5),
		baseRate:             decimal.NewFromFloat(0.025),
		slope1:               decimal.NewFromFloat(0.2),
		slope2:               decimal.NewFromFloat(3),
		optimalUtilization:   decimal.NewFromFloat(0.8),
	}
}

func validate(p riskParams) error {
	return validateRiskParams(
		p.reserveFactor,
		p.liquidationBonus,
		p.borrowCap,
		p.collateralFactor,
		p.liquidationThreshold,
		p.closeFactor,
		p.baseRate,
		p.slope1,
		p.slope2,
		p.optimalUtilization,
	)
}

func TestValidateRiskParams(t *testing.T) {
	assert.Nil(t, validate(saneRiskParams()))
}

func TestValidateRiskParamsRejects(t *testing.T) {
	cases := map[string]func(*riskParams){
		"negative reserve factor":     func(p *riskParams) { p.reserveFactor = decimal.NewFromInt(-1) },
		"reserve factor at one":       func(p *riskParams) { p.reserveFactor = decimal.New(1, 0) },
		"liquidation bonus too high":  func(p *riskParams) { p.liquidationBonus = decimal.NewFromFloat(0.95) },
		"negative borrow cap":         func(p *riskParams) { p.borrowCap = decimal.NewFromInt(-1) },
		"collateral factor too high":  func(p *riskParams) { p.collateralFactor = decimal.NewFromFloat(0.91) },
		"threshold below factor":      func(p *riskParams) { p.liquidationThreshold = decimal.NewFromFloat(0.7) },
		"threshold at one":            func(p *riskParams) { p.liquidationThreshold = decimal.New(1, 0) },
		"close factor too low":        func(p *riskParams) { p.closeFactor = decimal.NewFromFloat(0.01) },
		"close factor too high":       func(p *riskParams) { p.closeFactor = decimal.NewFromFloat(0.95) },
		"negative base rate":          func(p *riskParams) { p.baseRate = decimal.NewFromInt(-1) },
		"negative slope":              func(p *riskParams) { p.slope2 = decimal.NewFromInt(-1) },
		"zero optimal utilization":    func(p *riskParams) { p.optimalUtilization = decimal.Zero },
		"optimal utilization too big": func(p *riskParams) { p.optimalUtilization = decimal.New(1, 0) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := saneRiskParams()
			mutate(&p)
			assert.NotNil(t, validate(p))
		})
	}
}

func TestValidateRiskParamsBounds(t *testing.T) {
	// both close factor bounds are inclusive
	p := saneRiskParams()
	p.closeFactor = decimal.NewFromFloat(0.05)
	assert.Nil(t, validate(p))

	p.closeFactor = decimal.NewFromFloat(0.9)
	assert.Nil(t, validate(p))

	// a threshold equal to the collateral factor is accepted
	p = saneRiskParams()
	p.liquidationThreshold = p.collateralFactor
	assert.Nil(t, validate(p))
}
