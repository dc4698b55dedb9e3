package views

import (
	"reservoir/core"

	"github.com/shopspring/decimal"
)

// Pool pool view
type Pool struct {
	core.Pool
	AvailableLiquidity decimal.Decimal `json:"available_liquidity"`
}
