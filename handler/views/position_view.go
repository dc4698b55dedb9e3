package views

import (
	"reservoir/core"

	"github.com/shopspring/decimal"
)

// Debt debt leg view, balance carries the accrued interest
type Debt struct {
	core.Debt
	Balance decimal.Decimal `json:"balance"`
}

// Position position view
type Position struct {
	core.Position
	Collaterals []*core.Collateral `json:"collaterals"`
	Debts       []*Debt            `json:"debts"`
}
