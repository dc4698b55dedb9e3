package reservoir

import (
	"reservoir/core"
	"reservoir/pkg/number"

	"github.com/shopspring/decimal"
)

// DebtBalance current balance of a debt leg
// balance = debt.principal * pool.borrow_index / debt.interest_index
//
// Rounded up, interest owed never truncates in the borrower's favor.
func DebtBalance(debt *core.Debt, pool *core.Pool) decimal.Decimal {
	if !pool.BorrowIndex.IsPositive() {
		pool.BorrowIndex = decimal.New(1, 0)
	}

	if !debt.InterestIndex.IsPositive() {
		debt.InterestIndex = pool.BorrowIndex
	}

	principalTimesIndex := debt.Principal.Mul(pool.BorrowIndex)
	return number.Ceil(principalTimesIndex.Div(debt.InterestIndex), MaxPrecision)
}

// AccrueDebt sync a debt leg with the pool's borrow index, a no-op when
// the leg already sits at the current index
func AccrueDebt(debt *core.Debt, pool *core.Pool) {
	debt.Principal = DebtBalance(debt, pool)
	debt.InterestIndex = pool.BorrowIndex
}
