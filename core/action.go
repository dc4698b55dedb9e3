package core

// ActionType operation type
type ActionType int

const (
	// ActionTypeDefault default
	ActionTypeDefault ActionType = iota
	// ActionTypeDeposit deposit into a pool
	ActionTypeDeposit
	// ActionTypeWithdraw burn shares for the underlying
	ActionTypeWithdraw
	// ActionTypeBorrow pledge collateral and draw debt
	ActionTypeBorrow
	// ActionTypeRepay pay debt back
	ActionTypeRepay
	// ActionTypeRelease unpledge collateral
	ActionTypeRelease
	// ActionTypeQuickBorrow deposit, pledge and borrow in one shot
	ActionTypeQuickBorrow
	// ActionTypeLiquidate repay a shortfall position and seize collateral
	ActionTypeLiquidate
	// ActionTypeAddPool open a pool
	ActionTypeAddPool
	// ActionTypeUpdatePool update pool parameters
	ActionTypeUpdatePool
	// ActionTypeSetPoolStatus pause or resume a pool
	ActionTypeSetPoolStatus
	// ActionTypeProvidePrice record an oracle price point
	ActionTypeProvidePrice
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeDeposit:
		return "deposit"
	case ActionTypeWithdraw:
		return "withdraw"
	case ActionTypeBorrow:
		return "borrow"
	case ActionTypeRepay:
		return "repay"
	case ActionTypeRelease:
		return "release"
	case ActionTypeQuickBorrow:
		return "quick_borrow"
	case ActionTypeLiquidate:
		return "liquidate"
	case ActionTypeAddPool:
		return "add_pool"
	case ActionTypeUpdatePool:
		return "update_pool"
	case ActionTypeSetPoolStatus:
		return "set_pool_status"
	case ActionTypeProvidePrice:
		return "provide_price"
	default:
		return "unknown"
	}
}
