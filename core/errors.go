package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100002

	// ErrPoolNotFound no pool
	ErrPoolNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrPoolPaused pool paused
	ErrPoolPaused ErrorCode = 100102
	// ErrInsufficientLiquidity withdraw or borrow exceeds un-lent liquidity
	ErrInsufficientLiquidity ErrorCode = 100103
	// ErrPoolExists pool already exists
	ErrPoolExists ErrorCode = 100104

	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100200
	// ErrInvalidCollateral collateral asset not accepted
	ErrInvalidCollateral ErrorCode = 100201
	// ErrInsufficientCollateral not enough collateral pledged
	ErrInsufficientCollateral ErrorCode = 100202
	// ErrInsufficientBalance not enough free shares on the ledger
	ErrInsufficientBalance ErrorCode = 100203
	// ErrDebtNotFound no debt
	ErrDebtNotFound ErrorCode = 100204

	// ErrBorrowNotAllowed borrow would breach the position's borrow capacity
	ErrBorrowNotAllowed ErrorCode = 100300
	// ErrPositionHealthy position not eligible for liquidation
	ErrPositionHealthy ErrorCode = 100301
	// ErrExceedsCloseFactor repay value above the close factor limit
	ErrExceedsCloseFactor ErrorCode = 100302
	// ErrLiquidationNotImproved liquidation failed to raise the health factor
	ErrLiquidationNotImproved ErrorCode = 100303

	// ErrPriceNotFound no oracle price
	ErrPriceNotFound ErrorCode = 100400
	// ErrStalePrice oracle price outside the freshness window
	ErrStalePrice ErrorCode = 100401
	// ErrPriceDeviation oracle price rejected by the deviation guard
	ErrPriceDeviation ErrorCode = 100402
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100403
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Msg human readable message
func (e ErrorCode) Msg() string {
	switch e {
	case ErrOperationForbidden:
		return "operation forbidden"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrPoolNotFound:
		return "pool not found"
	case ErrInvalidAmount:
		return "invalid amount"
	case ErrPoolPaused:
		return "pool paused"
	case ErrInsufficientLiquidity:
		return "insufficient liquidity"
	case ErrPoolExists:
		return "pool already exists"
	case ErrPositionNotFound:
		return "position not found"
	case ErrInvalidCollateral:
		return "invalid collateral"
	case ErrInsufficientCollateral:
		return "insufficient collateral"
	case ErrInsufficientBalance:
		return "insufficient share balance"
	case ErrDebtNotFound:
		return "debt not found"
	case ErrBorrowNotAllowed:
		return "borrow not allowed"
	case ErrPositionHealthy:
		return "position not liquidatable"
	case ErrExceedsCloseFactor:
		return "repay exceeds the close factor limit"
	case ErrLiquidationNotImproved:
		return "liquidation does not improve the position"
	case ErrPriceNotFound:
		return "price not found"
	case ErrStalePrice:
		return "price too old"
	case ErrPriceDeviation:
		return "price deviates too far from the last one"
	case ErrInvalidPrice:
		return "invalid price"
	default:
		return "unknown error"
	}
}
