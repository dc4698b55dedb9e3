package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "100302", ErrExceedsCloseFactor.Error())
	assert.Equal(t, "repay exceeds the close factor limit", ErrExceedsCloseFactor.Msg())
	assert.Equal(t, "unknown error", ErrorCode(999999).Msg())
}

func TestErrorCodeMsgCovered(t *testing.T) {
	codes := []ErrorCode{
		ErrOperationForbidden,
		ErrInvalidArgument,
		ErrPoolNotFound,
		ErrInvalidAmount,
		ErrPoolPaused,
		ErrInsufficientLiquidity,
		ErrPoolExists,
		ErrPositionNotFound,
		ErrInvalidCollateral,
		ErrInsufficientCollateral,
		ErrInsufficientBalance,
		ErrDebtNotFound,
		ErrBorrowNotAllowed,
		ErrPositionHealthy,
		ErrExceedsCloseFactor,
		ErrLiquidationNotImproved,
		ErrPriceNotFound,
		ErrStalePrice,
		ErrPriceDeviation,
		ErrInvalidPrice,
	}

	for _, code := range codes {
		assert.NotEqual(t, "unknown error", code.Msg(), code.String())
	}
}
