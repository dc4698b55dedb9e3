package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransaction(t *testing.T) {
	extra := NewTransactionExtra()
	extra.Put(TransactionKeyAssetID, "asset")
	extra.Put(TransactionKeyShares, decimal.NewFromFloat(1.5))

	transaction := BuildTransaction("user", "trace", ActionTypeDeposit, "asset", decimal.NewFromInt(100), extra)

	assert.Equal(t, "user", transaction.UserID)
	assert.Equal(t, "trace", transaction.TraceID)
	assert.Equal(t, ActionTypeDeposit, transaction.Action)
	assert.Equal(t, TransactionStatusComplete, transaction.Status)
	assert.Equal(t, "100", transaction.Amount.String())

	var data map[string]interface{}
	require.Nil(t, json.Unmarshal(transaction.Data, &data))
	assert.Equal(t, "asset", data[TransactionKeyAssetID])
	assert.Equal(t, "1.5", data[TransactionKeyShares])
}

func TestBuildTransactionWithoutExtra(t *testing.T) {
	transaction := BuildTransaction("user", "trace", ActionTypeRepay, "asset", decimal.Zero, nil)
	assert.Equal(t, "{}", string(transaction.Data))
}
