package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	// TransactionKeyAssetID asset id
	TransactionKeyAssetID = "asset_id"
	// TransactionKeyAmount amount
	TransactionKeyAmount = "amount"
	// TransactionKeyShares shares
	TransactionKeyShares = "shares"
	// TransactionKeyExchangeRate exchange rate
	TransactionKeyExchangeRate = "exchange_rate"
	// TransactionKeyCollateralAssetID collateral asset id
	TransactionKeyCollateralAssetID = "collateral_asset_id"
	// TransactionKeyCollateralShares collateral shares
	TransactionKeyCollateralShares = "collateral_shares"
	// TransactionKeyRepaidAmount repaid amount
	TransactionKeyRepaidAmount = "repaid_amount"
	// TransactionKeyExcessReturned excess returned to the caller
	TransactionKeyExcessReturned = "excess_returned"
	// TransactionKeySeizedShares seized shares
	TransactionKeySeizedShares = "seized_shares"
	// TransactionKeyHealthFactor health factor
	TransactionKeyHealthFactor = "health_factor"
	// TransactionKeyPositionID position id
	TransactionKeyPositionID = "position_id"
	// TransactionKeyErrorCode error code
	TransactionKeyErrorCode = "error_code"
)

// ExtraDataFormatter formats journal payloads
type ExtraDataFormatter interface {
	Format() []byte
}

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// TransactionStatus journal row status
type TransactionStatus int

const (
	// TransactionStatusInit init
	TransactionStatusInit TransactionStatus = iota
	// TransactionStatusComplete complete
	TransactionStatusComplete
	// TransactionStatusAbort abort
	TransactionStatusAbort
)

// Transaction operation journal row.
//
// TraceID is the caller supplied idempotency key, replaying a trace id
// returns the recorded row without applying the operation again.
type Transaction struct {
	ID        int64             `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Action    ActionType        `json:"action,omitempty"`
	TraceID   string            `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	UserID    string            `sql:"size:36;index:idx_transactions_user_id" json:"user_id,omitempty"`
	AssetID   string            `sql:"size:36;index:idx_transactions_asset_id" json:"asset_id,omitempty"`
	Amount    decimal.Decimal   `sql:"type:decimal(32,8)" json:"amount,omitempty"`
	Data      types.JSONText    `sql:"type:TEXT" json:"data,omitempty"`
	Status    TransactionStatus `sql:"default:0" json:"status,omitempty"`
	CreatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// SetExtraData set journal payload
func (t *Transaction) SetExtraData(extra ExtraDataFormatter) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// BuildTransaction build a journal row
func BuildTransaction(userID, traceID string, action ActionType, assetID string, amount decimal.Decimal, extra ExtraDataFormatter) *Transaction {
	t := &Transaction{
		UserID:  userID,
		TraceID: traceID,
		Action:  action,
		AssetID: assetID,
		Amount:  amount,
		Status:  TransactionStatusComplete,
	}
	t.SetExtraData(extra)

	return t
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, offset time.Time, limit int) ([]*Transaction, error)
	ListByUser(ctx context.Context, userID string, offset time.Time, limit int) ([]*Transaction, error)
}
