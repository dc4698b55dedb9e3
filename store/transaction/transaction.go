package transaction

import (
	"context"
	"time"

	"reservoir/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})

		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	return tx.Update().Where("trace_id = ?", transaction.TraceID).FirstOrCreate(transaction).Error
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	var transaction core.Transaction
	err := s.db.View().Where("trace_id = ?", traceID).First(&transaction).Error
	if store.IsErrNotFound(err) {
		return &core.Transaction{}, nil
	}
	return &transaction, err
}

func (s *transactionStore) List(ctx context.Context, offset time.Time, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = 500
	}

	var transactions []*core.Transaction
	if err := s.db.View().Where("created_at >= ?", offset).Order("created_at ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string, offset time.Time, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = 500
	}

	var transactions []*core.Transaction
	if err := s.db.View().Where("user_id = ? and created_at >= ?", userID, offset).Order("created_at ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
