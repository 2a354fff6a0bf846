package repository

import (
	"context"
	"database/sql"

	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"gorm.io/gorm"
)

// TxManager runs units of work in a gorm transaction carried by the context
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) domainRepo.Transactor {
	return &TxManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise. Nested calls
// join the outer transaction.
func (tm *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}
