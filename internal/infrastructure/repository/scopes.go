package repository

import (
	"context"
	"strings"

	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

// withTx puts a transaction into the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction carried by ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// ForUpdate locks the selected rows when ctx carries a transaction
func ForUpdate(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if _, ok := ctx.Value(txKey{}).(*gorm.DB); !ok {
			return db
		}
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// ActiveScope filters by is_active when a value is given
func ActiveScope(isActive *bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if isActive == nil {
			return db
		}
		return db.Where("is_active = ?", *isActive)
	}
}

// SearchScope matches search case-insensitively against any of the columns
func SearchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" || len(columns) == 0 {
			return db
		}
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = col + " ILIKE ?"
			args[i] = "%" + search + "%"
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// Paginate applies offset and limit for page-based listings
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
