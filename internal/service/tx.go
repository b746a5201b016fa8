package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// paginar normalizes page/limit query values.
func paginar(page, limit, porDefecto int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = porDefecto
	}
	return page, limit
}
