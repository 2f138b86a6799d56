package database

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands out request-scoped handles and runs units of work.
// Repositories receive the *gorm.DB it yields, so the same repository call
// works inside and outside a transaction.
type Transactor interface {
	DB(ctx context.Context) *gorm.DB
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) DB(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

// Transaction commits when fn returns nil and rolls back otherwise.
func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
