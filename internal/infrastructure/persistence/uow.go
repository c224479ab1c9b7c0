package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	appordering "github.com/shopcore/backend/internal/application/ordering"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// Postgres error codes that signal a lost race rather than a broken query
const (
	pgLockNotAvailable = "55P03"
	pgDeadlockDetected = "40P01"
	pgSerialization    = "40001"
)

// GormUnitOfWork implements the application unit of work on a GORM
// transaction. Row locks taken through the stores are held until the
// transaction ends, and a bounded lock wait keeps placements from
// queueing forever behind a stuck writer.
type GormUnitOfWork struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWork creates a new unit of work.
// lockTimeout bounds row lock waits on postgres; zero waits indefinitely.
func NewGormUnitOfWork(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWork {
	return &GormUnitOfWork{db: db, lockTimeout: lockTimeout}
}

// Do runs fn inside a single transaction. Any error rolls back every
// write made through the stores; lock timeouts and deadlocks surface as
// shared.ErrConcurrencyConflict so callers can retry.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores appordering.Stores) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u.lockTimeout > 0 && tx.Dialector.Name() == "postgres" {
			// SET LOCAL scopes the timeout to this transaction only
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(ctx, &gormStores{tx: tx})
	})
	return translateConcurrencyError(err)
}

// gormStores hands out repositories bound to one transaction
type gormStores struct {
	tx *gorm.DB
}

func (s *gormStores) Products() catalog.ProductRepository {
	return NewLockingProductRepository(s.tx)
}

func (s *gormStores) Orders() ordering.OrderRepository {
	return NewGormOrderRepository(s.tx)
}

// translateConcurrencyError maps lock and serialization failures to the
// retryable conflict error; everything else passes through unchanged
func translateConcurrencyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerialization:
			return shared.ErrConcurrencyConflict
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.ErrConcurrencyConflict
	}

	return err
}

// Ensure interface compliance
var _ appordering.UnitOfWork = (*GormUnitOfWork)(nil)
