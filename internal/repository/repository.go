package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Repository is the persistence gateway. It holds no business rules.
type Repository struct {
	db *gorm.DB
}

// New creates a new Repository over the given connection
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying connection for migrations and health checks.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn against a repository bound to a single transaction.
// Returning an error from fn rolls everything back.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Ping checks that the database answers.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Page is an offset/limit window.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the window: negative skip becomes 0, a missing or
// oversized limit becomes MaxLimit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
