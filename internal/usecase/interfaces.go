package usecase

import (
	"context"
	"time"

	"github.com/arav/divvy/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// GroupRepository defines data access for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Group, error)
}

// ExpenseRepository defines data access for expenses. The ledger is
// append-only: nothing here deletes or rewrites an existing expense, and the
// only mutation is advancing a recurring template's schedule pointer.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	CreateTx(ctx context.Context, tx Transaction, expense *domain.Expense) error
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Expense, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error)
	// ListRecurring returns recurring templates, all groups when groupID is empty.
	ListRecurring(ctx context.Context, groupID string) ([]*domain.Expense, error)
	ListDueRecurring(ctx context.Context, due time.Time) ([]*domain.Expense, error)
	UpdateSchedule(ctx context.Context, tx Transaction, id string, nextExecution time.Time) error
}

// SettlementRepository defines data access for settlement snapshots.
type SettlementRepository interface {
	Create(ctx context.Context, tx Transaction, settlement *domain.Settlement) error
	// ListByGroup returns settlements newest first.
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Settlement, error)
}

// TransactionRepository defines data access for partial-payment transactions.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	UpdatePayment(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	// List returns transactions, all groups when groupID is empty, newest first.
	List(ctx context.Context, groupID string) ([]*domain.Transaction, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
