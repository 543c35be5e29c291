package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc   func(ctx context.Context, user *domain.User) error
	GetByIDFunc  func(ctx context.Context, id string) (*domain.User, error)
	GetByIDsFunc func(ctx context.Context, ids []string) ([]*domain.User, error)
	ListFunc     func(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user

	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var users []*domain.User
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			users = append(users, user)
		}
	}

	return users, nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var users []*domain.User
	for _, user := range m.users {
		users = append(users, user)
	}

	return users, nil
}

// MockGroupRepository is a mock implementation of GroupRepository.
type MockGroupRepository struct {
	mu     sync.RWMutex
	groups map[string]*domain.Group

	CreateFunc  func(ctx context.Context, group *domain.Group) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Group, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Group, error)
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{groups: make(map[string]*domain.Group)}
}

func (m *MockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, group)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[group.ID] = group

	return nil
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}

	return group, nil
}

func (m *MockGroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var groups []*domain.Group
	for _, group := range m.groups {
		groups = append(groups, group)
	}

	return groups, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc           func(ctx context.Context, expense *domain.Expense) error
	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error)
	ListByGroupFunc      func(ctx context.Context, groupID string) ([]*domain.Expense, error)
	ListRecurringFunc    func(ctx context.Context, groupID string) ([]*domain.Expense, error)
	ListDueRecurringFunc func(ctx context.Context, due time.Time) ([]*domain.Expense, error)
	UpdateScheduleFunc   func(ctx context.Context, tx usecase.Transaction, id string, nextExecution time.Time) error
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{expenses: make(map[string]*domain.Expense)}
}

// Add seeds an expense directly into the backing map.
func (m *MockExpenseRepository) Add(expense *domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}

	m.Add(expense)

	return nil
}

func (m *MockExpenseRepository) CreateTx(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, expense)
	}

	m.Add(expense)

	return nil
}

func (m *MockExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	expense, ok := m.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}

	return expense, nil
}

func (m *MockExpenseRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	if m.ListByGroupFunc != nil {
		return m.ListByGroupFunc(ctx, groupID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var expenses []*domain.Expense
	for _, expense := range m.expenses {
		if expense.GroupID == groupID {
			expenses = append(expenses, expense)
		}
	}

	return expenses, nil
}

func (m *MockExpenseRepository) ListRecurring(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	if m.ListRecurringFunc != nil {
		return m.ListRecurringFunc(ctx, groupID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var expenses []*domain.Expense
	for _, expense := range m.expenses {
		if expense.IsRecurring && (groupID == "" || expense.GroupID == groupID) {
			expenses = append(expenses, expense)
		}
	}

	return expenses, nil
}

func (m *MockExpenseRepository) ListDueRecurring(ctx context.Context, due time.Time) ([]*domain.Expense, error) {
	if m.ListDueRecurringFunc != nil {
		return m.ListDueRecurringFunc(ctx, due)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var expenses []*domain.Expense
	for _, expense := range m.expenses {
		if expense.IsDue(due) {
			expenses = append(expenses, expense)
		}
	}

	return expenses, nil
}

func (m *MockExpenseRepository) UpdateSchedule(ctx context.Context, tx usecase.Transaction, id string, nextExecution time.Time) error {
	if m.UpdateScheduleFunc != nil {
		return m.UpdateScheduleFunc(ctx, tx, id, nextExecution)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expense, ok := m.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}

	next := nextExecution
	expense.NextExecutionDate = &next

	return nil
}

// Count returns the number of stored expenses.
func (m *MockExpenseRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.expenses)
}

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements []*domain.Settlement

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error
	ListByGroupFunc func(ctx context.Context, groupID string) ([]*domain.Settlement, error)
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{}
}

func (m *MockSettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, settlement)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Prepend: newest first, matching the repository contract.
	m.settlements = append([]*domain.Settlement{settlement}, m.settlements...)

	return nil
}

func (m *MockSettlementRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	if m.ListByGroupFunc != nil {
		return m.ListByGroupFunc(ctx, groupID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var settlements []*domain.Settlement
	for _, settlement := range m.settlements {
		if settlement.GroupID == groupID {
			settlements = append(settlements, settlement)
		}
	}

	return settlements, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc           func(ctx context.Context, transaction *domain.Transaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	UpdatePaymentFunc    func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	ListFunc             func(ctx context.Context, groupID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[string]*domain.Transaction)}
}

// Add seeds a transaction directly into the backing map.
func (m *MockTransactionRepository) Add(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, transaction)
	}

	m.Add(transaction)

	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	transaction, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	return transaction, nil
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	transaction, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	// Callers mutate the returned value; hand out a copy so a rolled-back
	// attempt does not leak state into the store.
	clone := *transaction

	return &clone, nil
}

func (m *MockTransactionRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.UpdatePaymentFunc != nil {
		return m.UpdatePaymentFunc(ctx, tx, transaction)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[transaction.ID]; !ok {
		return domain.ErrTransactionNotFound
	}

	clone := *transaction
	m.transactions[transaction.ID] = &clone

	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, groupID string) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, groupID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var transactions []*domain.Transaction
	for _, transaction := range m.transactions {
		if groupID == "" || transaction.GroupID == groupID {
			transactions = append(transactions, transaction)
		}
	}

	return transactions, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)

	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*domain.OutboxEvent
	for _, event := range m.events {
		if !event.Published && len(events) < limit {
			events = append(events, event)
		}
	}

	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, event := range m.events {
		if event.ID == id {
			event.Published = true
			at := publishedAt
			event.PublishedAt = &at

			return nil
		}
	}

	return nil
}

// Events returns all recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*domain.OutboxEvent, len(m.events))
	copy(events, m.events)

	return events
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}

	m.Committed = true

	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}

	m.RolledBack = true

	return nil
}

// MockTxManager is a mock implementation of TransactionManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++

	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is an in-memory mock of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)

	return nil
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}

	return operation()
}
