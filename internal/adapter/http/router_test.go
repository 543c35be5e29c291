package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/arav/divvy/internal/adapter/http/handler"
	apimiddleware "github.com/arav/divvy/internal/adapter/http/middleware"
	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"group_id":"group-1","from_user_id":"bob","to_user_id":"alice","amount":"25.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users/",
		"POST /api/v1/groups/",
		"GET /api/v1/groups/{id}",
		"GET /api/v1/groups/{id}/balances",
		"POST /api/v1/groups/{id}/settle",
		"GET /api/v1/groups/{id}/settlements",
		"GET /api/v1/groups/{id}/metrics",
		"GET /api/v1/groups/{id}/graph",
		"POST /api/v1/expenses",
		"POST /api/v1/recurring/trigger",
		"POST /api/v1/transactions/",
		"POST /api/v1/transactions/{id}/payments",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		UserHandler:        handler.NewUserHandler(&stubUserService{}),
		GroupHandler:       handler.NewGroupHandler(&stubGroupService{}),
		ExpenseHandler:     handler.NewExpenseHandler(&stubExpenseService{}, &stubRecurringService{}),
		BalanceHandler:     handler.NewBalanceHandler(&stubBalanceService{}, &stubMetricsService{}, &stubGraphService{}),
		SettlementHandler:  handler.NewSettlementHandler(&stubSettlementService{}),
		TransactionHandler: handler.NewTransactionHandler(&stubPaymentService{}),
		HealthHandler:      &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user"}, nil
}

func (stubUserService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

type stubGroupService struct{}

func (stubGroupService) CreateGroup(ctx context.Context, input usecase.CreateGroupInput) (*domain.Group, error) {
	return &domain.Group{ID: "group"}, nil
}

func (stubGroupService) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return &domain.Group{ID: id}, nil
}

func (stubGroupService) ListGroups(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	return []*domain.Group{}, nil
}

type stubExpenseService struct{}

func (stubExpenseService) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error) {
	return &domain.Expense{ID: "expense"}, nil
}

func (stubExpenseService) ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	return []*domain.Expense{}, nil
}

type stubRecurringService struct{}

func (stubRecurringService) ProcessDue(ctx context.Context, now time.Time) ([]*domain.Expense, error) {
	return []*domain.Expense{}, nil
}

func (stubRecurringService) ListRecurring(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	return []*domain.Expense{}, nil
}

type stubBalanceService struct{}

func (stubBalanceService) ComputeBalances(ctx context.Context, groupID string) ([]domain.Transfer, error) {
	return []domain.Transfer{}, nil
}

type stubMetricsService struct{}

func (stubMetricsService) Reduction(ctx context.Context, groupID string) (*usecase.ReductionMetrics, error) {
	return &usecase.ReductionMetrics{}, nil
}

type stubGraphService struct{}

func (stubGraphService) BuildDebtGraph(ctx context.Context, groupID string) (*usecase.DebtGraph, error) {
	return &usecase.DebtGraph{}, nil
}

type stubSettlementService struct{}

func (stubSettlementService) SettleGroup(ctx context.Context, groupID string) (*domain.Settlement, error) {
	return &domain.Settlement{ID: "settlement", GroupID: groupID}, nil
}

func (stubSettlementService) History(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	return []*domain.Settlement{}, nil
}

type stubPaymentService struct{}

func (stubPaymentService) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn"}, nil
}

func (stubPaymentService) MakePayment(ctx context.Context, transactionID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

func (stubPaymentService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (stubPaymentService) ListTransactions(ctx context.Context, groupID string) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
