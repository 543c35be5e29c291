package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
	"github.com/arav/divvy/internal/usecase/mocks"
)

func TestGraphUseCase_BuildDebtGraph(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()

	_ = userRepo.Create(context.Background(), &domain.User{ID: "alice", Name: "Alice", Email: "alice@example.com"})
	_ = userRepo.Create(context.Background(), &domain.User{ID: "bob", Name: "Bob", Email: "bob@example.com"})
	_ = userRepo.Create(context.Background(), &domain.User{ID: "carol", Name: "Carol", Email: "carol@example.com"})
	_ = groupRepo.Create(context.Background(), &domain.Group{
		ID:        "group-1",
		Name:      "Trip",
		MemberIDs: []string{"alice", "bob", "carol"},
	})

	expenseRepo.Add(groupExpense("exp-1", "alice", 600, "alice", "bob", "carol"))

	uc := usecase.NewGraphUseCase(groupRepo, userRepo, usecase.NewBalanceUseCase(expenseRepo, nil, nil))

	graph, err := uc.BuildDebtGraph(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("BuildDebtGraph: %v", err)
	}

	if len(graph.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(graph.Nodes))
	}
	if len(graph.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(graph.Edges))
	}

	for _, edge := range graph.Edges {
		if edge.To != "alice" {
			t.Errorf("edge %s -> %s: all debts should flow to alice", edge.From, edge.To)
		}
		if edge.ToLabel != "Alice" {
			t.Errorf("edge to alice should carry label Alice, got %q", edge.ToLabel)
		}
		if !edge.Weight.IsPositive() {
			t.Errorf("edge weight must be positive, got %s", edge.Weight)
		}
	}
}

func TestGraphUseCase_BuildDebtGraph_LabelFallsBackToID(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	groupRepo := mocks.NewMockGroupRepository()
	expenseRepo := mocks.NewMockExpenseRepository()

	// bob never registered; edges touching him fall back to the raw ID.
	_ = userRepo.Create(context.Background(), &domain.User{ID: "alice", Name: "Alice", Email: "alice@example.com"})
	_ = groupRepo.Create(context.Background(), &domain.Group{
		ID:        "group-1",
		Name:      "Trip",
		MemberIDs: []string{"alice", "bob"},
	})

	expenseRepo.Add(groupExpense("exp-1", "alice", 100, "alice", "bob"))

	uc := usecase.NewGraphUseCase(groupRepo, userRepo, usecase.NewBalanceUseCase(expenseRepo, nil, nil))

	graph, err := uc.BuildDebtGraph(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("BuildDebtGraph: %v", err)
	}

	if len(graph.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(graph.Edges))
	}
	if graph.Edges[0].FromLabel != "bob" {
		t.Errorf("expected fallback label bob, got %q", graph.Edges[0].FromLabel)
	}
}

func TestGraphUseCase_BuildDebtGraph_GroupNotFound(t *testing.T) {
	uc := usecase.NewGraphUseCase(
		mocks.NewMockGroupRepository(),
		mocks.NewMockUserRepository(),
		usecase.NewBalanceUseCase(mocks.NewMockExpenseRepository(), nil, nil),
	)

	_, err := uc.BuildDebtGraph(context.Background(), "no-such-group")
	if !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
