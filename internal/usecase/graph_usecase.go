package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// GraphNode is a group member in the debt graph.
type GraphNode struct {
	ID    string
	Label string
	Email string
}

// GraphEdge is a matched transfer annotated with display labels.
type GraphEdge struct {
	From      string
	To        string
	FromLabel string
	ToLabel   string
	Weight    decimal.Decimal
}

// DebtGraph is a render-ready view of who owes whom.
type DebtGraph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// GraphUseCase builds the debt graph view for a group.
type GraphUseCase struct {
	groupRepo GroupRepository
	userRepo  UserRepository
	balances  *BalanceUseCase
}

// NewGraphUseCase creates a new GraphUseCase.
func NewGraphUseCase(groupRepo GroupRepository, userRepo UserRepository, balances *BalanceUseCase) *GraphUseCase {
	return &GraphUseCase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		balances:  balances,
	}
}

// BuildDebtGraph resolves group members into nodes and the matcher's output
// into labeled edges. A missing group is an error here, unlike the plain
// balance view.
func (uc *GraphUseCase) BuildDebtGraph(ctx context.Context, groupID string) (*DebtGraph, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := uc.userRepo.GetByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(members))
	nodes := make([]GraphNode, 0, len(members))

	for _, member := range members {
		labels[member.ID] = member.Name
		nodes = append(nodes, GraphNode{
			ID:    member.ID,
			Label: member.Name,
			Email: member.Email,
		})
	}

	transfers, err := uc.balances.ComputeBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	edges := make([]GraphEdge, 0, len(transfers))
	for _, transfer := range transfers {
		edges = append(edges, GraphEdge{
			From:      transfer.FromUserID,
			To:        transfer.ToUserID,
			FromLabel: labelOrID(labels, transfer.FromUserID),
			ToLabel:   labelOrID(labels, transfer.ToUserID),
			Weight:    transfer.Amount,
		})
	}

	return &DebtGraph{Nodes: nodes, Edges: edges}, nil
}

func labelOrID(labels map[string]string, userID string) string {
	if label, ok := labels[userID]; ok && label != "" {
		return label
	}

	return userID
}
