package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func expense(payer string, amount int64, participants ...string) *Expense {
	return &Expense{
		ID:           "exp-" + payer,
		GroupID:      "group-1",
		PaidBy:       payer,
		Amount:       decimal.NewFromInt(amount),
		Participants: participants,
	}
}

func TestNetBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []*Expense
		want     map[string]string
	}{
		{
			name:     "empty ledger",
			expenses: nil,
			want:     map[string]string{},
		},
		{
			name: "single expense equal split",
			expenses: []*Expense{
				expense("alice", 90, "alice", "bob", "carol"),
			},
			want: map[string]string{
				"alice": "60",
				"bob":   "-30",
				"carol": "-30",
			},
		},
		{
			name: "sole payer and participant nets to zero and is dropped",
			expenses: []*Expense{
				expense("alice", 50, "alice"),
			},
			want: map[string]string{},
		},
		{
			name: "two expenses cancel out for middle user",
			expenses: []*Expense{
				expense("alice", 600, "alice", "bob", "carol"),
				expense("bob", 300, "alice", "bob", "carol"),
			},
			want: map[string]string{
				"alice": "300",
				"carol": "-300",
			},
		},
		{
			name: "non-terminating share rounds once per user",
			expenses: []*Expense{
				expense("alice", 100, "alice", "bob", "carol"),
			},
			want: map[string]string{
				"alice": "66.67",
				"bob":   "-33.33",
				"carol": "-33.33",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalances(tt.expenses)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d balances, got %d: %v", len(tt.want), len(got), got)
			}

			for userID, want := range tt.want {
				balance, ok := got[userID]
				if !ok {
					t.Errorf("missing balance for %s", userID)
					continue
				}

				if balance.String() != want {
					t.Errorf("balance for %s: expected %s, got %s", userID, want, balance)
				}
			}
		})
	}
}

func TestNetBalances_ZeroSum(t *testing.T) {
	expenses := []*Expense{
		expense("alice", 100, "alice", "bob", "carol"),
		expense("bob", 77, "bob", "dave"),
		expense("carol", 333, "alice", "bob", "carol", "dave", "erin", "frank"),
		expense("dave", 1, "alice", "bob", "carol"),
	}

	sum := decimal.Zero
	for _, balance := range NetBalances(expenses) {
		sum = sum.Add(balance)
	}

	// Independent per-user rounding may leave at most one cent of drift.
	if sum.Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("balances sum to %s, expected within one cent of zero", sum)
	}
}

func TestNetBalancesAfterSettlements(t *testing.T) {
	expenses := []*Expense{
		expense("alice", 600, "alice", "bob", "carol"),
	}

	settlements := []*Settlement{
		{
			ID:      "set-1",
			GroupID: "group-1",
			Entries: []Transfer{
				{FromUserID: "bob", ToUserID: "alice", Amount: decimal.NewFromInt(200)},
			},
		},
	}

	got := NetBalancesAfterSettlements(expenses, settlements)

	if balance := got["alice"]; balance.String() != "200" {
		t.Errorf("expected alice at 200 after prior settlement, got %s", balance)
	}

	if _, ok := got["bob"]; ok {
		t.Errorf("expected bob dropped after settling in full, got %s", got["bob"])
	}

	if balance := got["carol"]; balance.String() != "-200" {
		t.Errorf("expected carol at -200, got %s", balance)
	}
}

func TestNetBalancesAfterSettlements_FullySettledGroup(t *testing.T) {
	expenses := []*Expense{
		expense("alice", 600, "alice", "bob", "carol"),
	}

	settlements := []*Settlement{
		{
			ID:      "set-1",
			GroupID: "group-1",
			Entries: []Transfer{
				{FromUserID: "bob", ToUserID: "alice", Amount: decimal.NewFromInt(200)},
				{FromUserID: "carol", ToUserID: "alice", Amount: decimal.NewFromInt(200)},
			},
		},
	}

	got := NetBalancesAfterSettlements(expenses, settlements)
	if len(got) != 0 {
		t.Errorf("expected empty balance map for fully settled group, got %v", got)
	}
}
