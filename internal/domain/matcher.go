package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is a directed obligation produced by the matcher: FromUserID
// pays ToUserID the amount.
type Transfer struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// Validate checks transfer invariants.
func (t *Transfer) Validate() error {
	if t.FromUserID == t.ToUserID {
		return ErrSameUser
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

type party struct {
	userID string
	amount decimal.Decimal
}

// MatchTransfers reduces a net balance map to a near-minimal ordered list of
// transfers using greedy largest-creditor/largest-debtor pairing. Applying
// every transfer zeroes all balances; the transfer count is heuristically
// small, not provably minimal. Parties of equal magnitude are ordered by
// user ID so the output is deterministic for a given balance map.
func MatchTransfers(balances map[string]decimal.Decimal) []Transfer {
	var creditors, debtors []party

	for userID, balance := range balances {
		switch {
		case balance.IsPositive():
			creditors = append(creditors, party{userID: userID, amount: balance})
		case balance.IsNegative():
			debtors = append(debtors, party{userID: userID, amount: balance.Neg()})
		}
	}

	sortParties(creditors)
	sortParties(debtors)

	var transfers []Transfer

	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]

		settle := decimal.Min(creditor.amount, debtor.amount).Round(2)
		if !settle.IsPositive() {
			break
		}

		transfers = append(transfers, Transfer{
			FromUserID: debtor.userID,
			ToUserID:   creditor.userID,
			Amount:     settle,
		})

		creditor.amount = creditor.amount.Sub(settle)
		debtor.amount = debtor.amount.Sub(settle)

		if debtor.amount.IsZero() {
			debtors = debtors[1:]
		}

		if creditor.amount.IsZero() {
			creditors = creditors[1:]
		}

		// Re-sort to keep the largest-vs-largest invariant. Fine at group
		// sizes; two max-heaps would drop the per-iteration sort for large n.
		sortParties(creditors)
		sortParties(debtors)
	}

	return transfers
}

func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if !parties[i].amount.Equal(parties[j].amount) {
			return parties[i].amount.GreaterThan(parties[j].amount)
		}

		return parties[i].userID < parties[j].userID
	})
}
