package domain

import "github.com/shopspring/decimal"

// NetBalances reduces a group's expense snapshot into a signed net balance
// per user: positive means the user is owed money, negative means the user
// owes. The payer is credited the full amount and every participant is
// debited an equal share. Accumulation is unrounded; each user's net is
// rounded to two decimals once at the end, and exact zeros are dropped.
func NetBalances(expenses []*Expense) map[string]decimal.Decimal {
	return roundBalances(accumulate(expenses))
}

// NetBalancesAfterSettlements computes settlement-aware balances: the raw
// net balances adjusted by every prior settlement entry. A recorded transfer
// from -> to of amount X raises from's balance by X and lowers to's by X,
// reflecting that the debt was already cleared. The plain NetBalances view
// intentionally ignores settlement history; keep both.
func NetBalancesAfterSettlements(expenses []*Expense, settlements []*Settlement) map[string]decimal.Decimal {
	totals := accumulate(expenses)

	for _, s := range settlements {
		for _, entry := range s.Entries {
			totals[entry.FromUserID] = totals[entry.FromUserID].Add(entry.Amount)
			totals[entry.ToUserID] = totals[entry.ToUserID].Sub(entry.Amount)
		}
	}

	return roundBalances(totals)
}

func accumulate(expenses []*Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		share := e.Share()
		totals[e.PaidBy] = totals[e.PaidBy].Add(e.Amount)

		for _, participant := range e.Participants {
			totals[participant] = totals[participant].Sub(share)
		}
	}

	return totals
}

func roundBalances(totals map[string]decimal.Decimal) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(totals))

	for userID, total := range totals {
		rounded := total.Round(2)
		if !rounded.IsZero() {
			balances[userID] = rounded
		}
	}

	return balances
}
