package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceInterval is the cadence of a recurring expense template.
type RecurrenceInterval string

const (
	RecurrenceDaily   RecurrenceInterval = "daily"
	RecurrenceWeekly  RecurrenceInterval = "weekly"
	RecurrenceMonthly RecurrenceInterval = "monthly"
)

var validIntervals = map[RecurrenceInterval]bool{
	RecurrenceDaily:   true,
	RecurrenceWeekly:  true,
	RecurrenceMonthly: true,
}

// IsValid checks if the interval is a known cadence.
func (i RecurrenceInterval) IsValid() bool {
	return validIntervals[i]
}

// Next returns the occurrence one interval after t. Monthly advances by one
// calendar month, normalizing per time.AddDate when the target day does not
// exist (Jan 31 -> Mar 3).
func (i RecurrenceInterval) Next(t time.Time) time.Time {
	switch i {
	case RecurrenceWeekly:
		return t.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Expense records one user paying an amount on behalf of a set of
// participants, each owing an equal share. Recurring expenses additionally
// act as templates: the recurring processor clones them into one-off
// expenses each time their schedule becomes due.
type Expense struct {
	ID                 string
	GroupID            string
	PaidBy             string
	Amount             decimal.Decimal
	Participants       []string
	Description        string
	IsRecurring        bool
	RecurrenceInterval RecurrenceInterval
	NextExecutionDate  *time.Time
	SourceExpenseID    *string
	CreatedAt          time.Time
}

// Validate checks expense invariants.
func (e *Expense) Validate() error {
	if e.GroupID == "" || e.PaidBy == "" {
		return ErrMissingField
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if len(e.Participants) == 0 {
		return ErrNoParticipants
	}

	if e.IsRecurring {
		if !e.RecurrenceInterval.IsValid() {
			return ErrInvalidRecurrence
		}

		if e.NextExecutionDate == nil {
			return ErrMissingField
		}
	}

	return nil
}

// Share returns the unrounded per-participant share. Callers accumulate
// shares unrounded and round once at the end to avoid compounding error.
func (e *Expense) Share() decimal.Decimal {
	return e.Amount.Div(decimal.NewFromInt(int64(len(e.Participants))))
}

// IsDue reports whether a recurring expense should be materialized at now.
func (e *Expense) IsDue(now time.Time) bool {
	return e.IsRecurring && e.NextExecutionDate != nil && !e.NextExecutionDate.After(now)
}

// NextExecutionAfter advances the schedule pointer one interval at a time
// until it lands strictly after now. The catch-up loop yields a single
// materialization per invocation even when multiple cycles were missed.
func (e *Expense) NextExecutionAfter(now time.Time) time.Time {
	next := *e.NextExecutionDate
	for !next.After(now) {
		next = e.RecurrenceInterval.Next(next)
	}

	return next
}

// Materialize clones the template into a one-off expense tagged with the
// source ID. The clone is never itself recurring.
func (e *Expense) Materialize(id string, now time.Time) *Expense {
	description := "Recurring expense"
	if e.Description != "" {
		description = e.Description + " (recurring)"
	}

	sourceID := e.ID
	participants := make([]string, len(e.Participants))
	copy(participants, e.Participants)

	return &Expense{
		ID:              id,
		GroupID:         e.GroupID,
		PaidBy:          e.PaidBy,
		Amount:          e.Amount,
		Participants:    participants,
		Description:     description,
		IsRecurring:     false,
		SourceExpenseID: &sourceID,
		CreatedAt:       now,
	}
}
