package domain

import "time"

// Event types
const (
	EventTypeGroupSettled        = "group.settled"
	EventTypeExpenseMaterialized = "expense.materialized"
	EventTypePaymentRecorded     = "payment.recorded"
)

// Aggregate types
const (
	AggregateTypeSettlement  = "settlement"
	AggregateTypeExpense     = "expense"
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
