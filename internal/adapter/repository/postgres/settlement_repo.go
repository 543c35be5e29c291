package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arav/divvy/internal/domain"
	"github.com/arav/divvy/internal/usecase"
)

// SettlementRepository implements usecase.SettlementRepository. A snapshot is
// one settlements row plus ordered settlement_entries rows; neither is ever
// updated after the insert.
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

// Create inserts a settlement snapshot within an existing transaction.
func (r *SettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO settlements (id, group_id, settled_at) VALUES ($1, $2, $3)`,
		settlement.ID, settlement.GroupID, timeToPgTimestamptz(settlement.SettledAt),
	)
	if err != nil {
		return err
	}

	for position, entry := range settlement.Entries {
		_, err = pgxTx.Exec(ctx, `
			INSERT INTO settlement_entries (settlement_id, position, from_user_id, to_user_id, amount)
			VALUES ($1, $2, $3, $4, $5)`,
			settlement.ID, position, entry.FromUserID, entry.ToUserID, decimalToNumeric(entry.Amount),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListByGroup returns settlements newest first, entries in matcher order.
func (r *SettlementRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.group_id, s.settled_at, e.from_user_id, e.to_user_id, e.amount
		FROM settlements s
		JOIN settlement_entries e ON e.settlement_id = s.id
		WHERE s.group_id = $1
		ORDER BY s.settled_at DESC, s.id DESC, e.position`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		settlements []*domain.Settlement
		current     *domain.Settlement
	)

	for rows.Next() {
		var (
			id        string
			gid       string
			settledAt pgtype.Timestamptz
			entry     domain.Transfer
			amount    pgtype.Numeric
		)

		if err := rows.Scan(&id, &gid, &settledAt, &entry.FromUserID, &entry.ToUserID, &amount); err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)

		if current == nil || current.ID != id {
			current = &domain.Settlement{
				ID:        id,
				GroupID:   gid,
				SettledAt: settledAt.Time,
			}
			settlements = append(settlements, current)
		}

		current.Entries = append(current.Entries, entry)
	}

	return settlements, rows.Err()
}
