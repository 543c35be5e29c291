package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arav/divvy/internal/domain"
)

// GroupRepository implements usecase.GroupRepository. Membership lives in a
// group_members join table and is aggregated back into MemberIDs on read.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create creates a group and its membership rows in one transaction.
func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO groups (id, name, created_at) VALUES ($1, $2, $3)`,
		group.ID, group.Name, timeToPgTimestamptz(group.CreatedAt),
	)
	if err != nil {
		return err
	}

	for _, memberID := range group.MemberIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`,
			group.ID, memberID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a group by ID, members sorted by user ID.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT g.id, g.name, g.created_at,
		       COALESCE(array_agg(m.user_id ORDER BY m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_members m ON m.group_id = g.id
		WHERE g.id = $1
		GROUP BY g.id`, id)

	group, err := scanGroup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}

		return nil, err
	}

	return group, nil
}

// List lists groups with pagination.
func (r *GroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.name, g.created_at,
		       COALESCE(array_agg(m.user_id ORDER BY m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_members m ON m.group_id = g.id
		GROUP BY g.id
		ORDER BY g.created_at DESC, g.id
		LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group

	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}

		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var (
		group     domain.Group
		createdAt pgtype.Timestamptz
	)

	if err := row.Scan(&group.ID, &group.Name, &createdAt, &group.MemberIDs); err != nil {
		return nil, err
	}

	group.CreatedAt = createdAt.Time

	return &group, nil
}
