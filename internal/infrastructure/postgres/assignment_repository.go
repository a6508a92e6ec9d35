package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implements AssignmentRepository over PostgreSQL (usable
// with pool or tx).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository builds the assignment adapter.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create persists a new assignment.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO assignments (id, asset_id, assigned_to, status, assigned_at, expended_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, a.ID, a.AssetID, a.AssignedTo, a.Status, a.AssignedAt, a.ExpendedAt)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// GetByID fetches an assignment by ID. Returns nil when not found.
func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	query := `
		SELECT id, asset_id, assigned_to, status, assigned_at, expended_at
		FROM assignments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get assignment")
}

// GetForUpdate fetches the assignment and locks the row for a state
// transition.
func (r *AssignmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	query := `
		SELECT id, asset_id, assigned_to, status, assigned_at, expended_at
		FROM assignments WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get assignment for update")
}

// Update persists a status transition.
func (r *AssignmentRepo) Update(ctx context.Context, a *entity.Assignment) error {
	query := `
		UPDATE assignments SET status = $2, expended_at = $3
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.Status, a.ExpendedAt)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", a.ID)
	}
	return nil
}

// List returns assignments with asset names, optionally filtered by
// status, ordered by assignment time ascending.
func (r *AssignmentRepo) List(ctx context.Context, status entity.AssignmentStatus) ([]*repository.AssignmentWithRefs, error) {
	query := `
		SELECT s.id, s.asset_id, s.assigned_to, s.status, s.assigned_at, s.expended_at,
		       a.name, a.type
		FROM assignments s
		JOIN assets a ON a.id = s.asset_id
		WHERE ($1::text = '' OR s.status = $1)
		ORDER BY s.assigned_at ASC`
	rows, err := r.q.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*repository.AssignmentWithRefs
	for rows.Next() {
		var a repository.AssignmentWithRefs
		if err := rows.Scan(
			&a.ID, &a.AssetID, &a.AssignedTo, &a.Status, &a.AssignedAt, &a.ExpendedAt,
			&a.AssetName, &a.AssetType,
		); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AssignmentRepo) scanOne(row pgx.Row, op string) (*entity.Assignment, error) {
	var a entity.Assignment
	err := row.Scan(&a.ID, &a.AssetID, &a.AssignedTo, &a.Status, &a.AssignedAt, &a.ExpendedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
