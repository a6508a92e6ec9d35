package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.BaseRepository = (*BaseRepo)(nil)

// BaseRepo implements BaseRepository over PostgreSQL (usable with pool or tx).
type BaseRepo struct {
	q Querier
}

// NewBaseRepository builds the base persistence adapter.
func NewBaseRepository(q Querier) *BaseRepo {
	return &BaseRepo{q: q}
}

// Create persists a new base.
func (r *BaseRepo) Create(ctx context.Context, base *entity.Base) error {
	query := `
		INSERT INTO bases (id, name, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, base.ID, base.Name, base.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: base name already exists", domain.ErrValidation)
		}
		return fmt.Errorf("insert base: %w", err)
	}
	return nil
}

// GetByID fetches a base by ID. Returns nil when not found.
func (r *BaseRepo) GetByID(ctx context.Context, id string) (*entity.Base, error) {
	query := `SELECT id, name, created_at FROM bases WHERE id = $1`
	var b entity.Base
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get base: %w", err)
	}
	return &b, nil
}

// List returns all bases ordered by name.
func (r *BaseRepo) List(ctx context.Context) ([]*entity.Base, error) {
	query := `SELECT id, name, created_at FROM bases ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Base
	for rows.Next() {
		var b entity.Base
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Rename changes a base's name. The rest of the row is immutable once the
// base is referenced by ledger events.
func (r *BaseRepo) Rename(ctx context.Context, id, name string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE bases SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: base name already exists", domain.ErrValidation)
		}
		return fmt.Errorf("rename base: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: base %s", domain.ErrNotFound, id)
	}
	return nil
}

// Delete removes a base by ID. A base referenced by ledger events is
// immutable except for rename, so the foreign key violation surfaces as a
// validation error.
func (r *BaseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM bases WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: base is referenced by ledger events", domain.ErrValidation)
		}
		return fmt.Errorf("delete base: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: base %s", domain.ErrNotFound, id)
	}
	return nil
}
