package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.ExpenditureRepository = (*ExpenditureRepo)(nil)

// ExpenditureRepo implements ExpenditureRepository over PostgreSQL (usable
// with pool or tx).
type ExpenditureRepo struct {
	q Querier
}

// NewExpenditureRepository builds the expenditure event adapter.
func NewExpenditureRepository(q Querier) *ExpenditureRepo {
	return &ExpenditureRepo{q: q}
}

// Create appends an expenditure event. Rows are never updated or deleted.
func (r *ExpenditureRepo) Create(ctx context.Context, e *entity.Expenditure) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO expenditures (id, asset_id, base_id, quantity, expend_type, expend_reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if e.CreatedBy != "" {
		createdBy = &e.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		e.ID, e.AssetID, e.BaseID, e.Quantity, e.ExpendType, e.ExpendReason,
		e.Date, e.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create expenditure: %w", err)
	}
	return nil
}

// List returns filtered expenditures with asset/base names, newest first.
// limit <= 0 means no limit.
func (r *ExpenditureRepo) List(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.ExpenditureWithRefs, error) {
	query := `
		SELECT e.id, e.asset_id, e.base_id, e.quantity, e.expend_type, e.expend_reason, e.date, e.created_at, e.created_by,
		       a.name, a.type, b.name
		FROM expenditures e
		JOIN assets a ON a.id = e.asset_id
		JOIN bases b ON b.id = e.base_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Start != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", pos)
		args = append(args, *f.Start)
		pos++
	}
	if f.End != nil {
		query += fmt.Sprintf(" AND e.date <= $%d", pos)
		args = append(args, *f.End)
		pos++
	}
	if f.BaseID != "" {
		query += fmt.Sprintf(" AND e.base_id = $%d", pos)
		args = append(args, f.BaseID)
		pos++
	}
	if f.EquipmentType != "" {
		query += fmt.Sprintf(" AND (a.type = $%d OR a.name = $%d)", pos, pos)
		args = append(args, f.EquipmentType)
		pos++
	}
	query += " ORDER BY e.date DESC, e.created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenditures: %w", err)
	}
	defer rows.Close()
	var list []*repository.ExpenditureWithRefs
	for rows.Next() {
		var e repository.ExpenditureWithRefs
		var createdBy *string
		if err := rows.Scan(
			&e.ID, &e.AssetID, &e.BaseID, &e.Quantity, &e.ExpendType, &e.ExpendReason,
			&e.Date, &e.CreatedAt, &createdBy,
			&e.AssetName, &e.AssetType, &e.BaseName,
		); err != nil {
			return nil, fmt.Errorf("scan expenditure: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
