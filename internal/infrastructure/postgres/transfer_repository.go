package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implements TransferRepository over PostgreSQL (usable with
// pool or tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository builds the transfer event adapter.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create appends a transfer event. One row carries both sides of the
// move; readers derive the paired minus/plus from it.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, asset_id, from_base_id, to_base_id, quantity, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if t.CreatedBy != "" {
		createdBy = &t.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		t.ID, t.AssetID, t.FromBaseID, t.ToBaseID, t.Quantity,
		t.Date, t.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// List returns filtered transfers with asset/base names, newest first.
// A base filter matches either side of the move. limit <= 0 means no limit.
func (r *TransferRepo) List(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.TransferWithRefs, error) {
	query := `
		SELECT t.id, t.asset_id, t.from_base_id, t.to_base_id, t.quantity, t.date, t.created_at, t.created_by,
		       a.name, a.type, fb.name, tb.name
		FROM transfers t
		JOIN assets a ON a.id = t.asset_id
		JOIN bases fb ON fb.id = t.from_base_id
		JOIN bases tb ON tb.id = t.to_base_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Start != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", pos)
		args = append(args, *f.Start)
		pos++
	}
	if f.End != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", pos)
		args = append(args, *f.End)
		pos++
	}
	if f.BaseID != "" {
		query += fmt.Sprintf(" AND (t.from_base_id = $%d OR t.to_base_id = $%d)", pos, pos)
		args = append(args, f.BaseID)
		pos++
	}
	if f.EquipmentType != "" {
		query += fmt.Sprintf(" AND (a.type = $%d OR a.name = $%d)", pos, pos)
		args = append(args, f.EquipmentType)
		pos++
	}
	query += " ORDER BY t.date DESC, t.created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*repository.TransferWithRefs
	for rows.Next() {
		var t repository.TransferWithRefs
		var createdBy *string
		if err := rows.Scan(
			&t.ID, &t.AssetID, &t.FromBaseID, &t.ToBaseID, &t.Quantity,
			&t.Date, &t.CreatedAt, &createdBy,
			&t.AssetName, &t.AssetType, &t.FromBaseName, &t.ToBaseName,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
