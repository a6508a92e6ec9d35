package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implements PurchaseRepository over PostgreSQL (usable with
// pool or tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the purchase event adapter.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create appends a purchase event. Rows are never updated or deleted.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchases (id, asset_id, base_id, quantity, cost_per_unit, total_cost, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if p.CreatedBy != "" {
		createdBy = &p.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AssetID, p.BaseID, p.Quantity, p.CostPerUnit, p.TotalCost,
		p.Date, p.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// List returns filtered purchases with asset/base names, newest first.
// limit <= 0 means no limit.
func (r *PurchaseRepo) List(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.PurchaseWithRefs, error) {
	query := `
		SELECT p.id, p.asset_id, p.base_id, p.quantity, p.cost_per_unit, p.total_cost, p.date, p.created_at, p.created_by,
		       a.name, a.type, b.name
		FROM purchases p
		JOIN assets a ON a.id = p.asset_id
		JOIN bases b ON b.id = p.base_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Start != nil {
		query += fmt.Sprintf(" AND p.date >= $%d", pos)
		args = append(args, *f.Start)
		pos++
	}
	if f.End != nil {
		query += fmt.Sprintf(" AND p.date <= $%d", pos)
		args = append(args, *f.End)
		pos++
	}
	if f.BaseID != "" {
		query += fmt.Sprintf(" AND p.base_id = $%d", pos)
		args = append(args, f.BaseID)
		pos++
	}
	if f.EquipmentType != "" {
		query += fmt.Sprintf(" AND (a.type = $%d OR a.name = $%d)", pos, pos)
		args = append(args, f.EquipmentType)
		pos++
	}
	query += " ORDER BY p.date DESC, p.created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*repository.PurchaseWithRefs
	for rows.Next() {
		var p repository.PurchaseWithRefs
		var createdBy *string
		if err := rows.Scan(
			&p.ID, &p.AssetID, &p.BaseID, &p.Quantity, &p.CostPerUnit, &p.TotalCost,
			&p.Date, &p.CreatedAt, &createdBy,
			&p.AssetName, &p.AssetType, &p.BaseName,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if createdBy != nil {
			p.CreatedBy = *createdBy
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
