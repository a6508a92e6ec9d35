package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implements StockRepository over PostgreSQL (usable with pool or tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the stock adapter. Pass pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get returns the current quantity of an asset at a base. A missing row
// reads as quantity zero.
func (r *StockRepo) Get(ctx context.Context, assetID, baseID string) (*entity.Stock, error) {
	query := `
		SELECT asset_id, base_id, quantity, updated_at
		FROM stocks WHERE asset_id = $1 AND base_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, assetID, baseID).Scan(
		&s.AssetID, &s.BaseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{AssetID: assetID, BaseID: baseID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate returns the stock and locks the row (SELECT FOR UPDATE).
// A missing row reads as quantity zero and is created by Upsert.
func (r *StockRepo) GetForUpdate(ctx context.Context, assetID, baseID string) (*entity.Stock, error) {
	query := `
		SELECT asset_id, base_id, quantity, updated_at
		FROM stocks WHERE asset_id = $1 AND base_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, assetID, baseID).Scan(
		&s.AssetID, &s.BaseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{AssetID: assetID, BaseID: baseID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserts or updates the quantity for (asset, base). The table's
// CHECK (quantity >= 0) is the last line of defense for non-negativity.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (asset_id, base_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (asset_id, base_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.AssetID, stock.BaseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// QuantitiesByAsset sums quantities across bases per asset.
func (r *StockRepo) QuantitiesByAsset(ctx context.Context) (map[string]int64, error) {
	query := `SELECT asset_id, COALESCE(SUM(quantity), 0) FROM stocks GROUP BY asset_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum stock quantities: %w", err)
	}
	defer rows.Close()
	totals := make(map[string]int64)
	for rows.Next() {
		var assetID string
		var qty int64
		if err := rows.Scan(&assetID, &qty); err != nil {
			return nil, fmt.Errorf("scan stock sum: %w", err)
		}
		totals[assetID] = qty
	}
	return totals, rows.Err()
}
