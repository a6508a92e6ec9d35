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

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, name, type, base_id, status, created_at, updated_at`

// AssetRepo implements AssetRepository over PostgreSQL (usable with pool or tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository builds the asset persistence adapter.
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persists a new asset identity. A (name, type) collision maps to
// ErrValidation so createOrGet callers can retry with a lookup.
func (r *AssetRepo) Create(ctx context.Context, asset *entity.Asset) error {
	query := `
		INSERT INTO assets (id, name, type, base_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		asset.ID, asset.Name, asset.Type, asset.BaseID, asset.Status,
		asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: asset name/type already exists", domain.ErrValidation)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID fetches an asset by ID. Returns nil when not found.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get asset")
}

// GetByNameType resolves an asset by its (name, type) natural key.
func (r *AssetRepo) GetByNameType(ctx context.Context, name, assetType string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE name = $1 AND type = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, name, assetType), "get asset by name/type")
}

// List returns all assets ordered by name.
func (r *AssetRepo) List(ctx context.Context) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY name, type`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.BaseID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update persists name/type changes to an asset identity.
func (r *AssetRepo) Update(ctx context.Context, asset *entity.Asset) error {
	query := `
		UPDATE assets SET name = $2, type = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, asset.ID, asset.Name, asset.Type, asset.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: asset name/type already exists", domain.ErrValidation)
		}
		return fmt.Errorf("update asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", domain.ErrNotFound, asset.ID)
	}
	return nil
}

// Delete removes an asset by ID. An asset referenced by ledger events or
// assignments stays on the books, so the foreign key violation surfaces
// as a validation error.
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: asset is referenced by ledger events", domain.ErrValidation)
		}
		return fmt.Errorf("delete asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
	}
	return nil
}

// GetForUpdate fetches the asset and locks the row (SELECT FOR UPDATE).
func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get asset for update")
}

// SetStatusIf transitions status only when the current status matches
// expected. The row count tells the caller whether it won the race.
func (r *AssetRepo) SetStatusIf(ctx context.Context, id string, expected, next entity.AssetStatus) (bool, error) {
	query := `
		UPDATE assets SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query, id, expected, next)
	if err != nil {
		return false, fmt.Errorf("set asset status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *AssetRepo) scanOne(row pgx.Row, op string) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.BaseID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
