package repository

import (
	"context"

	"github.com/jhoicas/armory-api/internal/domain/entity"
)

// AssetRepository is the persistence port for asset identities.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	// GetByNameType resolves the idempotent lookup key used by createOrGet.
	GetByNameType(ctx context.Context, name, assetType string) (*entity.Asset, error)
	List(ctx context.Context) ([]*entity.Asset, error)
	Update(ctx context.Context, asset *entity.Asset) error
	Delete(ctx context.Context, id string) error

	// GetForUpdate locks the asset row so status transitions serialize
	// against each other and against quantity-adjusting operations.
	GetForUpdate(ctx context.Context, id string) (*entity.Asset, error)
	// SetStatusIf transitions status only when the current status matches
	// expected; reports whether the row changed. The losing side of a race
	// observes changed == false.
	SetStatusIf(ctx context.Context, id string, expected, next entity.AssetStatus) (bool, error)
}

// StockRepository is the port for per-base quantities, used inside
// transactions to keep the registry consistent with the ledger.
type StockRepository interface {
	Get(ctx context.Context, assetID, baseID string) (*entity.Stock, error)
	// GetForUpdate locks the stock row (SELECT FOR UPDATE). Callers that
	// touch two rows must lock them in ascending base id order.
	GetForUpdate(ctx context.Context, assetID, baseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	// QuantitiesByAsset returns the summed quantity across bases per asset.
	QuantitiesByAsset(ctx context.Context) (map[string]int64, error)
}
