package repository

import (
	"context"

	"github.com/jhoicas/armory-api/internal/domain/entity"
)

// Raw rows joined with asset/base names, produced by the store so list
// endpoints and the dashboard can render populated references without a
// second round trip.

type TransferWithRefs struct {
	entity.Transfer
	AssetName    string
	AssetType    string
	FromBaseName string
	ToBaseName   string
}

type PurchaseWithRefs struct {
	entity.Purchase
	AssetName string
	AssetType string
	BaseName  string
}

type ExpenditureWithRefs struct {
	entity.Expenditure
	AssetName string
	AssetType string
	BaseName  string
}

// PurchaseRepository appends and lists purchase events.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	List(ctx context.Context, f EventFilter, limit int) ([]*PurchaseWithRefs, error)
}

// TransferRepository appends and lists transfer events.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	List(ctx context.Context, f EventFilter, limit int) ([]*TransferWithRefs, error)
}

// ExpenditureRepository appends and lists expenditure events.
type ExpenditureRepository interface {
	Create(ctx context.Context, e *entity.Expenditure) error
	List(ctx context.Context, f EventFilter, limit int) ([]*ExpenditureWithRefs, error)
}
