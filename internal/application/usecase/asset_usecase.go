package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// AssetUseCase catalog operations over assets. Initial stock intake goes
// through the movement ledger so the registry is only ever mutated inside
// ledger transactions.
type AssetUseCase struct {
	assetRepo repository.AssetRepository
	stockRepo repository.StockRepository
	ledger    *ledger.UseCase
}

// NewAssetUseCase builds the use case.
func NewAssetUseCase(assetRepo repository.AssetRepository, stockRepo repository.StockRepository, ledgerUC *ledger.UseCase) *AssetUseCase {
	return &AssetUseCase{assetRepo: assetRepo, stockRepo: stockRepo, ledger: ledgerUC}
}

// Create registers an asset. A positive initial quantity is recorded as a
// zero-cost opening purchase at the home base; zero quantity registers
// the identity only.
func (uc *AssetUseCase) Create(ctx context.Context, in dto.CreateAssetRequest, createdBy string) (*dto.AssetResponse, error) {
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", domain.ErrValidation)
	}

	if in.Quantity > 0 {
		event, err := uc.ledger.RecordPurchase(ctx, ledger.PurchaseInput{
			BaseID:      in.BaseID,
			Name:        in.Name,
			Type:        in.Type,
			Quantity:    in.Quantity,
			CostPerUnit: decimal.Zero,
			TotalCost:   decimal.Zero,
			CreatedBy:   createdBy,
		})
		if err != nil {
			return nil, err
		}
		asset, err := uc.assetRepo.GetByID(ctx, event.AssetID)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, event.AssetID)
		}
		return uc.assetResponse(ctx, asset)
	}

	existing, err := uc.assetRepo.GetByNameType(ctx, in.Name, in.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return uc.assetResponse(ctx, existing)
	}
	now := time.Now().UTC()
	asset := &entity.Asset{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		BaseID:    in.BaseID,
		Status:    entity.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return uc.assetResponse(ctx, asset)
}

// List returns assets with their quantity summed across bases.
func (uc *AssetUseCase) List(ctx context.Context) ([]*dto.AssetResponse, error) {
	assets, err := uc.assetRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	quantities, err := uc.stockRepo.QuantitiesByAsset(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, &dto.AssetResponse{
			ID:       a.ID,
			Name:     a.Name,
			Type:     a.Type,
			Quantity: quantities[a.ID],
			Status:   string(a.Status),
			BaseID:   a.BaseID,
		})
	}
	return out, nil
}

// Update renames an asset or changes its type. Quantities are owned by
// the ledger and not editable here.
func (uc *AssetUseCase) Update(ctx context.Context, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
	}
	asset.Name = in.Name
	asset.Type = in.Type
	asset.UpdatedAt = time.Now().UTC()
	if err := uc.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return uc.assetResponse(ctx, asset)
}

// Delete removes an asset identity from the catalog.
func (uc *AssetUseCase) Delete(ctx context.Context, id string) error {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
	}
	return uc.assetRepo.Delete(ctx, id)
}

func (uc *AssetUseCase) assetResponse(ctx context.Context, a *entity.Asset) (*dto.AssetResponse, error) {
	quantities, err := uc.stockRepo.QuantitiesByAsset(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AssetResponse{
		ID:       a.ID,
		Name:     a.Name,
		Type:     a.Type,
		Quantity: quantities[a.ID],
		Status:   string(a.Status),
		BaseID:   a.BaseID,
	}, nil
}
