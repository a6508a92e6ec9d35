// Package ledger implements the movement ledger: transactional recording
// of purchase, transfer and expenditure events against the asset registry.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// UseCase records movement events. Each call opens one transaction scoped
// to the base(s) it touches; validation errors are rejected before any
// mutation.
type UseCase struct {
	txRunner  TxRunner
	baseRepo  repository.BaseRepository
	assetRepo repository.AssetRepository
}

// New builds the ledger use case.
func New(txRunner TxRunner, baseRepo repository.BaseRepository, assetRepo repository.AssetRepository) *UseCase {
	return &UseCase{txRunner: txRunner, baseRepo: baseRepo, assetRepo: assetRepo}
}

// PurchaseInput input for RecordPurchase. AssetID references an existing
// asset; otherwise (Name, Type) resolves or creates one at the base.
type PurchaseInput struct {
	BaseID      string
	AssetID     string
	Name        string
	Type        string
	Quantity    int64
	CostPerUnit decimal.Decimal
	TotalCost   decimal.Decimal
	Date        time.Time
	CreatedBy   string
}

// TransferInput input for RecordTransfer.
type TransferInput struct {
	AssetID    string
	FromBaseID string
	ToBaseID   string
	Quantity   int64
	CreatedBy  string
}

// ExpenditureInput input for RecordExpenditure.
type ExpenditureInput struct {
	AssetID      string
	BaseID       string
	Quantity     int64
	ExpendType   entity.ExpendType
	ExpendReason string
	CreatedBy    string
}

// RecordPurchase validates totalCost == quantity × costPerUnit, resolves
// or creates the asset at the target base, increments its stock and
// appends the event. Returns the populated event.
func (uc *UseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*entity.Purchase, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if in.CostPerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: costPerUnit must be non-negative", domain.ErrValidation)
	}
	expected := in.CostPerUnit.Mul(decimal.NewFromInt(in.Quantity))
	if !in.TotalCost.Equal(expected) {
		return nil, fmt.Errorf("%w: totalCost %s does not match quantity × costPerUnit %s",
			domain.ErrValidation, in.TotalCost, expected)
	}
	if in.AssetID == "" && (in.Name == "" || in.Type == "") {
		return nil, fmt.Errorf("%w: assetId or (name, type) required", domain.ErrValidation)
	}

	base, err := uc.baseRepo.GetByID(ctx, in.BaseID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("%w: base %s", domain.ErrNotFound, in.BaseID)
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	event := &entity.Purchase{
		ID:          uuid.New().String(),
		BaseID:      in.BaseID,
		Quantity:    in.Quantity,
		CostPerUnit: in.CostPerUnit,
		TotalCost:   in.TotalCost,
		Date:        date,
		CreatedAt:   now,
		CreatedBy:   in.CreatedBy,
	}

	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		stocks repository.StockRepository,
		purchases repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenditureRepository,
	) error {
		asset, err := uc.resolveAsset(ctx, assets, in, now)
		if err != nil {
			return err
		}
		event.AssetID = asset.ID

		stock, err := stocks.GetForUpdate(ctx, asset.ID, in.BaseID)
		if err != nil {
			return err
		}
		stock.Quantity += in.Quantity
		stock.UpdatedAt = now
		if err := stocks.Upsert(ctx, stock); err != nil {
			return err
		}
		return purchases.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// resolveAsset locks an existing asset row or creates a new one at the
// base (idempotent lookup-or-create keyed name+type).
func (uc *UseCase) resolveAsset(ctx context.Context, assets repository.AssetRepository, in PurchaseInput, now time.Time) (*entity.Asset, error) {
	if in.AssetID != "" {
		return lockAsset(ctx, assets, in.AssetID)
	}
	if existing, err := assets.GetByNameType(ctx, in.Name, in.Type); err != nil {
		return nil, err
	} else if existing != nil {
		return lockAsset(ctx, assets, existing.ID)
	}
	asset := &entity.Asset{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		BaseID:    in.BaseID,
		Status:    entity.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := assets.Create(ctx, asset); err != nil {
		// Lost a create race on the (name, type) key: take the winner.
		if errors.Is(err, domain.ErrValidation) {
			if existing, lookupErr := assets.GetByNameType(ctx, in.Name, in.Type); lookupErr == nil && existing != nil {
				return lockAsset(ctx, assets, existing.ID)
			}
		}
		return nil, err
	}
	return asset, nil
}

func lockAsset(ctx context.Context, assets repository.AssetRepository, id string) (*entity.Asset, error) {
	asset, err := assets.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
	}
	return asset, nil
}

// RecordTransfer atomically decrements the source base and increments the
// destination base for the same asset. Stock rows are locked in ascending
// base id order so two opposite transfers between the same pair cannot
// deadlock.
func (uc *UseCase) RecordTransfer(ctx context.Context, in TransferInput) (*entity.Transfer, error) {
	if in.FromBaseID == in.ToBaseID {
		return nil, fmt.Errorf("%w: source and destination base must differ", domain.ErrValidation)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	for _, baseID := range []string{in.FromBaseID, in.ToBaseID} {
		base, err := uc.baseRepo.GetByID(ctx, baseID)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, fmt.Errorf("%w: base %s", domain.ErrNotFound, baseID)
		}
	}
	asset, err := uc.assetRepo.GetByID(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, in.AssetID)
	}

	now := time.Now().UTC()
	event := &entity.Transfer{
		ID:         uuid.New().String(),
		AssetID:    in.AssetID,
		FromBaseID: in.FromBaseID,
		ToBaseID:   in.ToBaseID,
		Quantity:   in.Quantity,
		Date:       now,
		CreatedAt:  now,
		CreatedBy:  in.CreatedBy,
	}

	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		stocks repository.StockRepository,
		_ repository.PurchaseRepository,
		transfers repository.TransferRepository,
		_ repository.ExpenditureRepository,
	) error {
		// Serialize against assignment transitions on the same asset.
		if _, err := assets.GetForUpdate(ctx, in.AssetID); err != nil {
			return err
		}

		ordered := []string{in.FromBaseID, in.ToBaseID}
		sort.Strings(ordered)
		locked := make(map[string]*entity.Stock, 2)
		for _, baseID := range ordered {
			stock, err := stocks.GetForUpdate(ctx, in.AssetID, baseID)
			if err != nil {
				return err
			}
			locked[baseID] = stock
		}

		source, dest := locked[in.FromBaseID], locked[in.ToBaseID]
		if source.Quantity < in.Quantity {
			return fmt.Errorf("%w: have %d at source, need %d",
				domain.ErrInsufficientQuantity, source.Quantity, in.Quantity)
		}
		source.Quantity -= in.Quantity
		dest.Quantity += in.Quantity
		source.UpdatedAt, dest.UpdatedAt = now, now
		if err := stocks.Upsert(ctx, source); err != nil {
			return err
		}
		if err := stocks.Upsert(ctx, dest); err != nil {
			return err
		}
		return transfers.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// RecordExpenditure decrements stock at the base and appends the event.
// The reason is mandatory; the quantity may never drive a balance
// negative.
func (uc *UseCase) RecordExpenditure(ctx context.Context, in ExpenditureInput) (*entity.Expenditure, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if !in.ExpendType.Valid() {
		return nil, fmt.Errorf("%w: expendType %q", domain.ErrValidation, in.ExpendType)
	}
	if in.ExpendReason == "" {
		return nil, fmt.Errorf("%w: expendReason is required", domain.ErrValidation)
	}
	base, err := uc.baseRepo.GetByID(ctx, in.BaseID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("%w: base %s", domain.ErrNotFound, in.BaseID)
	}
	asset, err := uc.assetRepo.GetByID(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, in.AssetID)
	}

	now := time.Now().UTC()
	event := &entity.Expenditure{
		ID:           uuid.New().String(),
		AssetID:      in.AssetID,
		BaseID:       in.BaseID,
		Quantity:     in.Quantity,
		ExpendType:   in.ExpendType,
		ExpendReason: in.ExpendReason,
		Date:         now,
		CreatedAt:    now,
		CreatedBy:    in.CreatedBy,
	}

	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		stocks repository.StockRepository,
		_ repository.PurchaseRepository,
		_ repository.TransferRepository,
		expenditures repository.ExpenditureRepository,
	) error {
		if _, err := assets.GetForUpdate(ctx, in.AssetID); err != nil {
			return err
		}
		stock, err := stocks.GetForUpdate(ctx, in.AssetID, in.BaseID)
		if err != nil {
			return err
		}
		if stock.Quantity < in.Quantity {
			return fmt.Errorf("%w: have %d at base, need %d",
				domain.ErrInsufficientQuantity, stock.Quantity, in.Quantity)
		}
		stock.Quantity -= in.Quantity
		stock.UpdatedAt = now
		if err := stocks.Upsert(ctx, stock); err != nil {
			return err
		}
		return expenditures.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}
