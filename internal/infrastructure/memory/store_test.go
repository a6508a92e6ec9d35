package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
	"github.com/jhoicas/armory-api/internal/infrastructure/memory"
)

func TestRun_RollbackOnError(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	assetID, baseID := uuid.New().String(), uuid.New().String()
	boom := errors.New("boom")

	err := store.Run(ctx, func(
		assets repository.AssetRepository,
		stocks repository.StockRepository,
		purchases repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenditureRepository,
	) error {
		now := time.Now().UTC()
		if err := assets.Create(ctx, &entity.Asset{
			ID: assetID, Name: "Radio Set", Type: "Comms",
			BaseID: baseID, Status: entity.StatusAvailable, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		if err := stocks.Upsert(ctx, &entity.Stock{AssetID: assetID, BaseID: baseID, Quantity: 5, UpdatedAt: now}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nothing from the failed transaction may be visible.
	asset, err := store.Assets().GetByID(ctx, assetID)
	require.NoError(t, err)
	assert.Nil(t, asset)

	stock, err := store.Stocks().Get(ctx, assetID, baseID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock.Quantity)
}

func TestRun_CommitVisibleAfterReturn(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	assetID, baseID := uuid.New().String(), uuid.New().String()

	err := store.Run(ctx, func(
		assets repository.AssetRepository,
		stocks repository.StockRepository,
		_ repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenditureRepository,
	) error {
		now := time.Now().UTC()
		if err := assets.Create(ctx, &entity.Asset{
			ID: assetID, Name: "Radio Set", Type: "Comms",
			BaseID: baseID, Status: entity.StatusAvailable, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		return stocks.Upsert(ctx, &entity.Stock{AssetID: assetID, BaseID: baseID, Quantity: 5, UpdatedAt: now})
	})
	require.NoError(t, err)

	stock, err := store.Stocks().Get(ctx, assetID, baseID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stock.Quantity)
}

func TestSetStatusIf_CompareAndSwap(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := uuid.New().String()
	now := time.Now().UTC()
	require.NoError(t, store.Assets().Create(ctx, &entity.Asset{
		ID: id, Name: "Humvee", Type: "Vehicle",
		BaseID: uuid.New().String(), Status: entity.StatusAvailable, CreatedAt: now, UpdatedAt: now,
	}))

	changed, err := store.Assets().SetStatusIf(ctx, id, entity.StatusAvailable, entity.StatusAssigned)
	require.NoError(t, err)
	assert.True(t, changed)

	// Same expected status again: the swap must fail.
	changed, err = store.Assets().SetStatusIf(ctx, id, entity.StatusAvailable, entity.StatusAssigned)
	require.NoError(t, err)
	assert.False(t, changed)

	asset, err := store.Assets().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAssigned, asset.Status)
}

func TestUpsert_RejectsNegativeQuantity(t *testing.T) {
	store := memory.NewStore()
	err := store.Stocks().Upsert(context.Background(), &entity.Stock{
		AssetID: uuid.New().String(), BaseID: uuid.New().String(), Quantity: -1,
	})
	assert.Error(t, err)
}

func TestDelete_ReferencedBaseRejected(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	baseID, assetID := uuid.New().String(), uuid.New().String()

	require.NoError(t, store.Bases().Create(ctx, &entity.Base{ID: baseID, Name: "Fort Alpha", CreatedAt: time.Now().UTC()}))
	require.NoError(t, store.Purchases().Create(ctx, &entity.Purchase{
		ID: uuid.New().String(), AssetID: assetID, BaseID: baseID,
		Quantity: 1, Date: time.Now().UTC(),
	}))

	err := store.Bases().Delete(ctx, baseID)
	require.ErrorIs(t, err, domain.ErrValidation, "deleting a base referenced by a purchase event must fail")

	base, err := store.Bases().GetByID(ctx, baseID)
	require.NoError(t, err)
	assert.NotNil(t, base, "the base must still exist")
}

func TestDelete_ReferencedAssetRejected(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()
	assetID, baseID := uuid.New().String(), uuid.New().String()

	require.NoError(t, store.Assets().Create(ctx, &entity.Asset{
		ID: assetID, Name: "M4 Carbine", Type: "Weapon",
		BaseID: baseID, Status: entity.StatusAvailable, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Expenditures().Create(ctx, &entity.Expenditure{
		ID: uuid.New().String(), AssetID: assetID, BaseID: baseID,
		Quantity: 1, ExpendType: entity.ExpendUsed, ExpendReason: "training", Date: now,
	}))

	err := store.Assets().Delete(ctx, assetID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_UnreferencedSucceeds(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	baseID := uuid.New().String()

	require.NoError(t, store.Bases().Create(ctx, &entity.Base{ID: baseID, Name: "Fort Alpha", CreatedAt: time.Now().UTC()}))
	require.NoError(t, store.Bases().Delete(ctx, baseID))

	base, err := store.Bases().GetByID(ctx, baseID)
	require.NoError(t, err)
	assert.Nil(t, base)
}

func TestAcquire_ContentionAfterBudget(t *testing.T) {
	store := memory.NewStore(memory.WithLockWaitBudget(30 * time.Millisecond))
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- store.Run(ctx, func(
			_ repository.AssetRepository,
			_ repository.StockRepository,
			_ repository.PurchaseRepository,
			_ repository.TransferRepository,
			_ repository.ExpenditureRepository,
		) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// The writer holds the store lock past the reader's wait budget.
	_, err := store.Bases().List(ctx)
	assert.ErrorIs(t, err, domain.ErrContention)

	close(release)
	require.NoError(t, <-done)

	_, err = store.Bases().List(ctx)
	assert.NoError(t, err, "the lock is free again after commit")
}

func TestAssignmentUpdate_MissingRowNotFound(t *testing.T) {
	store := memory.NewStore()
	err := store.Assignments().Update(context.Background(), &entity.Assignment{
		ID:     uuid.New().String(),
		Status: entity.AssignmentAssigned,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventLists_NewestFirstAndLimited(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	assetID, baseID := uuid.New().String(), uuid.New().String()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Purchases().Create(ctx, &entity.Purchase{
			ID: uuid.New().String(), AssetID: assetID, BaseID: baseID,
			Quantity: int64(i + 1),
			Date:     time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC),
		}))
	}

	rows, err := store.Purchases().List(ctx, repository.EventFilter{}, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0].Quantity, "newest first")
	assert.Equal(t, int64(2), rows[1].Quantity)
}
