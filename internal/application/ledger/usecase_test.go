package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
	"github.com/jhoicas/armory-api/internal/infrastructure/memory"
)

type fixture struct {
	store  *memory.Store
	ledger *ledger.UseCase
	baseA  string
	baseB  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:  store,
		ledger: ledger.New(store, store.Bases(), store.Assets()),
		baseA:  uuid.New().String(),
		baseB:  uuid.New().String(),
	}
	ctx := context.Background()
	require.NoError(t, store.Bases().Create(ctx, &entity.Base{ID: f.baseA, Name: "Fort Alpha", CreatedAt: time.Now().UTC()}))
	require.NoError(t, store.Bases().Create(ctx, &entity.Base{ID: f.baseB, Name: "Fort Bravo", CreatedAt: time.Now().UTC()}))
	return f
}

func (f *fixture) purchase(t *testing.T, baseID string, qty int64) *entity.Purchase {
	t.Helper()
	p, err := f.ledger.RecordPurchase(context.Background(), ledger.PurchaseInput{
		BaseID:      baseID,
		Name:        "M4 Carbine",
		Type:        "Weapon",
		Quantity:    qty,
		CostPerUnit: decimal.NewFromInt(1200),
		TotalCost:   decimal.NewFromInt(1200 * qty),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) quantityAt(t *testing.T, assetID, baseID string) int64 {
	t.Helper()
	s, err := f.store.Stocks().Get(context.Background(), assetID, baseID)
	require.NoError(t, err)
	return s.Quantity
}

func TestRecordPurchase_CreatesAssetAndIncrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.purchase(t, f.baseA, 10)

	asset, err := f.store.Assets().GetByID(ctx, p.AssetID)
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, "M4 Carbine", asset.Name)
	assert.Equal(t, entity.StatusAvailable, asset.Status)

	assert.Equal(t, int64(10), f.quantityAt(t, p.AssetID, f.baseA))

	rows, err := f.store.Purchases().List(ctx, repository.EventFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalCost.Equal(decimal.NewFromInt(12000)))
}

func TestRecordPurchase_ReusesAssetByNameType(t *testing.T) {
	f := newFixture(t)

	first := f.purchase(t, f.baseA, 10)
	second := f.purchase(t, f.baseA, 5)

	assert.Equal(t, first.AssetID, second.AssetID)
	assert.Equal(t, int64(15), f.quantityAt(t, first.AssetID, f.baseA))
}

func TestRecordPurchase_TotalCostMismatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordPurchase(context.Background(), ledger.PurchaseInput{
		BaseID:      f.baseA,
		Name:        "M4 Carbine",
		Type:        "Weapon",
		Quantity:    10,
		CostPerUnit: decimal.NewFromInt(1200),
		TotalCost:   decimal.NewFromInt(11999),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestRecordPurchase_UnknownBase(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordPurchase(context.Background(), ledger.PurchaseInput{
		BaseID:   uuid.New().String(),
		Name:     "M4 Carbine",
		Type:     "Weapon",
		Quantity: 1,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordTransfer_MovesQuantityAtomically(t *testing.T) {
	f := newFixture(t)
	p := f.purchase(t, f.baseA, 10)

	tr, err := f.ledger.RecordTransfer(context.Background(), ledger.TransferInput{
		AssetID:    p.AssetID,
		FromBaseID: f.baseA,
		ToBaseID:   f.baseB,
		Quantity:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), tr.Quantity)

	assert.Equal(t, int64(6), f.quantityAt(t, p.AssetID, f.baseA))
	assert.Equal(t, int64(4), f.quantityAt(t, p.AssetID, f.baseB))

	// Conservation: a transfer never changes the total.
	totals, err := f.store.Stocks().QuantitiesByAsset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), totals[p.AssetID])

	rows, err := f.store.Transfers().List(context.Background(), repository.EventFilter{}, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRecordTransfer_InsufficientLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	p := f.purchase(t, f.baseA, 3)

	_, err := f.ledger.RecordTransfer(context.Background(), ledger.TransferInput{
		AssetID:    p.AssetID,
		FromBaseID: f.baseA,
		ToBaseID:   f.baseB,
		Quantity:   5,
	})
	require.True(t, errors.Is(err, domain.ErrInsufficientQuantity))

	assert.Equal(t, int64(3), f.quantityAt(t, p.AssetID, f.baseA))
	assert.Equal(t, int64(0), f.quantityAt(t, p.AssetID, f.baseB))

	rows, err := f.store.Transfers().List(context.Background(), repository.EventFilter{}, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordTransfer_SameBaseRejected(t *testing.T) {
	f := newFixture(t)
	p := f.purchase(t, f.baseA, 3)

	_, err := f.ledger.RecordTransfer(context.Background(), ledger.TransferInput{
		AssetID:    p.AssetID,
		FromBaseID: f.baseA,
		ToBaseID:   f.baseA,
		Quantity:   1,
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestRecordExpenditure_DecrementsStock(t *testing.T) {
	f := newFixture(t)
	p := f.purchase(t, f.baseA, 10)

	e, err := f.ledger.RecordExpenditure(context.Background(), ledger.ExpenditureInput{
		AssetID:      p.AssetID,
		BaseID:       f.baseA,
		Quantity:     3,
		ExpendType:   entity.ExpendUsed,
		ExpendReason: "training exercise",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpendUsed, e.ExpendType)
	assert.Equal(t, int64(7), f.quantityAt(t, p.AssetID, f.baseA))
}

func TestRecordExpenditure_NeverDrivesNegative(t *testing.T) {
	f := newFixture(t)
	p := f.purchase(t, f.baseA, 2)

	_, err := f.ledger.RecordExpenditure(context.Background(), ledger.ExpenditureInput{
		AssetID:      p.AssetID,
		BaseID:       f.baseA,
		Quantity:     5,
		ExpendType:   entity.ExpendExpired,
		ExpendReason: "shelf life",
	})
	require.True(t, errors.Is(err, domain.ErrInsufficientQuantity))
	assert.Equal(t, int64(2), f.quantityAt(t, p.AssetID, f.baseA))
}

func TestRecordExpenditure_RequiresReasonAndValidType(t *testing.T) {
	f := newFixture(t)
	p := f.purchase(t, f.baseA, 5)

	_, err := f.ledger.RecordExpenditure(context.Background(), ledger.ExpenditureInput{
		AssetID:    p.AssetID,
		BaseID:     f.baseA,
		Quantity:   1,
		ExpendType: entity.ExpendUsed,
	})
	assert.True(t, errors.Is(err, domain.ErrValidation), "missing reason")

	_, err = f.ledger.RecordExpenditure(context.Background(), ledger.ExpenditureInput{
		AssetID:      p.AssetID,
		BaseID:       f.baseA,
		Quantity:     1,
		ExpendType:   entity.ExpendType("Vaporized"),
		ExpendReason: "zap",
	})
	assert.True(t, errors.Is(err, domain.ErrValidation), "unknown expend type")
}
