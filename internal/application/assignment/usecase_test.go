package assignment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armory-api/internal/application/assignment"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/infrastructure/memory"
)

func newAvailableAsset(t *testing.T, store *memory.Store) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().UTC()
	require.NoError(t, store.Assets().Create(context.Background(), &entity.Asset{
		ID:        id,
		Name:      "NVG-" + id[:8],
		Type:      "Optics",
		BaseID:    uuid.New().String(),
		Status:    entity.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return id
}

func TestAssign_MarksAssetAssigned(t *testing.T) {
	store := memory.NewStore()
	uc := assignment.New(store, store.Assignments())
	assetID := newAvailableAsset(t, store)

	a, err := uc.Assign(context.Background(), assetID, "Sgt. Rivera")
	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentAssigned, a.Status)
	assert.Nil(t, a.ExpendedAt)

	asset, err := store.Assets().GetByID(context.Background(), assetID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAssigned, asset.Status)
}

func TestAssign_ConcurrentAttemptsSingleWinner(t *testing.T) {
	store := memory.NewStore()
	uc := assignment.New(store, store.Assignments())
	assetID := newAvailableAsset(t, store)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Assign(context.Background(), assetID, "operator")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInvalidState), "loser must see invalid state, got %v", err)
	}
	assert.Equal(t, 1, wins, "exactly one concurrent assign may succeed")

	rows, err := store.Assignments().List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAssign_UnknownAsset(t *testing.T) {
	store := memory.NewStore()
	uc := assignment.New(store, store.Assignments())

	_, err := uc.Assign(context.Background(), uuid.New().String(), "operator")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarkExpended_OnlyOnce(t *testing.T) {
	store := memory.NewStore()
	uc := assignment.New(store, store.Assignments())
	assetID := newAvailableAsset(t, store)

	a, err := uc.Assign(context.Background(), assetID, "Cpl. Andersen")
	require.NoError(t, err)

	expended, err := uc.MarkExpended(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentExpended, expended.Status)
	require.NotNil(t, expended.ExpendedAt)

	_, err = uc.MarkExpended(context.Background(), a.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "second transition must fail")

	asset, err := store.Assets().GetByID(context.Background(), assetID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExpended, asset.Status)
}

func TestAssign_ExpendedAssetRejected(t *testing.T) {
	store := memory.NewStore()
	uc := assignment.New(store, store.Assignments())
	assetID := newAvailableAsset(t, store)

	a, err := uc.Assign(context.Background(), assetID, "operator")
	require.NoError(t, err)
	_, err = uc.MarkExpended(context.Background(), a.ID)
	require.NoError(t, err)

	_, err = uc.Assign(context.Background(), assetID, "someone else")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestList_OrderedAndFiltered(t *testing.T) {
	store := memory.NewStore()
	uc := assignment.New(store, store.Assignments())

	first, err := uc.Assign(context.Background(), newAvailableAsset(t, store), "first")
	require.NoError(t, err)
	second, err := uc.Assign(context.Background(), newAvailableAsset(t, store), "second")
	require.NoError(t, err)
	_, err = uc.MarkExpended(context.Background(), second.ID)
	require.NoError(t, err)

	all, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "assignedAt ascending")

	assigned, err := uc.List(context.Background(), "Assigned")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, first.ID, assigned[0].ID)

	_, err = uc.List(context.Background(), "Lost")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
