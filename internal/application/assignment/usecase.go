// Package assignment implements the assignment sub-ledger: a state
// machine per asset unit (Available → Assigned → Expended) gating the
// asset's assignable status.
package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// UseCase tracks allocations of assets to personnel.
type UseCase struct {
	txRunner       ledger.TxRunner
	assignmentRepo repository.AssignmentRepository
}

// New builds the assignment use case.
func New(txRunner ledger.TxRunner, assignmentRepo repository.AssignmentRepository) *UseCase {
	return &UseCase{txRunner: txRunner, assignmentRepo: assignmentRepo}
}

// Assign allocates an Available asset to a person. Concurrent attempts on
// the same asset serialize on the asset row: exactly one wins, the rest
// fail with ErrInvalidState.
func (uc *UseCase) Assign(ctx context.Context, assetID, assignedTo string) (*entity.Assignment, error) {
	if assetID == "" || assignedTo == "" {
		return nil, fmt.Errorf("%w: assetId and assignedTo are required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	a := &entity.Assignment{
		ID:         uuid.New().String(),
		AssetID:    assetID,
		AssignedTo: assignedTo,
		Status:     entity.AssignmentAssigned,
		AssignedAt: now,
	}

	err := uc.txRunner.RunAssignment(ctx, func(
		assets repository.AssetRepository,
		assignments repository.AssignmentRepository,
	) error {
		asset, err := assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: asset %s", domain.ErrNotFound, assetID)
		}
		if asset.Status != entity.StatusAvailable {
			return fmt.Errorf("%w: asset is %s, not Available", domain.ErrInvalidState, asset.Status)
		}
		changed, err := assets.SetStatusIf(ctx, assetID, entity.StatusAvailable, entity.StatusAssigned)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: asset is no longer Available", domain.ErrInvalidState)
		}
		return assignments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MarkExpended transitions an assignment from Assigned to Expended,
// exactly once; a second call fails with ErrInvalidState. The asset's
// unit leaves the assignable pool at the same time.
func (uc *UseCase) MarkExpended(ctx context.Context, assignmentID string) (*entity.Assignment, error) {
	var result *entity.Assignment
	err := uc.txRunner.RunAssignment(ctx, func(
		assets repository.AssetRepository,
		assignments repository.AssignmentRepository,
	) error {
		a, err := assignments.GetForUpdate(ctx, assignmentID)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: assignment %s", domain.ErrNotFound, assignmentID)
		}
		if a.Status != entity.AssignmentAssigned {
			return fmt.Errorf("%w: assignment is %s, not Assigned", domain.ErrInvalidState, a.Status)
		}

		now := time.Now().UTC()
		a.Status = entity.AssignmentExpended
		a.ExpendedAt = &now
		if err := assignments.Update(ctx, a); err != nil {
			return err
		}
		changed, err := assets.SetStatusIf(ctx, a.AssetID, entity.StatusAssigned, entity.StatusExpended)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: asset status out of step with assignment", domain.ErrInvalidState)
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns assignments matching the optional status filter, ordered
// by assignedAt ascending.
func (uc *UseCase) List(ctx context.Context, status string) ([]*repository.AssignmentWithRefs, error) {
	var s entity.AssignmentStatus
	switch status {
	case "":
	case string(entity.AssignmentAssigned), string(entity.AssignmentExpended):
		s = entity.AssignmentStatus(status)
	default:
		return nil, fmt.Errorf("%w: status %q", domain.ErrValidation, status)
	}
	return uc.assignmentRepo.List(ctx, s)
}
