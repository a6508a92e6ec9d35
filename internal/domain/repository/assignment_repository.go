package repository

import (
	"context"

	"github.com/jhoicas/armory-api/internal/domain/entity"
)

// AssignmentWithRefs joins the assignment with its asset's name/type.
type AssignmentWithRefs struct {
	entity.Assignment
	AssetName string
	AssetType string
}

// AssignmentRepository is the persistence port for the assignment
// sub-ledger.
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	// GetForUpdate locks the assignment row for a state transition.
	GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error)
	Update(ctx context.Context, a *entity.Assignment) error
	// List returns assignments, optionally filtered by status, ordered by
	// assignedAt ascending.
	List(ctx context.Context, status entity.AssignmentStatus) ([]*AssignmentWithRefs, error)
}
