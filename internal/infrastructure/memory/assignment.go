package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo in-memory AssignmentRepository.
type AssignmentRepo struct {
	session
}

func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	return r.with(ctx, func(d *data) error {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		d.assignments[a.ID] = *a
		return nil
	})
}

func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	var out *entity.Assignment
	err := r.with(ctx, func(d *data) error {
		if a, ok := d.assignments[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

// GetForUpdate is equivalent to GetByID here: the store lock already
// serializes the whole transaction.
func (r *AssignmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.GetByID(ctx, id)
}

func (r *AssignmentRepo) Update(ctx context.Context, a *entity.Assignment) error {
	return r.with(ctx, func(d *data) error {
		if _, ok := d.assignments[a.ID]; !ok {
			return fmt.Errorf("%w: assignment %s", domain.ErrNotFound, a.ID)
		}
		d.assignments[a.ID] = *a
		return nil
	})
}

func (r *AssignmentRepo) List(ctx context.Context, status entity.AssignmentStatus) ([]*repository.AssignmentWithRefs, error) {
	var out []*repository.AssignmentWithRefs
	err := r.with(ctx, func(d *data) error {
		for _, a := range d.assignments {
			if status != "" && a.Status != status {
				continue
			}
			asset := d.assets[a.AssetID]
			out = append(out, &repository.AssignmentWithRefs{
				Assignment: a,
				AssetName:  asset.Name,
				AssetType:  asset.Type,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignedAt.Before(out[j].AssignedAt)
	})
	return out, nil
}
