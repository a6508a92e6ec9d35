package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// BaseUseCase catalog operations over bases.
type BaseUseCase struct {
	baseRepo repository.BaseRepository
}

// NewBaseUseCase builds the use case.
func NewBaseUseCase(baseRepo repository.BaseRepository) *BaseUseCase {
	return &BaseUseCase{baseRepo: baseRepo}
}

// Create registers a new base.
func (uc *BaseUseCase) Create(ctx context.Context, name string) (*dto.BaseResponse, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	base := &entity.Base{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.baseRepo.Create(ctx, base); err != nil {
		return nil, err
	}
	return baseResponse(base), nil
}

// List returns all bases.
func (uc *BaseUseCase) List(ctx context.Context) ([]*dto.BaseResponse, error) {
	bases, err := uc.baseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BaseResponse, 0, len(bases))
	for _, b := range bases {
		out = append(out, baseResponse(b))
	}
	return out, nil
}

// Delete removes a base from the catalog.
func (uc *BaseUseCase) Delete(ctx context.Context, id string) error {
	base, err := uc.baseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if base == nil {
		return fmt.Errorf("%w: base %s", domain.ErrNotFound, id)
	}
	return uc.baseRepo.Delete(ctx, id)
}

func baseResponse(b *entity.Base) *dto.BaseResponse {
	return &dto.BaseResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}
