package repository

import (
	"context"

	"github.com/jhoicas/armory-api/internal/domain/entity"
)

// BaseRepository is the persistence port for bases (DIP).
type BaseRepository interface {
	Create(ctx context.Context, base *entity.Base) error
	GetByID(ctx context.Context, id string) (*entity.Base, error)
	List(ctx context.Context) ([]*entity.Base, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}
