package repository

import (
	"context"

	"github.com/jhoicas/armory-api/internal/domain/entity"
)

// UserRepository is the persistence port for operator accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
