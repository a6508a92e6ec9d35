package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo in-memory UserRepository.
type UserRepo struct {
	session
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.with(ctx, func(d *data) error {
		for _, u := range d.users {
			if u.Email == user.Email {
				return fmt.Errorf("%w: email already registered", domain.ErrValidation)
			}
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.with(ctx, func(d *data) error {
		for _, u := range d.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
