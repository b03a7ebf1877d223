package repository

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// UserRepository lectura de usuarios y roles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByBadgeID(ctx context.Context, badgeID string) (*entity.User, error)
	GetRoleByName(ctx context.Context, name string) (*entity.Role, error)
}
