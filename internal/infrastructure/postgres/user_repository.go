package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userSelect = `
	SELECT u.id, u.username, u.email, u.role_id, r.name, u.badge_id, u.full_name, u.is_active
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id`

// UserRepo lectura de usuarios y roles sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, userSelect+` WHERE u.id = $1`, id)
}

// GetByBadgeID obtiene un usuario activo por su gafete; nil si no existe.
func (r *UserRepo) GetByBadgeID(ctx context.Context, badgeID string) (*entity.User, error) {
	return r.findOne(ctx, userSelect+` WHERE u.badge_id = $1 AND u.is_active`, badgeID)
}

func (r *UserRepo) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	var email, roleID, roleName, fullName *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &email, &roleID, &roleName, &u.BadgeID, &fullName, &u.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Email = derefString(email)
	u.RoleID = derefString(roleID)
	u.RoleName = derefString(roleName)
	u.FullName = derefString(fullName)
	return &u, nil
}

// GetRoleByName obtiene un rol por nombre; nil si no existe.
func (r *UserRepo) GetRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	var description *string
	err := r.q.QueryRow(ctx,
		`SELECT id, name, can_view_prices, description FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Name, &role.CanViewPrices, &description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	role.Description = derefString(description)
	return &role, nil
}
