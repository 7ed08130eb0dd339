package repository

import (
	"context"

	"clinic-scheduler/internal/domain/user"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const findUserByEmailSQL = `
SELECT id, email, password_hash, role, is_active, last_login, created_at, updated_at
FROM users
WHERE email = $1`

func (r *UserRepository) FindByEmail(ctx context.Context, db infra.DBTX, email string) (*user.User, error) {
	var (
		id           uuid.UUID
		emailValue   string
		passwordHash string
		role         string
		isActive     bool
		lastLogin    pgtype.Timestamptz
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&id, &emailValue, &passwordHash, &role, &isActive, &lastLogin, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	emailVO, err := user.NewEmail(emailValue)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid email", err)
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid role", err)
	}

	return user.ReconstructUser(
		id, emailVO, passwordHash, roleVO, isActive,
		pgconv.TimePtrFromPgtype(lastLogin),
		createdAt.Time, updatedAt.Time,
	), nil
}

const touchLastLoginSQL = `
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

func (r *UserRepository) TouchLastLogin(ctx context.Context, db infra.DBTX, id uuid.UUID) error {
	if _, err := db.Exec(ctx, touchLastLoginSQL, id); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
