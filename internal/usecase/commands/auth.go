package commands

import (
	"context"
	"log/slog"

	"clinic-scheduler/internal/domain/user"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/pkg/jwt"
	"clinic-scheduler/internal/pkg/password"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, db infra.DBTX, email string) (*user.User, error)
	TouchLastLogin(ctx context.Context, db infra.DBTX, id uuid.UUID) error
}

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
	db         *pgxpool.Pool
}

func NewAuthCommands(userRepo UserRepository, jwtService *jwt.Service, db *pgxpool.Pool) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		db:         db,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	u, err := a.userRepo.FindByEmail(ctx, a.db, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !u.IsActive() {
		return nil, errs.ErrUserInactive
	}

	if err := password.ComparePassword(u.PasswordHash(), plainPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// Best effort; a failed timestamp update must not block login.
	if err := a.userRepo.TouchLastLogin(ctx, a.db, u.ID()); err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err)
	}

	return &LoginResult{
		Token: token,
		User: &queries.AuthorizedUserView{
			ID:       u.ID(),
			Email:    u.Email().String(),
			Role:     u.Role().String(),
			IsActive: u.IsActive(),
		},
	}, nil
}
