package components

import (
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/infra/readstore"
	repo_impl "clinic-scheduler/internal/infra/repository"
	"clinic-scheduler/internal/usecase/commands"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
		),
		fx.Annotate(
			repo_impl.NewResourceRepository,
			fx.As(new(commands.ResourceRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
