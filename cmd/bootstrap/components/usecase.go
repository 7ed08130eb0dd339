package components

import (
	"clinic-scheduler/internal/domain/appointment"
	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/pkg/clock"
	"clinic-scheduler/internal/pkg/config"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/internal/usecase/commands"
	"clinic-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		schedule.NewLocationDB,
		fx.As(new(schedule.ZoneDB)),
	),
	schedule.NewResolver,
	NewBookingRules,
	appointment.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewAppointmentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAppointmentQueries,
		queries.NewScheduleQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingRules(cfg config.Config) appointment.BookingRules {
	return appointment.BookingRules{
		MinLeadTimeMin: cfg.Schedule.MinLeadTimeMin,
		MinDurationMin: cfg.Schedule.MinDurationMin,
		MaxDurationMin: cfg.Schedule.MaxDurationMin,
	}
}
