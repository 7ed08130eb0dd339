package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clinic-scheduler/internal/domain/appointment"
	"clinic-scheduler/internal/domain/resource"
	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/domain/user"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/config"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db infra.DBTX, appt *appointment.Appointment) (uuid.UUID, error)
	FindActiveIntervals(ctx context.Context, db infra.DBTX, resourceID uuid.UUID, from, to schedule.Instant) ([]schedule.BookedInterval, error)
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status appointment.Status) error
}

type ResourceRepository interface {
	FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*resource.Resource, error)
	LockForBooking(ctx context.Context, db infra.DBTX, id uuid.UUID) error
}

// BookAppointmentParams carries the patient's wall-clock request. Zone may
// be empty, in which case the resource's clinic zone applies.
type BookAppointmentParams struct {
	ResourceID  uuid.UUID
	PatientID   uuid.UUID
	Local       schedule.LocalMoment
	Zone        string
	DurationMin int
	Policy      schedule.AmbiguityPolicy
	Note        string
}

type AppointmentCommands interface {
	Book(ctx context.Context, params BookAppointmentParams) (*queries.AppointmentView, error)
	Cancel(ctx context.Context, id, requesterID uuid.UUID, requesterRole user.Role) error
}

type appointmentCommandsImpl struct {
	appointmentRepo AppointmentRepository
	resourceRepo    ResourceRepository
	factory         *appointment.Factory
	resolver        *schedule.Resolver
	queries         queries.AppointmentQueries
	db              *pgxpool.Pool
	scheduleCfg     config.ScheduleConfig
}

func NewAppointmentCommands(
	appointmentRepo AppointmentRepository,
	resourceRepo ResourceRepository,
	factory *appointment.Factory,
	resolver *schedule.Resolver,
	appointmentQueries queries.AppointmentQueries,
	db *pgxpool.Pool,
	cfg config.Config,
) AppointmentCommands {
	return &appointmentCommandsImpl{
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		factory:         factory,
		resolver:        resolver,
		queries:         appointmentQueries,
		db:              db,
		scheduleCfg:     cfg.Schedule,
	}
}

func (c *appointmentCommandsImpl) Book(ctx context.Context, params BookAppointmentParams) (*queries.AppointmentView, error) {
	res, err := c.resourceRepo.FindByID(ctx, c.db, params.ResourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	zone := params.Zone
	if zone == "" {
		zone = res.Zone()
	}
	if zone == "" {
		zone = c.scheduleCfg.DefaultZone
	}

	policy := params.Policy
	if !policy.IsValid() {
		policy = schedule.DefaultAmbiguityPolicy
	}

	appt, err := c.resolveAppointment(res, params, zone, policy)
	if err != nil {
		return nil, err
	}

	apptID, err := c.executeBookingTransaction(ctx, appt)
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the complete view, rendered for the zone the
	// patient asked in.
	view, err := c.queries.GetByIDSystem(ctx, apptID, zone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *appointmentCommandsImpl) resolveAppointment(
	res *resource.Resource,
	params BookAppointmentParams,
	zone string,
	policy schedule.AmbiguityPolicy,
) (*appointment.Appointment, error) {
	start, err := c.resolver.ToInstant(params.Local, zone, policy)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrUnknownTimeZone):
			return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
		case errors.Is(err, schedule.ErrInvalidLocalTime):
			return nil, errs.Mark(err, errs.ErrInvalidLocalTime)
		default:
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	end := start.Add(time.Duration(params.DurationMin) * time.Minute)
	slot, err := appointment.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	zoned, err := c.resolver.ToZoned(start, zone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
	}

	appt, err := c.factory.CreateAppointment(
		res,
		params.PatientID,
		slot,
		zone,
		zoned.Offset(),
		policy,
		appointment.NewNote(params.Note),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return appt, nil
}

func (c *appointmentCommandsImpl) executeBookingTransaction(ctx context.Context, appt *appointment.Appointment) (uuid.UUID, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback booking transaction", "error", rollbackErr)
		}
	}()

	// The resource row lock serializes concurrent bookings for the same
	// resource, so the availability check below cannot race.
	if err := c.resourceRepo.LockForBooking(ctx, tx, appt.ResourceID()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.ErrResourceNotFound
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	interval := appt.Interval()
	existing, err := c.appointmentRepo.FindActiveIntervals(ctx, tx, appt.ResourceID(), interval.Start, interval.End)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !schedule.IsAvailable(appt.ResourceID(), interval.Start, interval.End, existing) {
		return uuid.Nil, errs.ErrSlotTaken
	}

	apptID, err := c.appointmentRepo.Create(ctx, tx, appt)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, errs.ErrSlotTaken
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return apptID, nil
}

func (c *appointmentCommandsImpl) Cancel(ctx context.Context, id, requesterID uuid.UUID, requesterRole user.Role) error {
	appt, err := c.appointmentRepo.FindByID(ctx, c.db, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrAppointmentNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	isOwner := appt.PatientID() == requesterID
	isStaff := requesterRole == user.RoleAdmin || requesterRole == user.RoleStaff
	if !isOwner && !isStaff {
		return errs.ErrNotAppointmentOwner
	}

	if err := appt.Cancel(); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.appointmentRepo.UpdateStatus(ctx, c.db, id, appt.Status()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrAppointmentNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return nil
}
