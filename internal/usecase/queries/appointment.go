package queries

import (
	"context"
	"time"

	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/domain/user"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentRow, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentRow, error)
	FindForResourceWindow(ctx context.Context, resourceID uuid.UUID, from, to schedule.Instant) ([]*AppointmentRow, error)
}

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id, viewerID uuid.UUID, viewerRole user.Role, viewerZone string) (*AppointmentView, error)
	// GetByIDSystem skips ownership checks; used for read-after-write
	// inside commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID, viewerZone string) (*AppointmentView, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentListItem, error)
	DaySchedule(ctx context.Context, resourceID uuid.UUID, year int, month time.Month, day int, zoneID string) (*DayScheduleView, error)
}

type appointmentQueriesImpl struct {
	store     AppointmentReadStore
	resources ResourceReadStore
	resolver  *schedule.Resolver
}

func NewAppointmentQueries(store AppointmentReadStore, resources ResourceReadStore, resolver *schedule.Resolver) AppointmentQueries {
	return &appointmentQueriesImpl{
		store:     store,
		resources: resources,
		resolver:  resolver,
	}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id, viewerID uuid.UUID, viewerRole user.Role, viewerZone string) (*AppointmentView, error) {
	row, err := q.findRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if row.PatientID != viewerID && viewerRole != user.RoleAdmin && viewerRole != user.RoleStaff {
		return nil, errs.ErrNotAppointmentOwner
	}

	return q.buildView(row, viewerZone)
}

func (q *appointmentQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID, viewerZone string) (*AppointmentView, error) {
	row, err := q.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return q.buildView(row, viewerZone)
}

func (q *appointmentQueriesImpl) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentListItem, error) {
	rows, err := q.store.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items := make([]*AppointmentListItem, 0, len(rows))
	for _, row := range rows {
		clinicStart, err := q.zonedView(row.Start, row.ResourceZone)
		if err != nil {
			return nil, err
		}
		items = append(items, &AppointmentListItem{
			ID:           row.ID,
			ResourceID:   row.ResourceID,
			ResourceName: row.ResourceName,
			StartUTC:     row.Start.Time(),
			EndUTC:       row.End.Time(),
			Status:       row.Status,
			ClinicStart:  clinicStart,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (q *appointmentQueriesImpl) DaySchedule(ctx context.Context, resourceID uuid.UUID, year int, month time.Month, day int, zoneID string) (*DayScheduleView, error) {
	res, err := q.resources.FindByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if zoneID == "" {
		zoneID = res.Zone
	}

	from, err := q.dayStart(year, month, day, zoneID)
	if err != nil {
		return nil, err
	}
	next := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	to, err := q.dayStart(next.Year(), next.Month(), next.Day(), zoneID)
	if err != nil {
		return nil, err
	}

	rows, err := q.store.FindForResourceWindow(ctx, resourceID, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slots := make([]BookedSlotView, 0, len(rows))
	for _, row := range rows {
		startZoned, err := q.resolver.ToZoned(row.Start, zoneID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
		}
		endZoned, err := q.resolver.ToZoned(row.End, zoneID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
		}
		slots = append(slots, BookedSlotView{
			StartUTC:   row.Start.Time(),
			EndUTC:     row.End.Time(),
			StartLocal: startZoned.Local().String(),
			EndLocal:   endZoned.Local().String(),
		})
	}

	return &DayScheduleView{
		ResourceID: resourceID,
		Date:       time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Zone:       zoneID,
		Slots:      slots,
	}, nil
}

func (q *appointmentQueriesImpl) findRow(ctx context.Context, id uuid.UUID) (*AppointmentRow, error) {
	row, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return row, nil
}

func (q *appointmentQueriesImpl) buildView(row *AppointmentRow, viewerZone string) (*AppointmentView, error) {
	clinicStart, err := q.zonedView(row.Start, row.ResourceZone)
	if err != nil {
		return nil, err
	}

	var viewerStart *ZonedTimeView
	if viewerZone != "" && viewerZone != row.ResourceZone {
		v, err := q.zonedView(row.Start, viewerZone)
		if err != nil {
			return nil, err
		}
		viewerStart = &v
	}

	return &AppointmentView{
		ID:              row.ID,
		ResourceID:      row.ResourceID,
		ResourceName:    row.ResourceName,
		PatientID:       row.PatientID,
		StartUTC:        row.Start.Time(),
		EndUTC:          row.End.Time(),
		DurationMin:     int(row.End.Sub(row.Start).Minutes()),
		Status:          row.Status,
		RequestedZone:   row.RequestedZone,
		AmbiguityPolicy: row.AmbiguityPolicy,
		ClinicStart:     clinicStart,
		ViewerStart:     viewerStart,
		Note:            row.Note,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func (q *appointmentQueriesImpl) zonedView(instant schedule.Instant, zoneID string) (ZonedTimeView, error) {
	zoned, err := q.resolver.ToZoned(instant, zoneID)
	if err != nil {
		return ZonedTimeView{}, errs.Mark(err, errs.ErrUnknownTimeZone)
	}
	dst, err := q.resolver.IsDSTActive(instant, zoneID)
	if err != nil {
		return ZonedTimeView{}, errs.Mark(err, errs.ErrUnknownTimeZone)
	}
	return ZonedTimeView{
		Zone:      zoneID,
		Local:     zoned.Local().String(),
		Offset:    schedule.FormatOffset(zoned.Offset()),
		DSTActive: dst,
	}, nil
}

// dayStart resolves local midnight. Zones that spring forward over midnight
// skip 00:00 entirely; the day then starts at the first existing hour.
func (q *appointmentQueriesImpl) dayStart(year int, month time.Month, day int, zoneID string) (schedule.Instant, error) {
	midnight := schedule.LocalMoment{Year: year, Month: month, Day: day}
	instant, err := q.resolver.ToInstant(midnight, zoneID, schedule.DefaultAmbiguityPolicy)
	if err == nil {
		return instant, nil
	}

	c, cerr := q.resolver.Classify(midnight, zoneID)
	if cerr != nil {
		return 0, errs.Mark(cerr, errs.ErrUnknownTimeZone)
	}
	if c.Kind == schedule.KindGap {
		midnight.Hour = 1
		return q.resolver.ToInstant(midnight, zoneID, schedule.DefaultAmbiguityPolicy)
	}
	return 0, err
}
