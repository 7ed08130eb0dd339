package repository

import (
	"context"

	"clinic-scheduler/internal/domain/appointment"
	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Expected schema:
//
//	appointments(id uuid pk, resource_id uuid, patient_id uuid,
//	  start_at timestamptz, end_at timestamptz, status text,
//	  requested_zone text, resolved_offset_sec int, ambiguity_policy text,
//	  note text, created_at timestamptz, updated_at timestamptz)
//
// with an exclusion constraint on (resource_id, tstzrange(start_at, end_at))
// for status = 'booked' as the last line of defense behind the slot guard.
type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

const createAppointmentSQL = `
INSERT INTO appointments (
	id, resource_id, patient_id, start_at, end_at, status,
	requested_zone, resolved_offset_sec, ambiguity_policy, note
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *AppointmentRepository) Create(ctx context.Context, db infra.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, createAppointmentSQL,
		appt.ID(),
		appt.ResourceID(),
		appt.PatientID(),
		appt.Slot().Start().Time(),
		appt.Slot().End().Time(),
		appt.Status().String(),
		appt.RequestedZone(),
		appt.ResolvedOffset(),
		appt.Policy().String(),
		pgconv.TextToPgtype(appt.Note().String()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create appointment", err, infra.KindFromPgError(err))
	}

	return id, nil
}

const activeIntervalsSQL = `
SELECT resource_id, start_at, end_at
FROM appointments
WHERE resource_id = $1
  AND status = 'booked'
  AND start_at < $3
  AND $2 < end_at`

// FindActiveIntervals returns the booked intervals of a resource that touch
// the half-open window [from, to). Run inside the booking transaction after
// the resource row lock so the result stays stable until commit.
func (r *AppointmentRepository) FindActiveIntervals(ctx context.Context, db infra.DBTX, resourceID uuid.UUID, from, to schedule.Instant) ([]schedule.BookedInterval, error) {
	rows, err := db.Query(ctx, activeIntervalsSQL, resourceID, from.Time(), to.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked intervals", err)
	}
	defer rows.Close()

	var intervals []schedule.BookedInterval
	for rows.Next() {
		var (
			rid      uuid.UUID
			start    pgtype.Timestamptz
			end      pgtype.Timestamptz
			interval schedule.BookedInterval
		)
		if err := rows.Scan(&rid, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked interval", err)
		}
		interval.ResourceID = rid
		interval.Start = schedule.InstantOf(start.Time)
		interval.End = schedule.InstantOf(end.Time)
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked intervals", err)
	}

	return intervals, nil
}

const findAppointmentSQL = `
SELECT id, resource_id, patient_id, start_at, end_at, status,
	requested_zone, resolved_offset_sec, ambiguity_policy, note,
	created_at, updated_at
FROM appointments
WHERE id = $1`

func (r *AppointmentRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*appointment.Appointment, error) {
	var (
		apptID     uuid.UUID
		resourceID uuid.UUID
		patientID  uuid.UUID
		startAt    pgtype.Timestamptz
		endAt      pgtype.Timestamptz
		status     string
		zone       string
		offsetSec  int
		policy     string
		note       pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := db.QueryRow(ctx, findAppointmentSQL, id).Scan(
		&apptID, &resourceID, &patientID, &startAt, &endAt, &status,
		&zone, &offsetSec, &policy, &note, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	slot, err := appointment.NewTimeSlot(schedule.InstantOf(startAt.Time), schedule.InstantOf(endAt.Time))
	if err != nil {
		return nil, infra.WrapRepoErr("stored appointment has invalid slot", err)
	}

	return appointment.ReconstructAppointment(
		apptID, resourceID, patientID,
		slot,
		appointment.Status(status),
		zone,
		offsetSec,
		schedule.AmbiguityPolicy(policy),
		appointment.NewNote(noteValue(note)),
		createdAt.Time, updatedAt.Time,
	), nil
}

const updateAppointmentStatusSQL = `
UPDATE appointments
SET status = $2, updated_at = now()
WHERE id = $1`

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status appointment.Status) error {
	tag, err := db.Exec(ctx, updateAppointmentStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func noteValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
