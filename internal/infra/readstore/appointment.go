package readstore

import (
	"context"

	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/pgconv"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentReadStore struct {
	db infra.DBTX
}

func NewAppointmentReadStore(db infra.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: db}
}

const appointmentRowSQL = `
SELECT a.id, a.resource_id, r.name, r.zone, a.patient_id,
	a.start_at, a.end_at, a.status,
	a.requested_zone, a.resolved_offset_sec, a.ambiguity_policy, a.note,
	a.created_at, a.updated_at
FROM appointments a
JOIN resources r ON r.id = a.resource_id`

func (s *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentRow, error) {
	row := s.db.QueryRow(ctx, appointmentRowSQL+" WHERE a.id = $1", id)

	result, err := scanAppointmentRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment view", err)
	}
	return result, nil
}

func (s *AppointmentReadStore) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*queries.AppointmentRow, error) {
	rows, err := s.db.Query(ctx, appointmentRowSQL+" WHERE a.patient_id = $1 ORDER BY a.start_at DESC", patientID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query patient appointments", err)
	}
	defer rows.Close()

	return collectAppointmentRows(rows)
}

func (s *AppointmentReadStore) FindForResourceWindow(ctx context.Context, resourceID uuid.UUID, from, to schedule.Instant) ([]*queries.AppointmentRow, error) {
	rows, err := s.db.Query(ctx,
		appointmentRowSQL+` WHERE a.resource_id = $1
			AND a.status = 'booked'
			AND a.start_at < $3 AND $2 < a.end_at
		ORDER BY a.start_at`,
		resourceID, from.Time(), to.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query resource schedule", err)
	}
	defer rows.Close()

	return collectAppointmentRows(rows)
}

func collectAppointmentRows(rows pgx.Rows) ([]*queries.AppointmentRow, error) {
	var result []*queries.AppointmentRow
	for rows.Next() {
		r, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment view", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointment views", err)
	}
	return result, nil
}

func scanAppointmentRow(row pgx.Row) (*queries.AppointmentRow, error) {
	var (
		r         queries.AppointmentRow
		startAt   pgtype.Timestamptz
		endAt     pgtype.Timestamptz
		note      pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&r.ID, &r.ResourceID, &r.ResourceName, &r.ResourceZone, &r.PatientID,
		&startAt, &endAt, &r.Status,
		&r.RequestedZone, &r.ResolvedOffsetSec, &r.AmbiguityPolicy, &note,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Start = schedule.InstantOf(startAt.Time)
	r.End = schedule.InstantOf(endAt.Time)
	r.Note = pgconv.StringPtrFromPgtype(note)
	r.CreatedAt = createdAt.Time
	r.UpdatedAt = updatedAt.Time
	return &r, nil
}
