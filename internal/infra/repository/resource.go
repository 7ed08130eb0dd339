package repository

import (
	"context"

	"clinic-scheduler/internal/domain/resource"
	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ResourceRepository struct{}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{}
}

const findResourceSQL = `
SELECT id, name, zone, lead_time_min, created_at, updated_at
FROM resources
WHERE id = $1`

func (r *ResourceRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*resource.Resource, error) {
	var (
		resID       uuid.UUID
		name        string
		zone        string
		leadTimeMin int
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := db.QueryRow(ctx, findResourceSQL, id).Scan(
		&resID, &name, &zone, &leadTimeMin, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	return resource.ReconstructResource(resID, name, zone, leadTimeMin, createdAt.Time, updatedAt.Time), nil
}

const lockResourceSQL = `
SELECT id FROM resources WHERE id = $1 FOR UPDATE`

// LockForBooking serializes bookings per resource. Every booking transaction
// takes this row lock before checking availability, which is what makes the
// check-then-insert race-free.
func (r *ResourceRepository) LockForBooking(ctx context.Context, db infra.DBTX, id uuid.UUID) error {
	var locked uuid.UUID
	err := db.QueryRow(ctx, lockResourceSQL, id).Scan(&locked)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock resource", err)
	}
	return nil
}
