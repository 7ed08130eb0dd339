package readstore

import (
	"context"

	"clinic-scheduler/internal/infra"
	"clinic-scheduler/internal/pkg/pgconv"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ResourceReadStore struct {
	db infra.DBTX
}

func NewResourceReadStore(db infra.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: db}
}

const resourceViewSQL = `
SELECT id, name, zone, lead_time_min, created_at, updated_at
FROM resources
WHERE id = $1`

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var (
		view      queries.ResourceView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, resourceViewSQL, id).Scan(
		&view.ID, &view.Name, &view.Zone, &view.LeadTimeMin, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource view", err)
	}

	view.CreatedAt = createdAt.Time
	view.UpdatedAt = updatedAt.Time
	return &view, nil
}
