package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrEmptyZone           = errors.New("resource zone cannot be empty")
	ErrNegativeLeadTime    = errors.New("lead time cannot be negative")
)

const MaxResourceNameLength = 255

// Resource is a bookable clinic resource (a practitioner or a room). Its
// zone is the clinic wall-clock zone appointments are rendered in; zone
// validity against the tz database is the resolver's concern.
type Resource struct {
	id          uuid.UUID
	name        string
	zone        string
	leadTimeMin int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewResource(id uuid.UUID, name, zone string, leadTimeMin int) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return nil, ErrResourceNameTooLong
	}
	if strings.TrimSpace(zone) == "" {
		return nil, ErrEmptyZone
	}
	if leadTimeMin < 0 {
		return nil, ErrNegativeLeadTime
	}

	return &Resource{
		id:          id,
		name:        name,
		zone:        zone,
		leadTimeMin: leadTimeMin,
	}, nil
}

func ReconstructResource(id uuid.UUID, name, zone string, leadTimeMin int, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:          id,
		name:        name,
		zone:        zone,
		leadTimeMin: leadTimeMin,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Zone() string         { return r.zone }
func (r *Resource) LeadTimeMin() int     { return r.leadTimeMin }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
