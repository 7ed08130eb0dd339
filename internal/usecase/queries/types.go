package queries

import (
	"time"

	"clinic-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// ZonedTimeView is one instant rendered for a specific zone, with enough
// context for a client to explain which reading of an ambiguous wall clock
// it is.
type ZonedTimeView struct {
	Zone      string `json:"zone"`
	Local     string `json:"local"`
	Offset    string `json:"offset"`
	DSTActive bool   `json:"dst_active"`
}

type AppointmentView struct {
	ID              uuid.UUID      `json:"id"`
	ResourceID      uuid.UUID      `json:"resource_id"`
	ResourceName    string         `json:"resource_name"`
	PatientID       uuid.UUID      `json:"patient_id"`
	StartUTC        time.Time      `json:"start_utc"`
	EndUTC          time.Time      `json:"end_utc"`
	DurationMin     int            `json:"duration_min"`
	Status          string         `json:"status"`
	RequestedZone   string         `json:"requested_zone"`
	AmbiguityPolicy string         `json:"ambiguity_policy"`
	ClinicStart     ZonedTimeView  `json:"clinic_start"`
	ViewerStart     *ZonedTimeView `json:"viewer_start,omitempty"`
	Note            *string        `json:"note,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type AppointmentListItem struct {
	ID           uuid.UUID     `json:"id"`
	ResourceID   uuid.UUID     `json:"resource_id"`
	ResourceName string        `json:"resource_name"`
	StartUTC     time.Time     `json:"start_utc"`
	EndUTC       time.Time     `json:"end_utc"`
	Status       string        `json:"status"`
	ClinicStart  ZonedTimeView `json:"clinic_start"`
	CreatedAt    time.Time     `json:"created_at"`
}

type BookedSlotView struct {
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	StartLocal string    `json:"start_local"`
	EndLocal   string    `json:"end_local"`
}

type DayScheduleView struct {
	ResourceID uuid.UUID        `json:"resource_id"`
	Date       string           `json:"date"`
	Zone       string           `json:"zone"`
	Slots      []BookedSlotView `json:"slots"`
}

type ResourceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Zone        string    `json:"zone"`
	LeadTimeMin int       `json:"lead_time_min"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// AppointmentRow is the raw read-store row before zone rendering.
type AppointmentRow struct {
	ID                uuid.UUID
	ResourceID        uuid.UUID
	ResourceName      string
	ResourceZone      string
	PatientID         uuid.UUID
	Start             schedule.Instant
	End               schedule.Instant
	Status            string
	RequestedZone     string
	ResolvedOffsetSec int
	AmbiguityPolicy   string
	Note              *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
