//go:build unit || e2e

package builder

import (
	"time"

	reqdto "clinic-scheduler/internal/handler/dto/request"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AppointmentBuilder struct {
	ID              uuid.UUID
	ResourceID      uuid.UUID
	ResourceName    string
	PatientID       uuid.UUID
	Date            string
	Time            string
	Zone            string
	DurationMin     int
	AmbiguityPolicy string
	Note            string
	Status          string
	StartUTC        time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		ID:           uuid.New(),
		ResourceID:   uuid.New(),
		ResourceName: "Dr. Rivera",
		PatientID:    uuid.New(),
		Date:         "2025-06-10",
		Time:         "09:30",
		Zone:         "America/New_York",
		DurationMin:  30,
		Status:       "booked",
		// 2025-06-10T09:30 EDT
		StartUTC: time.Date(2025, 6, 10, 13, 30, 0, 0, time.UTC),
	}
}

func (b *AppointmentBuilder) WithResourceID(id uuid.UUID) *AppointmentBuilder {
	b.ResourceID = id
	return b
}

func (b *AppointmentBuilder) WithLocal(date, clock, zone string) *AppointmentBuilder {
	b.Date = date
	b.Time = clock
	b.Zone = zone
	return b
}

func (b *AppointmentBuilder) WithPolicy(policy string) *AppointmentBuilder {
	b.AmbiguityPolicy = policy
	return b
}

func (b *AppointmentBuilder) BuildDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		ResourceID:      b.ResourceID,
		Date:            b.Date,
		Time:            b.Time,
		Zone:            b.Zone,
		DurationMin:     b.DurationMin,
		AmbiguityPolicy: b.AmbiguityPolicy,
		Note:            b.Note,
	}
}

func (b *AppointmentBuilder) BuildReadModel() *queries.AppointmentView {
	view := &queries.AppointmentView{
		ID:              b.ID,
		ResourceID:      b.ResourceID,
		ResourceName:    b.ResourceName,
		PatientID:       b.PatientID,
		StartUTC:        b.StartUTC,
		EndUTC:          b.StartUTC.Add(time.Duration(b.DurationMin) * time.Minute),
		DurationMin:     b.DurationMin,
		Status:          b.Status,
		RequestedZone:   b.Zone,
		AmbiguityPolicy: "prefer_earlier_offset",
		ClinicStart: queries.ZonedTimeView{
			Zone:      b.Zone,
			Local:     b.Date + "T" + b.Time + ":00",
			Offset:    "-04:00",
			DSTActive: true,
		},
		CreatedAt: b.StartUTC.Add(-24 * time.Hour),
		UpdatedAt: b.StartUTC.Add(-24 * time.Hour),
	}
	if b.Note != "" {
		note := b.Note
		view.Note = &note
	}
	return view
}

func (b *AppointmentBuilder) BuildListItem() *queries.AppointmentListItem {
	var item queries.AppointmentListItem
	_ = copier.Copy(&item, b.BuildReadModel())
	return &item
}
