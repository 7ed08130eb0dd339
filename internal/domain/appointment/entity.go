package appointment

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrAppointmentCanceled = errors.New("appointment is already canceled")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrEmptyRequestedZone  = errors.New("requested zone cannot be empty")
)

// Appointment is a committed booking of a resource's time slot. The slot is
// stored as UTC instants; requestedZone, resolvedOffset and policy record
// how the patient's wall-clock input was resolved, so an ambiguous reading
// can always be explained after the fact.
type Appointment struct {
	id             uuid.UUID
	resourceID     uuid.UUID
	patientID      uuid.UUID
	slot           TimeSlot
	status         Status
	requestedZone  string
	resolvedOffset int
	policy         schedule.AmbiguityPolicy
	note           Note
	createdAt      time.Time
	updatedAt      time.Time
}

func NewAppointment(
	resourceID, patientID uuid.UUID,
	slot TimeSlot,
	requestedZone string,
	resolvedOffset int,
	policy schedule.AmbiguityPolicy,
	note Note,
) (*Appointment, error) {
	if requestedZone == "" {
		return nil, ErrEmptyRequestedZone
	}
	if !policy.IsValid() {
		policy = schedule.DefaultAmbiguityPolicy
	}

	return &Appointment{
		id:             uuid.New(),
		resourceID:     resourceID,
		patientID:      patientID,
		slot:           slot,
		status:         StatusBooked,
		requestedZone:  requestedZone,
		resolvedOffset: resolvedOffset,
		policy:         policy,
		note:           note,
	}, nil
}

func ReconstructAppointment(
	id, resourceID, patientID uuid.UUID,
	slot TimeSlot,
	status Status,
	requestedZone string,
	resolvedOffset int,
	policy schedule.AmbiguityPolicy,
	note Note,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:             id,
		resourceID:     resourceID,
		patientID:      patientID,
		slot:           slot,
		status:         status,
		requestedZone:  requestedZone,
		resolvedOffset: resolvedOffset,
		policy:         policy,
		note:           note,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (a *Appointment) Cancel() error {
	if a.status == StatusCanceled {
		return ErrAppointmentCanceled
	}
	a.status = StatusCanceled
	return nil
}

func (a *Appointment) IsActive() bool {
	return a.status == StatusBooked
}

func (a *Appointment) HasExpired(now time.Time) bool {
	return schedule.InstantOf(now).After(a.slot.End())
}

// Interval is the appointment as seen by the slot guard.
func (a *Appointment) Interval() schedule.BookedInterval {
	return schedule.BookedInterval{
		ResourceID: a.resourceID,
		Start:      a.slot.Start(),
		End:        a.slot.End(),
	}
}

func (a *Appointment) ID() uuid.UUID                    { return a.id }
func (a *Appointment) ResourceID() uuid.UUID            { return a.resourceID }
func (a *Appointment) PatientID() uuid.UUID             { return a.patientID }
func (a *Appointment) Slot() TimeSlot                   { return a.slot }
func (a *Appointment) Status() Status                   { return a.status }
func (a *Appointment) RequestedZone() string            { return a.requestedZone }
func (a *Appointment) ResolvedOffset() int              { return a.resolvedOffset }
func (a *Appointment) Policy() schedule.AmbiguityPolicy { return a.policy }
func (a *Appointment) Note() Note                       { return a.note }
func (a *Appointment) CreatedAt() time.Time             { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time             { return a.updatedAt }
