package appointment

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/resource"
	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrDurationTooShort = errors.New("appointment duration is too short")
	ErrDurationTooLong  = errors.New("appointment duration is too long")
)

// BookingRules are clinic-wide constraints applied on top of per-resource
// lead time.
type BookingRules struct {
	MinLeadTimeMin int
	MinDurationMin int
	MaxDurationMin int
}

type Factory struct {
	clock clock.Clock
	rules BookingRules
}

func NewFactory(clk clock.Clock, rules BookingRules) *Factory {
	return &Factory{
		clock: clk,
		rules: rules,
	}
}

func (f *Factory) CreateAppointment(
	res *resource.Resource,
	patientID uuid.UUID,
	slot TimeSlot,
	requestedZone string,
	resolvedOffset int,
	policy schedule.AmbiguityPolicy,
	note Note,
) (*Appointment, error) {
	if err := f.validateDuration(slot.Duration()); err != nil {
		return nil, err
	}

	lead := res.LeadTimeMin()
	if lead < f.rules.MinLeadTimeMin {
		lead = f.rules.MinLeadTimeMin
	}
	if err := slot.ValidateLeadTimeAt(f.clock.Now(), lead); err != nil {
		return nil, err
	}

	return NewAppointment(res.ID(), patientID, slot, requestedZone, resolvedOffset, policy, note)
}

func (f *Factory) validateDuration(d time.Duration) error {
	if f.rules.MinDurationMin > 0 && d < time.Duration(f.rules.MinDurationMin)*time.Minute {
		return ErrDurationTooShort
	}
	if f.rules.MaxDurationMin > 0 && d > time.Duration(f.rules.MaxDurationMin)*time.Minute {
		return ErrDurationTooLong
	}
	return nil
}
