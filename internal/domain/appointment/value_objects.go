package appointment

import (
	"errors"
	"fmt"
	"time"

	"clinic-scheduler/internal/domain/schedule"
)

var (
	ErrInvalidTimeSlot      = errors.New("invalid time slot")
	ErrInsufficientLeadTime = errors.New("insufficient lead time")
)

// TimeSlot is the half-open absolute interval [start, end) an appointment
// occupies. Both bounds are UTC-anchored instants; local wall-clock readings
// never reach this type without going through the resolver first.
type TimeSlot struct {
	start schedule.Instant
	end   schedule.Instant
}

func NewTimeSlot(start, end schedule.Instant) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() schedule.Instant { return ts.start }
func (ts TimeSlot) End() schedule.Instant   { return ts.end }

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)",
		ts.start.Time().Format(time.RFC3339),
		ts.end.Time().Format(time.RFC3339))
}

func (ts TimeSlot) MeetsLeadTimeAt(now time.Time, leadTimeMinutes int) bool {
	required := schedule.InstantOf(now.Add(time.Duration(leadTimeMinutes) * time.Minute))
	return ts.start.After(required)
}

func (ts TimeSlot) ValidateLeadTimeAt(now time.Time, leadTimeMinutes int) error {
	if !ts.MeetsLeadTimeAt(now, leadTimeMinutes) {
		return ErrInsufficientLeadTime
	}
	return nil
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
