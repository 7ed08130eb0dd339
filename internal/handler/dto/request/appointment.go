package request

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

var ErrInvalidLocalFormat = errors.New("invalid date or time format")

type CreateAppointmentRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	// Local wall-clock reading as the patient sees it; resolution against
	// the zone happens in the usecase, never here.
	Date            string `json:"date" binding:"required"` // 2006-01-02
	Time            string `json:"time" binding:"required"` // 15:04 or 15:04:05
	Zone            string `json:"zone"`
	DurationMin     int    `json:"duration_min" binding:"required,min=1"`
	AmbiguityPolicy string `json:"ambiguity_policy"`
	Note            string `json:"note"`
}

func (r CreateAppointmentRequest) ToLocalMoment() (schedule.LocalMoment, error) {
	return parseLocalMoment(r.Date, r.Time)
}

func (r CreateAppointmentRequest) Policy() schedule.AmbiguityPolicy {
	return schedule.AmbiguityPolicy(r.AmbiguityPolicy)
}

func parseLocalMoment(date, clock string) (schedule.LocalMoment, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return schedule.LocalMoment{}, ErrInvalidLocalFormat
	}

	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return schedule.LocalMoment{}, ErrInvalidLocalFormat
		}
	}

	return schedule.LocalMoment{
		Year:   d.Year(),
		Month:  d.Month(),
		Day:    d.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}, nil
}
