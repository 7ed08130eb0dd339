//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"clinic-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	resourceID := uuid.New()
	otherResourceID := uuid.New()

	day := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) schedule.Instant {
		return schedule.InstantOf(day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute))
	}
	booked := func(id uuid.UUID, sh, sm, eh, em int) schedule.BookedInterval {
		return schedule.BookedInterval{ResourceID: id, Start: at(sh, sm), End: at(eh, em)}
	}

	tests := []struct {
		name     string
		start    schedule.Instant
		end      schedule.Instant
		existing []schedule.BookedInterval
		want     bool
	}{
		{
			name:  "no existing bookings",
			start: at(10, 0), end: at(10, 30),
			want: true,
		},
		{
			name:  "abutting after is allowed",
			start: at(10, 30), end: at(11, 0),
			existing: []schedule.BookedInterval{booked(resourceID, 10, 0, 10, 30)},
			want:     true,
		},
		{
			name:  "abutting before is allowed",
			start: at(10, 0), end: at(10, 30),
			existing: []schedule.BookedInterval{booked(resourceID, 10, 30, 11, 0)},
			want:     true,
		},
		{
			name:  "partial overlap conflicts",
			start: at(10, 15), end: at(10, 45),
			existing: []schedule.BookedInterval{booked(resourceID, 10, 0, 10, 30)},
			want:     false,
		},
		{
			name:  "candidate containing an existing booking conflicts",
			start: at(9, 0), end: at(12, 0),
			existing: []schedule.BookedInterval{booked(resourceID, 10, 0, 10, 30)},
			want:     false,
		},
		{
			name:  "candidate inside an existing booking conflicts",
			start: at(10, 10), end: at(10, 20),
			existing: []schedule.BookedInterval{booked(resourceID, 10, 0, 10, 30)},
			want:     false,
		},
		{
			name:  "identical interval conflicts",
			start: at(10, 0), end: at(10, 30),
			existing: []schedule.BookedInterval{booked(resourceID, 10, 0, 10, 30)},
			want:     false,
		},
		{
			name:  "other resource bookings are ignored",
			start: at(10, 0), end: at(10, 30),
			existing: []schedule.BookedInterval{booked(otherResourceID, 10, 0, 10, 30)},
			want:     true,
		},
		{
			name:  "first conflict among many wins",
			start: at(10, 45), end: at(11, 15),
			existing: []schedule.BookedInterval{
				booked(resourceID, 9, 0, 9, 30),
				booked(otherResourceID, 10, 45, 11, 15),
				booked(resourceID, 11, 0, 11, 30),
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.IsAvailable(resourceID, tc.start, tc.end, tc.existing)
			assert.Equal(t, tc.want, got)
		})
	}
}
