//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"clinic-scheduler/internal/domain/appointment"
	"clinic-scheduler/internal/domain/resource"
	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type factoryCase struct {
	name        string
	startOffset time.Duration
	durationMin int
	leadTimeMin int
	errIs       error
}

func newTestResource(t *testing.T, leadTimeMin int) *resource.Resource {
	t.Helper()
	res, err := resource.NewResource(uuid.New(), "Dr. Rivera", "America/New_York", leadTimeMin)
	require.NoError(t, err)
	return res
}

func defaultRules() appointment.BookingRules {
	return appointment.BookingRules{
		MinLeadTimeMin: 30,
		MinDurationMin: 15,
		MaxDurationMin: 240,
	}
}

func buildSlot(t *testing.T, startOffset time.Duration, durationMin int) appointment.TimeSlot {
	t.Helper()
	start := schedule.InstantOf(testNow.Add(startOffset))
	slot, err := appointment.NewTimeSlot(start, start.Add(time.Duration(durationMin)*time.Minute))
	require.NoError(t, err)
	return slot
}

func TestFactoryCreateAppointment(t *testing.T) {
	cases := []factoryCase{
		{
			name:        "books well inside lead time",
			startOffset: 2 * time.Hour,
			durationMin: 30,
			leadTimeMin: 60,
		},
		{
			name:        "rejects start inside resource lead time",
			startOffset: 30 * time.Minute,
			durationMin: 30,
			leadTimeMin: 60,
			errIs:       appointment.ErrInsufficientLeadTime,
		},
		{
			name:        "clinic minimum lead applies when resource has none",
			startOffset: 10 * time.Minute,
			durationMin: 30,
			leadTimeMin: 0,
			errIs:       appointment.ErrInsufficientLeadTime,
		},
		{
			name:        "rejects duration below clinic minimum",
			startOffset: 2 * time.Hour,
			durationMin: 10,
			leadTimeMin: 0,
			errIs:       appointment.ErrDurationTooShort,
		},
		{
			name:        "rejects duration above clinic maximum",
			startOffset: 2 * time.Hour,
			durationMin: 300,
			leadTimeMin: 0,
			errIs:       appointment.ErrDurationTooLong,
		},
		{
			name:        "accepts duration at clinic maximum",
			startOffset: 2 * time.Hour,
			durationMin: 240,
			leadTimeMin: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			factory := appointment.NewFactory(clock.NewMockClock(testNow), defaultRules())
			res := newTestResource(t, tc.leadTimeMin)
			slot := buildSlot(t, tc.startOffset, tc.durationMin)

			appt, err := factory.CreateAppointment(
				res,
				uuid.New(),
				slot,
				"America/New_York",
				-4*3600,
				schedule.PreferEarlierOffset,
				appointment.NewNote(""),
			)

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, appt)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, appt)
			assert.Equal(t, appointment.StatusBooked, appt.Status())
			assert.Equal(t, res.ID(), appt.ResourceID())
			assert.Equal(t, slot.Start(), appt.Interval().Start)
		})
	}
}

func TestAppointmentCancel(t *testing.T) {
	factory := appointment.NewFactory(clock.NewMockClock(testNow), defaultRules())
	res := newTestResource(t, 0)
	slot := buildSlot(t, 2*time.Hour, 30)

	appt, err := factory.CreateAppointment(
		res, uuid.New(), slot, "America/New_York", -4*3600,
		schedule.PreferEarlierOffset, appointment.NewNote("follow-up"),
	)
	require.NoError(t, err)

	require.NoError(t, appt.Cancel())
	assert.Equal(t, appointment.StatusCanceled, appt.Status())
	assert.False(t, appt.IsActive())

	assert.ErrorIs(t, appt.Cancel(), appointment.ErrAppointmentCanceled)
}

func TestNewAppointmentDefaults(t *testing.T) {
	slot := buildSlot(t, time.Hour, 30)

	t.Run("empty requested zone is rejected", func(t *testing.T) {
		_, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), slot, "", 0, schedule.PreferEarlierOffset, appointment.NewNote(""),
		)
		assert.ErrorIs(t, err, appointment.ErrEmptyRequestedZone)
	})

	t.Run("unknown policy falls back to the default", func(t *testing.T) {
		appt, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), slot, "America/New_York", 0, schedule.AmbiguityPolicy("whatever"), appointment.NewNote(""),
		)
		require.NoError(t, err)
		assert.Equal(t, schedule.DefaultAmbiguityPolicy, appt.Policy())
	})
}

func TestTimeSlot(t *testing.T) {
	start := schedule.InstantOf(testNow)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := appointment.NewTimeSlot(start, start)
		assert.ErrorIs(t, err, appointment.ErrInvalidTimeSlot)

		_, err = appointment.NewTimeSlot(start.Add(time.Hour), start)
		assert.ErrorIs(t, err, appointment.ErrInvalidTimeSlot)
	})

	t.Run("duration and range rendering", func(t *testing.T) {
		slot, err := appointment.NewTimeSlot(start, start.Add(45*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 45*time.Minute, slot.Duration())
		assert.Equal(t, "[2025-06-01T12:00:00Z,2025-06-01T12:45:00Z)", slot.ToTstzrange())
	})

	t.Run("lead time boundary", func(t *testing.T) {
		slot, err := appointment.NewTimeSlot(start.Add(30*time.Minute), start.Add(time.Hour))
		require.NoError(t, err)

		assert.True(t, slot.MeetsLeadTimeAt(testNow, 29))
		// start exactly at now+lead is not strictly after the cutoff
		assert.False(t, slot.MeetsLeadTimeAt(testNow, 30))
		assert.False(t, slot.MeetsLeadTimeAt(testNow, 31))
	})
}
