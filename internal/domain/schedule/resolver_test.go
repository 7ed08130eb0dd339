//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"clinic-scheduler/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	zoneNewYork   = "America/New_York"
	zoneKathmandu = "Asia/Kathmandu"
	zoneUTC       = "UTC"
)

func newResolver() *schedule.Resolver {
	return schedule.NewResolver(schedule.NewLocationDB())
}

func localMoment(y int, mo time.Month, d, h, mi, s int) schedule.LocalMoment {
	return schedule.LocalMoment{Year: y, Month: mo, Day: d, Hour: h, Minute: mi, Second: s}
}

func TestClassify(t *testing.T) {
	r := newResolver()

	t.Run("normal moment has exactly one offset", func(t *testing.T) {
		c, err := r.Classify(localMoment(2023, time.June, 15, 12, 0, 0), zoneNewYork)
		require.NoError(t, err)
		assert.Equal(t, schedule.KindNormal, c.Kind)
		assert.Equal(t, -4*3600, c.Offset) // EDT
	})

	t.Run("spring forward gap", func(t *testing.T) {
		// 02:00-03:00 is skipped on 2023-03-12 in New York
		c, err := r.Classify(localMoment(2023, time.March, 12, 2, 30, 0), zoneNewYork)
		require.NoError(t, err)
		assert.Equal(t, schedule.KindGap, c.Kind)
	})

	t.Run("fall back overlap", func(t *testing.T) {
		// 01:00-02:00 occurs twice on 2023-11-05 in New York
		c, err := r.Classify(localMoment(2023, time.November, 5, 1, 30, 0), zoneNewYork)
		require.NoError(t, err)
		assert.Equal(t, schedule.KindOverlap, c.Kind)
		assert.Equal(t, -4*3600, c.EarlierOffset) // EDT reading comes first
		assert.Equal(t, -5*3600, c.LaterOffset)
	})

	t.Run("boundaries of the gap are normal", func(t *testing.T) {
		for _, tc := range []struct {
			name   string
			local  schedule.LocalMoment
			offset int
		}{
			{"last standard minute", localMoment(2023, time.March, 12, 1, 59, 59), -5 * 3600},
			{"first DST moment", localMoment(2023, time.March, 12, 3, 0, 0), -4 * 3600},
		} {
			t.Run(tc.name, func(t *testing.T) {
				c, err := r.Classify(tc.local, zoneNewYork)
				require.NoError(t, err)
				assert.Equal(t, schedule.KindNormal, c.Kind)
				assert.Equal(t, tc.offset, c.Offset)
			})
		}
	})

	t.Run("zone without DST is always normal", func(t *testing.T) {
		c, err := r.Classify(localMoment(2023, time.March, 12, 2, 30, 0), zoneKathmandu)
		require.NoError(t, err)
		assert.Equal(t, schedule.KindNormal, c.Kind)
		assert.Equal(t, 5*3600+45*60, c.Offset)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := r.Classify(localMoment(2023, time.June, 15, 12, 0, 0), "Mars/Olympus_Mons")
		assert.ErrorIs(t, err, schedule.ErrUnknownTimeZone)
	})
}

func TestToInstant(t *testing.T) {
	r := newResolver()

	t.Run("normal moment resolves deterministically", func(t *testing.T) {
		got, err := r.ToInstant(localMoment(2023, time.June, 15, 12, 0, 0), zoneNewYork, schedule.DefaultAmbiguityPolicy)
		require.NoError(t, err)

		want := schedule.InstantOf(time.Date(2023, time.June, 15, 16, 0, 0, 0, time.UTC))
		assert.Equal(t, want, got)
	})

	t.Run("gap is rejected, never coerced", func(t *testing.T) {
		_, err := r.ToInstant(localMoment(2023, time.March, 12, 2, 30, 0), zoneNewYork, schedule.DefaultAmbiguityPolicy)
		assert.ErrorIs(t, err, schedule.ErrInvalidLocalTime)
	})

	t.Run("overlap resolves per policy", func(t *testing.T) {
		local := localMoment(2023, time.November, 5, 1, 30, 0)

		earlier, err := r.ToInstant(local, zoneNewYork, schedule.PreferEarlierOffset)
		require.NoError(t, err)
		later, err := r.ToInstant(local, zoneNewYork, schedule.PreferLaterOffset)
		require.NoError(t, err)

		assert.True(t, earlier.Before(later))
		assert.Equal(t, time.Hour, later.Sub(earlier))

		// the earlier reading is the DST (-04:00) one
		wantEarlier := schedule.InstantOf(time.Date(2023, time.November, 5, 5, 30, 0, 0, time.UTC))
		assert.Equal(t, wantEarlier, earlier)
	})

	t.Run("default policy prefers the earlier offset", func(t *testing.T) {
		local := localMoment(2023, time.November, 5, 1, 30, 0)

		byDefault, err := r.ToInstant(local, zoneNewYork, schedule.DefaultAmbiguityPolicy)
		require.NoError(t, err)
		earlier, err := r.ToInstant(local, zoneNewYork, schedule.PreferEarlierOffset)
		require.NoError(t, err)

		assert.Equal(t, earlier, byDefault)
	})
}

func TestToZoned(t *testing.T) {
	r := newResolver()

	t.Run("total for any instant", func(t *testing.T) {
		instant := schedule.InstantOf(time.Date(2023, time.November, 5, 5, 30, 0, 0, time.UTC))

		zoned, err := r.ToZoned(instant, zoneNewYork)
		require.NoError(t, err)
		assert.Equal(t, localMoment(2023, time.November, 5, 1, 30, 0), zoned.Local())
		assert.Equal(t, -4*3600, zoned.Offset())
		assert.Equal(t, instant, zoned.Instant())
	})

	t.Run("round trip through a normal moment is lossless", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			utc  time.Time
			zone string
		}{
			{"summer new york", time.Date(2023, time.July, 1, 18, 15, 30, 0, time.UTC), zoneNewYork},
			{"winter new york", time.Date(2023, time.January, 10, 3, 0, 0, 0, time.UTC), zoneNewYork},
			{"kathmandu", time.Date(2025, time.May, 4, 9, 15, 0, 0, time.UTC), zoneKathmandu},
			{"utc", time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC), zoneUTC},
		} {
			t.Run(tc.name, func(t *testing.T) {
				instant := schedule.InstantOf(tc.utc)

				zoned, err := r.ToZoned(instant, tc.zone)
				require.NoError(t, err)

				back, err := r.ToInstant(zoned.Local(), tc.zone, schedule.DefaultAmbiguityPolicy)
				require.NoError(t, err)
				assert.Equal(t, instant, back)
			})
		}
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := r.ToZoned(schedule.InstantOf(time.Now()), "Not/AZone")
		assert.ErrorIs(t, err, schedule.ErrUnknownTimeZone)
	})
}

func TestConvertZone(t *testing.T) {
	r := newResolver()

	t.Run("preserves the underlying instant", func(t *testing.T) {
		instant := schedule.InstantOf(time.Date(2025, time.May, 4, 9, 15, 0, 0, time.UTC))

		ny, err := r.ToZoned(instant, zoneNewYork)
		require.NoError(t, err)

		ktm, err := r.ConvertZone(ny, zoneKathmandu)
		require.NoError(t, err)

		assert.Equal(t, instant, ktm.Instant())
		assert.Equal(t, zoneKathmandu, ktm.Zone())
		assert.Equal(t, 5*3600+45*60, ktm.Offset())
		assert.Equal(t, localMoment(2025, time.May, 4, 15, 0, 0), ktm.Local())
	})

	t.Run("conversion across a transition keeps the instant", func(t *testing.T) {
		// second occurrence of 01:30 on fall-back day
		instant := schedule.InstantOf(time.Date(2023, time.November, 5, 6, 30, 0, 0, time.UTC))

		ny, err := r.ToZoned(instant, zoneNewYork)
		require.NoError(t, err)
		assert.Equal(t, -5*3600, ny.Offset())

		utc, err := r.ConvertZone(ny, zoneUTC)
		require.NoError(t, err)
		assert.Equal(t, instant, utc.Instant())
	})
}

func TestIsDSTActive(t *testing.T) {
	r := newResolver()

	for _, tc := range []struct {
		name string
		utc  time.Time
		zone string
		want bool
	}{
		{"new york summer", time.Date(2023, time.July, 1, 12, 0, 0, 0, time.UTC), zoneNewYork, true},
		{"new york winter", time.Date(2023, time.January, 1, 12, 0, 0, 0, time.UTC), zoneNewYork, false},
		{"kathmandu never observes DST", time.Date(2023, time.July, 1, 12, 0, 0, 0, time.UTC), zoneKathmandu, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.IsDSTActive(schedule.InstantOf(tc.utc), tc.zone)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLocationDB(t *testing.T) {
	db := schedule.NewLocationDB()

	t.Run("caches loaded zones", func(t *testing.T) {
		first, err := db.Load(zoneNewYork)
		require.NoError(t, err)
		second, err := db.Load(zoneNewYork)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("rejects empty and unknown identifiers", func(t *testing.T) {
		_, err := db.Load("")
		assert.ErrorIs(t, err, schedule.ErrUnknownTimeZone)
		_, err = db.Load("Nowhere/Special")
		assert.ErrorIs(t, err, schedule.ErrUnknownTimeZone)
	})
}
