//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleQueries() queries.ScheduleQueries {
	resolver := schedule.NewResolver(schedule.NewLocationDB())
	return queries.NewScheduleQueries(resolver)
}

func TestScheduleResolve(t *testing.T) {
	q := newScheduleQueries()
	ctx := context.Background()

	t.Run("normal local time yields one candidate", func(t *testing.T) {
		local := schedule.LocalMoment{Year: 2023, Month: time.June, Day: 15, Hour: 10, Minute: 30}

		view, err := q.Resolve(ctx, local, "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, "normal", view.Kind)
		require.Len(t, view.Candidates, 1)
		assert.Equal(t, "-04:00", view.Candidates[0].Offset)
		assert.True(t, view.Candidates[0].DSTActive)
		assert.Equal(t, time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC), view.Candidates[0].InstantUTC.UTC())
	})

	t.Run("overlap yields earlier and later candidates in order", func(t *testing.T) {
		local := schedule.LocalMoment{Year: 2023, Month: time.November, Day: 5, Hour: 1, Minute: 30}

		view, err := q.Resolve(ctx, local, "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, "overlap", view.Kind)
		expected := []queries.ResolutionCandidate{
			{
				Offset:     "-04:00",
				InstantUTC: time.Date(2023, 11, 5, 5, 30, 0, 0, time.UTC),
				UnixMilli:  1699162200000,
				DSTActive:  true,
			},
			{
				Offset:     "-05:00",
				InstantUTC: time.Date(2023, 11, 5, 6, 30, 0, 0, time.UTC),
				UnixMilli:  1699165800000,
				DSTActive:  false,
			},
		}
		assert.Empty(t, cmp.Diff(expected, view.Candidates))
	})

	t.Run("gap is a preview result, not an error", func(t *testing.T) {
		local := schedule.LocalMoment{Year: 2023, Month: time.March, Day: 12, Hour: 2, Minute: 30}

		view, err := q.Resolve(ctx, local, "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, "gap", view.Kind)
		assert.Empty(t, view.Candidates)
	})

	t.Run("fixed-offset zone never overlaps", func(t *testing.T) {
		local := schedule.LocalMoment{Year: 2023, Month: time.November, Day: 5, Hour: 1, Minute: 30}

		view, err := q.Resolve(ctx, local, "Asia/Kathmandu")
		require.NoError(t, err)

		assert.Equal(t, "normal", view.Kind)
		require.Len(t, view.Candidates, 1)
		assert.Equal(t, "+05:45", view.Candidates[0].Offset)
	})

	t.Run("unknown zone is rejected", func(t *testing.T) {
		local := schedule.LocalMoment{Year: 2023, Month: time.June, Day: 15, Hour: 10}

		_, err := q.Resolve(ctx, local, "Mars/Olympus")
		assert.ErrorIs(t, err, errs.ErrUnknownTimeZone)
	})
}
