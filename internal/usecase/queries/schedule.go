package queries

import (
	"context"
	"time"

	"clinic-scheduler/internal/domain/schedule"
	"clinic-scheduler/internal/pkg/errs"
)

type ResolutionCandidate struct {
	Offset     string    `json:"offset"`
	InstantUTC time.Time `json:"instant_utc"`
	UnixMilli  int64     `json:"unix_milli"`
	DSTActive  bool      `json:"dst_active"`
}

// ResolutionView is a classification preview: what booking this local
// moment in this zone would mean. A gap is a legitimate preview result
// (kind "gap", no candidates), not an error.
type ResolutionView struct {
	Local      string                `json:"local"`
	Zone       string                `json:"zone"`
	Kind       string                `json:"kind"`
	Candidates []ResolutionCandidate `json:"candidates"`
}

type ScheduleQueries interface {
	Resolve(ctx context.Context, local schedule.LocalMoment, zoneID string) (*ResolutionView, error)
}

type scheduleQueriesImpl struct {
	resolver *schedule.Resolver
}

func NewScheduleQueries(resolver *schedule.Resolver) ScheduleQueries {
	return &scheduleQueriesImpl{resolver: resolver}
}

func (q *scheduleQueriesImpl) Resolve(_ context.Context, local schedule.LocalMoment, zoneID string) (*ResolutionView, error) {
	c, err := q.resolver.Classify(local, zoneID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
	}

	view := &ResolutionView{
		Local: local.String(),
		Zone:  zoneID,
		Kind:  string(c.Kind),
	}

	offsets := []int{}
	switch c.Kind {
	case schedule.KindNormal:
		offsets = append(offsets, c.Offset)
	case schedule.KindOverlap:
		offsets = append(offsets, c.EarlierOffset, c.LaterOffset)
	}

	for _, off := range offsets {
		policy := schedule.PreferEarlierOffset
		if c.Kind == schedule.KindOverlap && off == c.LaterOffset {
			policy = schedule.PreferLaterOffset
		}
		instant, err := q.resolver.ToInstant(local, zoneID, policy)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		dst, err := q.resolver.IsDSTActive(instant, zoneID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
		}
		view.Candidates = append(view.Candidates, ResolutionCandidate{
			Offset:     schedule.FormatOffset(off),
			InstantUTC: instant.Time(),
			UnixMilli:  int64(instant),
			DSTActive:  dst,
		})
	}

	return view, nil
}
