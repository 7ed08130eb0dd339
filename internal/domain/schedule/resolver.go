package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidLocalTime = errors.New("local time does not exist in zone")

// LocalMoment is a calendar date plus wall-clock time with no attached zone.
type LocalMoment struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

func LocalMomentOf(t time.Time) LocalMoment {
	return LocalMoment{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (l LocalMoment) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second)
}

// naiveUTC reads the wall-clock fields as if they were UTC. The real instant
// differs from this by exactly the zone offset in effect.
func (l LocalMoment) naiveUTC() time.Time {
	return time.Date(l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second, 0, time.UTC)
}

// ZonedMoment is a LocalMoment bound to a zone and the concrete UTC offset
// resolved for it. Only the resolver constructs these, so the offset is
// always one legally observable for the moment in that zone.
type ZonedMoment struct {
	local  LocalMoment
	zone   string
	offset int // seconds east of UTC
}

func (z ZonedMoment) Local() LocalMoment { return z.local }
func (z ZonedMoment) Zone() string       { return z.zone }
func (z ZonedMoment) Offset() int        { return z.offset }

// Instant returns the absolute point in time this moment denotes. The carried
// offset makes the conversion unambiguous regardless of DST transitions.
func (z ZonedMoment) Instant() Instant {
	return InstantOf(z.local.naiveUTC().Add(-time.Duration(z.offset) * time.Second))
}

func (z ZonedMoment) String() string {
	sign := "+"
	off := z.offset
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%s%02d:%02d[%s]", z.local, sign, off/3600, off%3600/60, z.zone)
}

type ClassificationKind string

const (
	KindNormal  ClassificationKind = "normal"
	KindGap     ClassificationKind = "gap"
	KindOverlap ClassificationKind = "overlap"
)

// Classification is the result of testing a local moment against a zone's
// transition rules: exactly one valid offset (Normal), none (Gap, the moment
// was skipped by a spring-forward transition) or two (Overlap, the moment
// occurs twice around a fall-back transition).
type Classification struct {
	Kind ClassificationKind

	// Offset is set for KindNormal.
	Offset int

	// EarlierOffset and LaterOffset are set for KindOverlap. EarlierOffset
	// is the one yielding the earlier instant, i.e. the numerically larger
	// (DST) offset.
	EarlierOffset int
	LaterOffset   int
}

// AmbiguityPolicy picks one of the two readings of an overlapping local
// moment. The default prefers the earlier instant (the DST-active reading).
type AmbiguityPolicy string

const (
	PreferEarlierOffset AmbiguityPolicy = "prefer_earlier_offset"
	PreferLaterOffset   AmbiguityPolicy = "prefer_later_offset"
)

const DefaultAmbiguityPolicy = PreferEarlierOffset

func (p AmbiguityPolicy) IsValid() bool {
	switch p {
	case PreferEarlierOffset, PreferLaterOffset:
		return true
	default:
		return false
	}
}

func (p AmbiguityPolicy) String() string {
	return string(p)
}

// Resolver converts between local wall-clock moments, UTC instants and zoned
// moments. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	zones ZoneDB
}

func NewResolver(zones ZoneDB) *Resolver {
	return &Resolver{zones: zones}
}

// Zone transitions are at least days apart, so sampling the offset one day
// either side of the naive reading sees every offset that could apply.
const offsetProbeWindow = 24 * time.Hour

// Classify tests a local moment against the zone's transition rules.
func (r *Resolver) Classify(local LocalMoment, zoneID string) (Classification, error) {
	loc, err := r.zones.Load(zoneID)
	if err != nil {
		return Classification{}, err
	}

	valid := validOffsets(local, loc)
	switch len(valid) {
	case 0:
		return Classification{Kind: KindGap}, nil
	case 1:
		return Classification{Kind: KindNormal, Offset: valid[0]}, nil
	default:
		// valid is sorted descending: the larger offset subtracts more from
		// the naive reading and therefore denotes the earlier instant.
		return Classification{
			Kind:          KindOverlap,
			EarlierOffset: valid[0],
			LaterOffset:   valid[len(valid)-1],
		}, nil
	}
}

// ToInstant resolves a local moment to the absolute instant it denotes.
// A moment inside a DST gap has no corresponding instant and is rejected
// with ErrInvalidLocalTime, never coerced to a nearby valid time. An
// ambiguous moment is resolved per policy.
func (r *Resolver) ToInstant(local LocalMoment, zoneID string, policy AmbiguityPolicy) (Instant, error) {
	c, err := r.Classify(local, zoneID)
	if err != nil {
		return 0, err
	}

	switch c.Kind {
	case KindNormal:
		return instantAtOffset(local, c.Offset), nil
	case KindOverlap:
		if policy == PreferLaterOffset {
			return instantAtOffset(local, c.LaterOffset), nil
		}
		return instantAtOffset(local, c.EarlierOffset), nil
	default:
		return 0, fmt.Errorf("%w: %s in %s", ErrInvalidLocalTime, local, zoneID)
	}
}

// ToZoned re-zones an instant. Total for any known zone.
func (r *Resolver) ToZoned(instant Instant, zoneID string) (ZonedMoment, error) {
	loc, err := r.zones.Load(zoneID)
	if err != nil {
		return ZonedMoment{}, err
	}

	t := instant.Time().In(loc)
	_, offset := t.Zone()
	return ZonedMoment{
		local:  LocalMomentOf(t),
		zone:   zoneID,
		offset: offset,
	}, nil
}

// IsDSTActive reports whether the offset in effect at the instant differs
// from the zone's standard offset.
func (r *Resolver) IsDSTActive(instant Instant, zoneID string) (bool, error) {
	loc, err := r.zones.Load(zoneID)
	if err != nil {
		return false, err
	}
	return instant.Time().In(loc).IsDST(), nil
}

// ConvertZone re-derives a zoned moment in another zone. The underlying
// instant is preserved exactly.
func (r *Resolver) ConvertZone(zoned ZonedMoment, targetZoneID string) (ZonedMoment, error) {
	return r.ToZoned(zoned.Instant(), targetZoneID)
}

func instantAtOffset(local LocalMoment, offset int) Instant {
	return InstantOf(local.naiveUTC().Add(-time.Duration(offset) * time.Second))
}

// validOffsets returns the offsets under which the local moment round-trips,
// sorted descending (earlier instant first).
func validOffsets(local LocalMoment, loc *time.Location) []int {
	naive := local.naiveUTC()

	candidates := make(map[int]struct{}, 3)
	for _, probe := range []time.Time{
		naive.Add(-offsetProbeWindow),
		naive,
		naive.Add(offsetProbeWindow),
	} {
		_, off := probe.In(loc).Zone()
		candidates[off] = struct{}{}
	}

	valid := make([]int, 0, 2)
	for off := range candidates {
		instant := naive.Add(-time.Duration(off) * time.Second)
		if _, actual := instant.In(loc).Zone(); actual == off {
			valid = append(valid, off)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	return valid
}
