package schedule

import "time"

// Instant is an absolute point in time as Unix milliseconds, independent of
// any zone. All persisted and compared times in the system are Instants;
// wall-clock values only exist at the edges.
type Instant int64

func InstantOf(t time.Time) Instant {
	return Instant(t.UnixMilli())
}

func (i Instant) Time() time.Time {
	return time.UnixMilli(int64(i)).UTC()
}

func (i Instant) Before(other Instant) bool {
	return i < other
}

func (i Instant) After(other Instant) bool {
	return i > other
}

func (i Instant) Add(d time.Duration) Instant {
	return i + Instant(d.Milliseconds())
}

func (i Instant) Sub(other Instant) time.Duration {
	return time.Duration(i-other) * time.Millisecond
}
