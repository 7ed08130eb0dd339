package schedule

import "github.com/google/uuid"

// BookedInterval is a committed reservation of a resource's time, half-open
// over absolute instants: [Start, End).
type BookedInterval struct {
	ResourceID uuid.UUID
	Start      Instant
	End        Instant
}

// Overlaps reports whether the interval intersects [start, end). Abutting
// intervals do not overlap, so back-to-back appointments are allowed.
func (b BookedInterval) Overlaps(start, end Instant) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// IsAvailable reports whether [start, end) is free for the resource given
// the already-booked intervals. Intervals for other resources are ignored.
// The caller is responsible for running this inside whatever serialized
// check-and-commit its store provides; the predicate itself is pure.
func IsAvailable(resourceID uuid.UUID, start, end Instant, existing []BookedInterval) bool {
	for _, b := range existing {
		if b.ResourceID != resourceID {
			continue
		}
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}
