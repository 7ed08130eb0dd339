package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrUnknownTimeZone = errors.New("unknown time zone")

// ZoneDB resolves an IANA zone identifier to its offset-transition rules.
// The resolver depends on this instead of calling time.LoadLocation directly
// so the rule source stays a replaceable collaborator.
type ZoneDB interface {
	Load(id string) (*time.Location, error)
}

// LocationDB is the default ZoneDB backed by the platform tz database.
// Lookups are cached; safe for concurrent use.
type LocationDB struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

func NewLocationDB() *LocationDB {
	return &LocationDB{
		cache: make(map[string]*time.Location),
	}
}

func (db *LocationDB) Load(id string) (*time.Location, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownTimeZone)
	}

	db.mu.RLock()
	loc, ok := db.cache[id]
	db.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimeZone, id)
	}

	db.mu.Lock()
	db.cache[id] = loc
	db.mu.Unlock()

	return loc, nil
}
