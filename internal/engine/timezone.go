package engine

import (
	"fmt"
	"sync"
	"time"
)

// ZoneTable is the process-wide timezone table used by textual timestamp
// input/output (spec.md §6's Timezone option). Resolving an IANA name
// touches the system tz database, so lookups are cached: a core operation
// must never block on repeated filesystem access for a name it has already
// resolved.
type ZoneTable struct {
	mu    sync.RWMutex
	zones map[string]*time.Location
}

// NewZoneTable returns an empty table backed by the system tz database.
func NewZoneTable() *ZoneTable {
	return &ZoneTable{zones: make(map[string]*time.Location)}
}

// Load resolves name to a *time.Location, caching the result. An empty name
// resolves to UTC, matching the Timezone option's default.
func (z *ZoneTable) Load(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}
	z.mu.RLock()
	loc, ok := z.zones[name]
	z.mu.RUnlock()
	if ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("engine: unknown timezone %q: %w", name, err)
	}
	z.mu.Lock()
	z.zones[name] = loc
	z.mu.Unlock()
	return loc, nil
}

// IsValid reports whether name resolves in the system tz database, without
// surfacing the underlying error.
func (z *ZoneTable) IsValid(name string) bool {
	_, err := z.Load(name)
	return err == nil
}

// ConvertTime converts utcTime into the given named timezone, used when
// printing a timestamp under a non-UTC Timezone option.
func (z *ZoneTable) ConvertTime(utcTime time.Time, name string) (time.Time, error) {
	loc, err := z.Load(name)
	if err != nil {
		return utcTime, err
	}
	return utcTime.In(loc), nil
}
