package sensor

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrSensorUnavailable reports a missing compass. Captures still run;
	// the heading degrades to last-known or undefined.
	ErrSensorUnavailable = errors.New("sensor: compass unavailable")

	// ErrLocationUnavailable reports that no GPS fix can be produced.
	// The filename contract needs coordinates, so this blocks capture.
	ErrLocationUnavailable = errors.New("sensor: location unavailable")
)

// Snapshot is the latest known sensor state. Immutable once created;
// the Store replaces it wholesale as updates arrive.
type Snapshot struct {
	Heading    float64 // degrees clockwise from magnetic north, [0,360)
	HasHeading bool    // false until the compass first reports
	Latitude   float64
	Longitude  float64
	HasFix     bool      // true once any fix has arrived
	FixAt      time.Time // when the current fix arrived
	CapturedAt time.Time // when any field last changed
}

// Store holds the most recent Snapshot. Readers always get the latest
// value without blocking; writers replace the whole value, never a
// single field, so a reader can never observe a torn update.
type Store struct {
	mu     sync.RWMutex
	latest Snapshot
}

// NewStore creates an empty Store with no heading and no fix.
func NewStore() *Store {
	return &Store{}
}

// SetHeading records a new compass reading, normalized into [0,360).
func (s *Store) SetHeading(deg float64, at time.Time) {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}

	s.mu.Lock()
	next := s.latest
	next.Heading = deg
	next.HasHeading = true
	next.CapturedAt = at
	s.latest = next
	s.mu.Unlock()
}

// SetFix records a new GPS fix.
func (s *Store) SetFix(lat, lon float64, at time.Time) {
	s.mu.Lock()
	next := s.latest
	next.Latitude = lat
	next.Longitude = lon
	next.HasFix = true
	next.FixAt = at
	next.CapturedAt = at
	s.latest = next
	s.mu.Unlock()
}

// Latest returns the current snapshot.
func (s *Store) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// HasFix reports whether at least one fix has ever been recorded.
func (s *Store) HasFix() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest.HasFix
}
