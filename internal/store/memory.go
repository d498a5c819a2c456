package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-feed-service/internal/geo"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

var (
	// ErrNotFound is returned when no report is available for a given place.
	ErrNotFound = errors.New("no weather report for place")
)

// Key canonicalizes a place query string for indexing. The same folding the
// resolver applies keeps "São Paulo" and "sao paulo" on one history.
func Key(place string) string {
	return strings.ToLower(strings.TrimSpace(geo.ToASCII(place)))
}

// Snapshot is one delivered weather report with its delivery time.
type Snapshot struct {
	Place     string          `json:"place"`
	FetchedAt time.Time       `json:"fetchedAt"` // always UTC
	Report    *weather.Report `json:"report"`
}

// reportHistory holds a time-ordered list of snapshots for one place.
type reportHistory struct {
	Snapshots []Snapshot
}

// MemoryStore is a concurrency-safe in-memory store of delivered reports.
// It belongs to the daemon layer; the query pipeline itself never reads it.
type MemoryStore struct {
	mu sync.RWMutex

	// key: canonical place key, value: history
	data map[string]*reportHistory

	// retention configuration
	maxHistory int           // max number of snapshots per place
	maxAge     time.Duration // optional max age for snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*reportHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveSnapshot appends a new snapshot for a place and enforces retention.
func (s *MemoryStore) SaveSnapshot(place string, snapshot Snapshot) {
	key := Key(place)

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &reportHistory{}
		s.data[key] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age, always keeping the newest snapshot.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for i < len(history.Snapshots)-1 && history.Snapshots[i].FetchedAt.Before(cutoff) {
			i++
		}
		history.Snapshots = history.Snapshots[i:]
	}
}

// GetLatest returns the most recent snapshot for a place.
func (s *MemoryStore) GetLatest(place string) (Snapshot, error) {
	key := Key(place)

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// GetRange returns all snapshots for a place between from and to (inclusive).
func (s *MemoryStore) GetRange(place string, from, to time.Time) ([]Snapshot, error) {
	key := Key(place)

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []Snapshot
	for _, snap := range history.Snapshots {
		if !snap.FetchedAt.Before(from) && !snap.FetchedAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
