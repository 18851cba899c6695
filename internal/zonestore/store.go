// Package zonestore owns the authoritative in-memory zone collection and the
// only mutation paths on zone accumulators.
package zonestore

import (
	"fmt"
	"sync"
	"time"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/geogrid"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// Store keys zones by grid identifier. All access goes through the mutex so two
// concurrent reports on a brand-new cell cannot create divergent zones.
// Callers always receive copies, never the stored instances.
type Store struct {
	mu    sync.RWMutex
	zones map[string]*domain.Zone
	now   func() time.Time
}

func New() *Store {
	return &Store{
		zones: make(map[string]*domain.Zone),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate resolves the cell containing the coordinate and returns its zone,
// creating a zeroed one on first contact. Existing zones come back untouched:
// no accumulator reset, no timestamp refresh.
func (s *Store) GetOrCreate(lat, lng float64) (domain.Zone, error) {
	zoneID, err := geogrid.ZoneID(lat, lng)
	if err != nil {
		return domain.Zone{}, err
	}
	return s.getOrCreate(zoneID)
}

// GetOrCreateByID follows the same creation path as GetOrCreate for callers
// that hold a bare identifier, e.g. completing an action on a zone that never
// received a report. Malformed identifiers fail before any mutation.
func (s *Store) GetOrCreateByID(zoneID string) (domain.Zone, error) {
	lat, lng, err := geogrid.Center(zoneID)
	if err != nil {
		return domain.Zone{}, err
	}
	return s.GetOrCreate(lat, lng)
}

func (s *Store) getOrCreate(zoneID string) (domain.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if z, ok := s.zones[zoneID]; ok {
		return *z, nil
	}

	bounds, err := geogrid.Bounds(zoneID)
	if err != nil {
		return domain.Zone{}, err
	}

	z := &domain.Zone{
		ID:          zoneID,
		Bounds:      bounds,
		LastUpdated: s.now(),
	}
	if err := z.Validate(); err != nil {
		return domain.Zone{}, err
	}

	s.zones[zoneID] = z
	return *z, nil
}

// Find returns a copy of the zone, if present.
func (s *Store) Find(zoneID string) (domain.Zone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[zoneID]
	if !ok {
		return domain.Zone{}, false
	}
	return *z, true
}

// List returns copies of all zones. No ordering guarantee.
func (s *Store) List() []domain.Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Zone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, *z)
	}
	return out
}

// ApplyDebt increments the debt accumulator matching the pollutant type and
// refreshes the zone's timestamp. The amount comes from the ingestion workflow;
// the store only enforces that it is non-negative.
func (s *Store) ApplyDebt(zoneID string, typ domain.ImpactType, amount float64) (domain.Zone, error) {
	if amount < 0 {
		return domain.Zone{}, fmt.Errorf("zonestore.ApplyDebt: negative amount: %w", e.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zoneID]
	if !ok {
		return domain.Zone{}, fmt.Errorf("zonestore.ApplyDebt: %s: %w", zoneID, e.ErrNotFound)
	}

	switch typ {
	case domain.ImpactVape:
		z.VapeDebt += amount
	case domain.ImpactSmoke:
		z.SmokeDebt += amount
	default:
		return domain.Zone{}, fmt.Errorf("zonestore.ApplyDebt: %q: %w", typ, e.ErrInvalidType)
	}

	z.LastUpdated = s.now()
	return *z, nil
}

// ApplyRestore increments the restore accumulator for the action's track. A
// "both" action credits the full amount to the vape and smoke tracks
// simultaneously; it is never split.
func (s *Store) ApplyRestore(zoneID string, typ domain.ActionType, amount float64) (domain.Zone, error) {
	if amount < 0 {
		return domain.Zone{}, fmt.Errorf("zonestore.ApplyRestore: negative amount: %w", e.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zoneID]
	if !ok {
		return domain.Zone{}, fmt.Errorf("zonestore.ApplyRestore: %s: %w", zoneID, e.ErrNotFound)
	}

	switch typ {
	case domain.ActionVape:
		z.VapeRestore += amount
	case domain.ActionSmoke:
		z.SmokeRestore += amount
	case domain.ActionBoth:
		z.VapeRestore += amount
		z.SmokeRestore += amount
	default:
		return domain.Zone{}, fmt.Errorf("zonestore.ApplyRestore: %q: %w", typ, e.ErrInvalidType)
	}

	z.LastUpdated = s.now()
	return *z, nil
}

// SetScores overwrites all four accumulators at once. Demo seeding only; the
// report and action workflows never call this.
func (s *Store) SetScores(zoneID string, vapeDebt, vapeRestore, smokeDebt, smokeRestore float64) (domain.Zone, error) {
	if vapeDebt < 0 || vapeRestore < 0 || smokeDebt < 0 || smokeRestore < 0 {
		return domain.Zone{}, fmt.Errorf("zonestore.SetScores: negative score: %w", e.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[zoneID]
	if !ok {
		return domain.Zone{}, fmt.Errorf("zonestore.SetScores: %s: %w", zoneID, e.ErrNotFound)
	}

	z.VapeDebt = vapeDebt
	z.VapeRestore = vapeRestore
	z.SmokeDebt = smokeDebt
	z.SmokeRestore = smokeRestore
	z.LastUpdated = s.now()
	return *z, nil
}

// Restore replaces the collection with a persisted snapshot. Zones failing
// validation are rejected wholesale so a corrupt snapshot cannot half-load.
func (s *Store) Restore(zones []domain.Zone) error {
	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			return e.Wrap("zonestore.Restore", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.zones = make(map[string]*domain.Zone, len(zones))
	for i := range zones {
		z := zones[i]
		s.zones[z.ID] = &z
	}
	return nil
}

// Clear drops every zone. Irreversible.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones = make(map[string]*domain.Zone)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.zones)
}
