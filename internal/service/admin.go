package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/storage"
	"github.com/zorofrizzy/breatheBack/internal/zonestore"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// Default demo center: San Francisco.
const (
	demoCenterLat = 37.7749
	demoCenterLng = -122.4194
)

// demoZones spans all three states around the center: the first rows classify
// recovered, the middle ones healing, the last ones needs_restoration.
var demoZones = []struct {
	latOffset, lngOffset                           float64
	vapeDebt, vapeRestore, smokeDebt, smokeRestore float64
}{
	{0.02, 0.02, 40, 120, 30, 100},
	{0.02, 0.01, 15, 60, 10, 45},
	{0.01, 0.02, 5, 30, 3, 25},
	{0.00, 0.02, 35, 45, 25, 35},
	{0.01, 0.01, 50, 40, 45, 35},
	{0.00, 0.01, 60, 45, 55, 40},
	{-0.01, 0.01, 150, 20, 120, 15},
	{-0.01, 0.02, 80, 10, 70, 8},
	{-0.02, 0.01, 65, 5, 55, 3},
	{-0.02, 0.02, 30, 2, 25, 1},
}

type adminService struct {
	store   *zonestore.Store
	ledger  *Ledger
	events  *EventLog
	storage storage.Storage
	cache   ZoneViewCache
	logger  *slog.Logger
}

func NewAdminService(store *zonestore.Store, ledger *Ledger, events *EventLog, st storage.Storage, cache ZoneViewCache, logger *slog.Logger) AdminService {
	return &adminService{
		store:   store,
		ledger:  ledger,
		events:  events,
		storage: st,
		cache:   cache,
		logger:  logger,
	}
}

// SeedDemo creates ten zones around the requested center covering all three
// restoration states.
func (s *adminService) SeedDemo(ctx context.Context, req domain.SeedDemoRequest) (domain.SeedDemoResponse, error) {
	const op = "service.Admin.SeedDemo"

	centerLat, centerLng := demoCenterLat, demoCenterLng
	if req.Latitude != nil {
		centerLat = *req.Latitude
	}
	if req.Longitude != nil {
		centerLng = *req.Longitude
	}

	created := 0
	for _, d := range demoZones {
		zone, err := s.store.GetOrCreate(centerLat+d.latOffset, centerLng+d.lngOffset)
		if err != nil {
			return domain.SeedDemoResponse{}, e.Wrap(op, err)
		}
		if _, err := s.store.SetScores(zone.ID, d.vapeDebt, d.vapeRestore, d.smokeDebt, d.smokeRestore); err != nil {
			return domain.SeedDemoResponse{}, e.Wrap(op, err)
		}
		created++
	}

	if err := s.storage.SaveZones(ctx, s.store.List()); err != nil {
		return domain.SeedDemoResponse{}, e.Wrap(op, err)
	}
	s.invalidateCache(ctx)

	s.logger.Info("demo data seeded", slog.Int("zones", created))

	return domain.SeedDemoResponse{
		Message:      fmt.Sprintf("Demo data seeded successfully with %d zones", created),
		ZonesCreated: created,
		Center:       domain.Coordinates{Latitude: centerLat, Longitude: centerLng},
	}, nil
}

// ResetAll wipes zones, the daily ledger, events and stored snapshots.
func (s *adminService) ResetAll(ctx context.Context) error {
	const op = "service.Admin.ResetAll"

	s.store.Clear()
	s.ledger.forget()
	s.events.Clear()

	if err := s.storage.Reset(ctx); err != nil {
		return e.Wrap(op, err)
	}
	s.invalidateCache(ctx)

	s.logger.Info("all data reset")
	return nil
}

func (s *adminService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("zone view cache invalidation failed", slog.Any("error", err))
	}
}
