package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/zonestore"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

type zoneQueryService struct {
	store  *zonestore.Store
	cache  ZoneViewCache
	logger *slog.Logger
}

func NewZoneService(store *zonestore.Store, cache ZoneViewCache, logger *slog.Logger) ZoneService {
	return &zoneQueryService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// ListZones returns every zone with its derived per-track states. States are
// recomputed from the live accumulators on each call; only aggregated fields
// leave this boundary.
func (s *zoneQueryService) ListZones(ctx context.Context) ([]domain.ZoneView, error) {
	if s.cache != nil {
		views, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("zone view cache read failed", slog.Any("error", err))
		} else if views != nil {
			return views, nil
		}
	}

	zones := s.store.List()
	views := make([]domain.ZoneView, 0, len(zones))
	for _, z := range zones {
		view, err := buildZoneView(z)
		if err != nil {
			return nil, e.Wrap("service.Zone.ListZones", err)
		}
		views = append(views, view)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, views); err != nil {
			s.logger.Warn("zone view cache write failed", slog.Any("error", err))
		}
	}
	return views, nil
}

// ZoneActions lets users help any known zone without submitting a report
// first. Unknown zones are a 404, not a creation path.
func (s *zoneQueryService) ZoneActions(ctx context.Context, zoneID string, context domain.ActionContext, typ domain.ImpactType) (domain.ZoneActionsResponse, error) {
	const op = "service.Zone.ZoneActions"

	if typ == "" {
		typ = domain.ImpactVape
	}
	if !typ.Valid() {
		return domain.ZoneActionsResponse{}, fmt.Errorf("%s: %q: %w", op, typ, e.ErrInvalidType)
	}
	if context != "" && !context.Valid() {
		return domain.ZoneActionsResponse{}, fmt.Errorf("%s: %q: %w", op, context, e.ErrInvalidInput)
	}

	zone, ok := s.store.Find(zoneID)
	if !ok {
		return domain.ZoneActionsResponse{}, fmt.Errorf("%s: %s: %w", op, zoneID, e.ErrNotFound)
	}

	vape, err := describeTrack(zone, domain.ImpactVape)
	if err != nil {
		return domain.ZoneActionsResponse{}, e.Wrap(op, err)
	}
	smoke, err := describeTrack(zone, domain.ImpactSmoke)
	if err != nil {
		return domain.ZoneActionsResponse{}, e.Wrap(op, err)
	}

	return domain.ZoneActionsResponse{
		ZoneID:       zoneID,
		Zone:         zone,
		VapeState:    vape.state,
		VapeColor:    vape.color,
		VapeMessage:  vape.message,
		SmokeState:   smoke.state,
		SmokeColor:   smoke.color,
		SmokeMessage: smoke.message,
		Suggestions:  SuggestActions(context, typ),
	}, nil
}

// trackView carries one pollutant track's derived state plus the color and
// message the map UI renders for it.
type trackView struct {
	state   domain.RestorationState
	color   string
	message string
}

func describeTrack(z domain.Zone, typ domain.ImpactType) (trackView, error) {
	state, err := ClassifyZone(z, typ)
	if err != nil {
		return trackView{}, err
	}
	color, err := StateColor(state)
	if err != nil {
		return trackView{}, err
	}
	message, err := StateMessage(state)
	if err != nil {
		return trackView{}, err
	}
	return trackView{state: state, color: color, message: message}, nil
}

func buildZoneView(z domain.Zone) (domain.ZoneView, error) {
	vape, err := describeTrack(z, domain.ImpactVape)
	if err != nil {
		return domain.ZoneView{}, err
	}
	smoke, err := describeTrack(z, domain.ImpactSmoke)
	if err != nil {
		return domain.ZoneView{}, err
	}
	return domain.ZoneView{
		Zone:         z,
		VapeState:    vape.state,
		VapeColor:    vape.color,
		VapeMessage:  vape.message,
		SmokeState:   smoke.state,
		SmokeColor:   smoke.color,
		SmokeMessage: smoke.message,
	}, nil
}
