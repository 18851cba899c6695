package service

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/storage"
	"github.com/zorofrizzy/breatheBack/internal/zonestore"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

var feedbackMessages = []string{
	"Nice, this area is healing",
	"Great work! The air is getting better",
	"You're making a difference",
	"Small actions add up, nice work",
	"This space is healing thanks to you",
}

type actionService struct {
	store   *zonestore.Store
	ledger  *Ledger
	storage storage.Storage
	cache   ZoneViewCache
	logger  *slog.Logger
}

func NewActionService(store *zonestore.Store, ledger *Ledger, st storage.Storage, cache ZoneViewCache, logger *slog.Logger) ActionService {
	return &actionService{
		store:   store,
		ledger:  ledger,
		storage: st,
		cache:   cache,
		logger:  logger,
	}
}

// Complete applies a finished restoration action: the zone's restore track(s)
// grow by the action's points, and the daily ledger credits the same amount
// once to the total and to each matching sub-total. The zone is created from
// the identifier when it has never been seen.
func (s *actionService) Complete(ctx context.Context, req domain.CompleteActionRequest) (domain.CompleteActionResponse, error) {
	const op = "service.Action.Complete"

	// Validate the whole request before any mutation so a rejected action
	// leaves no zone behind and no accumulator change.
	action := domain.CompletedAction{
		ActionID: req.ActionID,
		Points:   req.Points,
		Type:     req.Type,
		ZoneID:   req.ZoneID,
	}
	if err := action.Validate(); err != nil {
		return domain.CompleteActionResponse{}, e.Wrap(op, err)
	}

	zone, err := s.store.GetOrCreateByID(req.ZoneID)
	if err != nil {
		return domain.CompleteActionResponse{}, e.Wrap(op, err)
	}

	zone, err = s.store.ApplyRestore(zone.ID, req.Type, float64(req.Points))
	if err != nil {
		return domain.CompleteActionResponse{}, e.Wrap(op, err)
	}

	action.Timestamp = zone.LastUpdated
	points, err := s.ledger.Credit(ctx, action)
	if err != nil {
		return domain.CompleteActionResponse{}, e.Wrap(op, err)
	}

	if err := s.storage.SaveZones(ctx, s.store.List()); err != nil {
		s.logger.Error("zone snapshot save failed", slog.String("op", op), slog.Any("error", err))
		return domain.CompleteActionResponse{}, e.Wrap(op, err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("zone view cache invalidation failed", slog.Any("error", err))
		}
	}

	s.logger.Info("action completed",
		slog.String("zone_id", zone.ID),
		slog.String("type", string(req.Type)),
		slog.Int("points", req.Points),
	)

	return domain.CompleteActionResponse{
		TotalPoints:      points.TotalPoints,
		ActionsCompleted: points.ActionsCompleted,
		Feedback:         feedbackMessages[rand.Intn(len(feedbackMessages))],
		Message:          "Action completed successfully",
	}, nil
}
