package service

import (
	"context"
	"log/slog"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/storage"
	"github.com/zorofrizzy/breatheBack/internal/zonestore"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

type reportService struct {
	store   *zonestore.Store
	storage storage.Storage
	cache   ZoneViewCache // nil disables caching
	logger  *slog.Logger
}

func NewReportService(store *zonestore.Store, st storage.Storage, cache ZoneViewCache, logger *slog.Logger) ReportService {
	return &reportService{
		store:   store,
		storage: st,
		cache:   cache,
		logger:  logger,
	}
}

// Submit ingests one transient air-impact report: bucket the coordinate into
// its zone, add the fixed debt increment to the matching track and snapshot the
// collection. The report itself is discarded; its context feeds only the
// returned suggestions and is never written anywhere.
func (s *reportService) Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error) {
	const op = "service.Report.Submit"

	report, err := domain.NewAirImpactReport(req.Type, req.Location, domain.ActionContext(req.Context))
	if err != nil {
		return domain.SubmitReportResponse{}, e.Wrap(op, err)
	}

	zone, err := s.store.GetOrCreate(report.Location.Latitude, report.Location.Longitude)
	if err != nil {
		return domain.SubmitReportResponse{}, e.Wrap(op, err)
	}

	zone, err = s.store.ApplyDebt(zone.ID, report.Type, DebtIncrement)
	if err != nil {
		return domain.SubmitReportResponse{}, e.Wrap(op, err)
	}

	if err := s.storage.SaveZones(ctx, s.store.List()); err != nil {
		s.logger.Error("zone snapshot save failed", slog.String("op", op), slog.Any("error", err))
		return domain.SubmitReportResponse{}, e.Wrap(op, err)
	}
	s.invalidateCache(ctx)

	s.logger.Info("report ingested",
		slog.String("zone_id", zone.ID),
		slog.String("type", string(report.Type)),
	)

	return domain.SubmitReportResponse{
		ZoneID:      zone.ID,
		Suggestions: SuggestActions(report.Context, report.Type),
		Message:     "Report submitted successfully",
	}, nil
}

func (s *reportService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("zone view cache invalidation failed", slog.Any("error", err))
	}
}
