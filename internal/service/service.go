package service

import (
	"context"

	"github.com/zorofrizzy/breatheBack/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type ReportService interface {
	Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error)
}

type ActionService interface {
	Complete(ctx context.Context, req domain.CompleteActionRequest) (domain.CompleteActionResponse, error)
}

type ZoneService interface {
	ListZones(ctx context.Context) ([]domain.ZoneView, error)
	ZoneActions(ctx context.Context, zoneID string, context domain.ActionContext, typ domain.ImpactType) (domain.ZoneActionsResponse, error)
}

type PointsService interface {
	Today(ctx context.Context) (domain.UserPoints, error)
	Reset(ctx context.Context) (domain.UserPoints, error)
}

type EventService interface {
	Create(ctx context.Context, req domain.CreateEventRequest) (domain.CreateEventResponse, error)
	List(ctx context.Context) ([]domain.CommunityEvent, error)
}

type AdminService interface {
	SeedDemo(ctx context.Context, req domain.SeedDemoRequest) (domain.SeedDemoResponse, error)
	ResetAll(ctx context.Context) error
}

// ZoneViewCache fronts the zone listing. Implementations return a nil slice on
// miss; a nil cache disables caching entirely.
type ZoneViewCache interface {
	Get(ctx context.Context) ([]domain.ZoneView, error)
	Set(ctx context.Context, views []domain.ZoneView) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	Reports ReportService
	Actions ActionService
	Zones   ZoneService
	Points  PointsService
	Events  EventService
	Admin   AdminService
}

func NewService(
	reports ReportService,
	actions ActionService,
	zones ZoneService,
	points PointsService,
	events EventService,
	admin AdminService,
) *Service {
	return &Service{
		Reports: reports,
		Actions: actions,
		Zones:   zones,
		Points:  points,
		Events:  events,
		Admin:   admin,
	}
}
