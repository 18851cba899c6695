package public

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zorofrizzy/breatheBack/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
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

type Handler struct {
	logger  *slog.Logger
	reports ReportService
	actions ActionService
	zones   ZoneService
	points  PointsService
	events  EventService
}

func NewHandler(logger *slog.Logger, reports ReportService, actions ActionService, zones ZoneService, points PointsService, events EventService) *Handler {
	return &Handler{
		logger:  logger,
		reports: reports,
		actions: actions,
		zones:   zones,
		points:  points,
		events:  events,
	}
}

// ListZones returns every zone with derived states. Only aggregated fields are
// serialized; nothing per-report or per-user crosses this boundary.
func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	views, err := h.zones.ListZones(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReportRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.reports.Submit(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) CompleteAction(w http.ResponseWriter, r *http.Request) {
	var req domain.CompleteActionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.actions.Complete(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.points.Today(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, points)
}

func (h *Handler) ResetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.points.Reset(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Points reset successfully",
		"points":  points,
	})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.events.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ZoneActions(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "zoneID")
	context := domain.ActionContext(r.URL.Query().Get("context"))
	typ := domain.ImpactType(r.URL.Query().Get("type"))

	resp, err := h.zones.ZoneActions(r.Context(), zoneID, context, typ)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}
