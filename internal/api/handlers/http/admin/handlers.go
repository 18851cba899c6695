package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zorofrizzy/breatheBack/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AdminService interface {
	SeedDemo(ctx context.Context, req domain.SeedDemoRequest) (domain.SeedDemoResponse, error)
	ResetAll(ctx context.Context) error
}

type Handler struct {
	logger *slog.Logger
	admin  AdminService
}

func NewHandler(logger *slog.Logger, admin AdminService) *Handler {
	return &Handler{logger: logger, admin: admin}
}

// SeedDemo populates demo zones around an optional center coordinate. An empty
// body seeds around the default center.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	var req domain.SeedDemoRequest
	if r.ContentLength != 0 {
		if !h.decodeJSON(w, r, &req) {
			return
		}
	}

	resp, err := h.admin.SeedDemo(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.ResetAll(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "All data has been reset successfully",
	})
}
