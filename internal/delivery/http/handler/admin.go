package handler

import (
	"context"
	"net/http"

	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// DashboardService computes the admin dashboard
type DashboardService interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	service DashboardService
	logger  *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service DashboardService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  log,
	}
}

// Dashboard handles GET /api/v1/admin/dashboard
// @Summary Admin dashboard
// @Description Order counts, paid revenue (total, month, week), status breakdown, top products, recent orders
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.logger, "Dashboard", err)
		return
	}
	response.Success(w, stats)
}
