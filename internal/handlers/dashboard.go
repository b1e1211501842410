package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/requestdata"
  "github.com/marketpulse/marketpulse-backend/internal/services"
)

type DashboardHandler struct {
  log              *logger.Logger
  dashboardService services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
  return &DashboardHandler{
    log:              log.With("handler", "DashboardHandler"),
    dashboardService: dashboardService,
  }
}

func (h *DashboardHandler) Stats(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  stats, err := h.dashboardService.Stats(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("Dashboard stats failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, "load_stats_failed", err)
    return
  }
  RespondOK(c, stats)
}
