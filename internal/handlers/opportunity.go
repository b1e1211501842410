package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/requestdata"
  "github.com/marketpulse/marketpulse-backend/internal/services"
)

type OpportunityHandler struct {
  log             *logger.Logger
  analysisService services.AnalysisService
}

func NewOpportunityHandler(log *logger.Logger, analysisService services.AnalysisService) *OpportunityHandler {
  return &OpportunityHandler{
    log:             log.With("handler", "OpportunityHandler"),
    analysisService: analysisService,
  }
}

func (h *OpportunityHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  opportunities, err := h.analysisService.ListOpportunities(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("List opportunities failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, "load_opportunities_failed", err)
    return
  }
  RespondOK(c, opportunities)
}
