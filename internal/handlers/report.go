package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/requestdata"
  "github.com/marketpulse/marketpulse-backend/internal/services"
)

type ReportHandler struct {
  log           *logger.Logger
  reportService services.ReportService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService) *ReportHandler {
  return &ReportHandler{
    log:           log.With("handler", "ReportHandler"),
    reportService: reportService,
  }
}

func (h *ReportHandler) Create(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req struct {
    AnalysisID string `json:"analysis_id"`
    ReportType string `json:"report_type"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  analysisID, err := uuid.Parse(req.AnalysisID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", services.ErrNotFound)
    return
  }
  report, err := h.reportService.Create(c.Request.Context(), rd.UserID, analysisID, req.ReportType)
  if err != nil {
    h.log.Error("Create report failed", "error", err, "user_id", rd.UserID, "analysis_id", analysisID)
    RespondServiceError(c, "create_report_failed", err)
    return
  }
  RespondOK(c, report)
}

func (h *ReportHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  reports, err := h.reportService.List(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("List reports failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, "load_reports_failed", err)
    return
  }
  RespondOK(c, reports)
}

func (h *ReportHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  reportID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", services.ErrNotFound)
    return
  }
  report, err := h.reportService.Get(c.Request.Context(), rd.UserID, reportID)
  if err != nil {
    RespondServiceError(c, "load_report_failed", err)
    return
  }
  RespondOK(c, report)
}
