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

type AnalysisHandler struct {
  log             *logger.Logger
  analysisService services.AnalysisService
}

func NewAnalysisHandler(log *logger.Logger, analysisService services.AnalysisService) *AnalysisHandler {
  return &AnalysisHandler{
    log:             log.With("handler", "AnalysisHandler"),
    analysisService: analysisService,
  }
}

func (h *AnalysisHandler) Create(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req struct {
    Title        string   `json:"title"`
    Industry     string   `json:"industry"`
    TargetMarket string   `json:"target_market"`
    Competitors  []string `json:"competitors"`
    Description  string   `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  analysis, err := h.analysisService.Create(c.Request.Context(), rd.UserID, services.AnalysisCreateInput{
    Title:        req.Title,
    Industry:     req.Industry,
    TargetMarket: req.TargetMarket,
    Competitors:  req.Competitors,
    Description:  req.Description,
  })
  if err != nil {
    h.log.Error("Create analysis failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, "create_analysis_failed", err)
    return
  }
  RespondOK(c, analysis)
}

func (h *AnalysisHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  analyses, err := h.analysisService.List(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("List analyses failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, "load_analyses_failed", err)
    return
  }
  RespondOK(c, analyses)
}

func (h *AnalysisHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  analysisID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", services.ErrNotFound)
    return
  }
  analysis, err := h.analysisService.Get(c.Request.Context(), rd.UserID, analysisID)
  if err != nil {
    RespondServiceError(c, "load_analysis_failed", err)
    return
  }
  RespondOK(c, analysis)
}

func (h *AnalysisHandler) Delete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  analysisID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", services.ErrNotFound)
    return
  }
  if err := h.analysisService.Delete(c.Request.Context(), rd.UserID, analysisID); err != nil {
    RespondServiceError(c, "delete_analysis_failed", err)
    return
  }
  RespondOK(c, gin.H{"message": "Analyse supprimée"})
}
