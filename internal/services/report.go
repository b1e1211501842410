package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/repos"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

type ReportService interface {
  Create(ctx context.Context, userID, analysisID uuid.UUID, reportType string) (*types.Report, error)
  Get(ctx context.Context, userID, reportID uuid.UUID) (*types.Report, error)
  List(ctx context.Context, userID uuid.UUID) ([]*types.Report, error)
}

type reportService struct {
  db           *gorm.DB
  log          *logger.Logger
  analysisRepo repos.AnalysisRepo
  reportRepo   repos.ReportRepo
  aiClient     AIClient
}

func NewReportService(
  db *gorm.DB,
  baseLog *logger.Logger,
  analysisRepo repos.AnalysisRepo,
  reportRepo repos.ReportRepo,
  aiClient AIClient,
) ReportService {
  serviceLog := baseLog.With("service", "ReportService")
  return &reportService{
    db:           db,
    log:          serviceLog,
    analysisRepo: analysisRepo,
    reportRepo:   reportRepo,
    aiClient:     aiClient,
  }
}

// Create generates and persists a report for an analysis the user owns.
// The scoped lookup runs before any generation call so an unauthorized
// reference never spends generation cost.
func (s *reportService) Create(ctx context.Context, userID, analysisID uuid.UUID, reportType string) (*types.Report, error) {
  if !types.ValidReportType(reportType) {
    return nil, fmt.Errorf("%w: unknown report type %q", ErrInvalidInput, reportType)
  }

  analysis, err := s.analysisRepo.GetByIDForUser(ctx, nil, analysisID, userID)
  if err != nil {
    return nil, fmt.Errorf("load analysis for report: %w", err)
  }
  if analysis == nil {
    return nil, ErrNotFound
  }

  genCtx := context.WithoutCancel(ctx)
  sessionID := fmt.Sprintf("report-%s-%s", analysis.ID, reportType)
  text, genErr := s.aiClient.GenerateText(genCtx, sessionID, reportSystemMessage, BuildReportPrompt(analysis, reportType))
  if genErr != nil {
    s.log.Warn("AI report generation failed, storing fallback text", "error", genErr, "analysis_id", analysis.ID, "report_type", reportType)
  }
  content := FormatReportResult(text, genErr)

  report := &types.Report{
    ID:         uuid.New(),
    UserID:     userID,
    AnalysisID: analysis.ID,
    ReportType: reportType,
    Title:      fmt.Sprintf("%s - %s", types.ReportTypeLabels[reportType], analysis.Title),
    Content:    content,
    Status:     types.ReportStatusCompleted,
    CreatedAt:  time.Now().UTC(),
  }
  if _, cErr := s.reportRepo.Create(genCtx, nil, []*types.Report{report}); cErr != nil {
    s.log.Error("Persist report failed", "error", cErr, "analysis_id", analysis.ID)
    return nil, fmt.Errorf("create report: %w", cErr)
  }
  return report, nil
}

func (s *reportService) Get(ctx context.Context, userID, reportID uuid.UUID) (*types.Report, error) {
  report, err := s.reportRepo.GetByIDForUser(ctx, nil, reportID, userID)
  if err != nil {
    return nil, fmt.Errorf("get report: %w", err)
  }
  if report == nil {
    return nil, ErrNotFound
  }
  return report, nil
}

func (s *reportService) List(ctx context.Context, userID uuid.UUID) ([]*types.Report, error) {
  reports, err := s.reportRepo.GetByUserID(ctx, nil, userID, listCap)
  if err != nil {
    return nil, fmt.Errorf("list reports: %w", err)
  }
  return reports, nil
}
