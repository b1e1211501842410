package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/repos"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

const dashboardTopN = 5

type RecentAnalysis struct {
  ID        uuid.UUID `json:"id"`
  Title     string    `json:"title"`
  Industry  string    `json:"industry"`
  Status    string    `json:"status"`
  CreatedAt time.Time `json:"created_at"`
}

type TopOpportunity struct {
  ID               uuid.UUID `json:"id"`
  Title            string    `json:"title"`
  PotentialRevenue string    `json:"potential_revenue"`
  Priority         string    `json:"priority"`
  AnalysisTitle    string    `json:"analysis_title"`
}

type DashboardStats struct {
  TotalAnalyses             int64            `json:"total_analyses"`
  TotalOpportunities        int64            `json:"total_opportunities"`
  TotalReports              int64            `json:"total_reports"`
  HighPriorityOpportunities int64            `json:"high_priority_opportunities"`
  RecentAnalyses            []RecentAnalysis `json:"recent_analyses"`
  TopOpportunities          []TopOpportunity `json:"top_opportunities"`
}

type DashboardService interface {
  Stats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error)
}

type dashboardService struct {
  db           *gorm.DB
  log          *logger.Logger
  analysisRepo repos.AnalysisRepo
  reportRepo   repos.ReportRepo
}

func NewDashboardService(
  db *gorm.DB,
  baseLog *logger.Logger,
  analysisRepo repos.AnalysisRepo,
  reportRepo repos.ReportRepo,
) DashboardService {
  serviceLog := baseLog.With("service", "DashboardService")
  return &dashboardService{
    db:           db,
    log:          serviceLog,
    analysisRepo: analysisRepo,
    reportRepo:   reportRepo,
  }
}

func (s *dashboardService) Stats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
  stats := &DashboardStats{
    RecentAnalyses:   []RecentAnalysis{},
    TopOpportunities: []TopOpportunity{},
  }

  g, gctx := errgroup.WithContext(ctx)

  g.Go(func() error {
    count, err := s.analysisRepo.CountByUserID(gctx, nil, userID)
    if err != nil {
      return fmt.Errorf("count analyses: %w", err)
    }
    stats.TotalAnalyses = count
    return nil
  })
  g.Go(func() error {
    count, err := s.reportRepo.CountByUserID(gctx, nil, userID)
    if err != nil {
      return fmt.Errorf("count reports: %w", err)
    }
    stats.TotalReports = count
    return nil
  })

  analyses, err := s.analysisRepo.GetByUserID(ctx, nil, userID, listCap)
  if err != nil {
    return nil, fmt.Errorf("load analyses for stats: %w", err)
  }
  if gErr := g.Wait(); gErr != nil {
    return nil, gErr
  }

  for _, a := range analyses {
    for _, opp := range a.Opportunities {
      stats.TotalOpportunities++
      if opp.Priority == types.PriorityHigh {
        stats.HighPriorityOpportunities++
      }
      if len(stats.TopOpportunities) < dashboardTopN {
        stats.TopOpportunities = append(stats.TopOpportunities, TopOpportunity{
          ID:               opp.ID,
          Title:            opp.Title,
          PotentialRevenue: opp.PotentialRevenue,
          Priority:         opp.Priority,
          AnalysisTitle:    a.Title,
        })
      }
    }
  }

  for i, a := range analyses {
    if i >= dashboardTopN {
      break
    }
    stats.RecentAnalyses = append(stats.RecentAnalyses, RecentAnalysis{
      ID:        a.ID,
      Title:     a.Title,
      Industry:  a.Industry,
      Status:    a.Status,
      CreatedAt: a.CreatedAt,
    })
  }

  return stats, nil
}
