package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  ReportTypeMarketOverview     = "market_overview"
  ReportTypeCompetitorAnalysis = "competitor_analysis"
  ReportTypeOpportunityReport  = "opportunity_report"

  ReportStatusCompleted = "completed"
)

// ReportTypeLabels maps a report type to the product-facing title label.
var ReportTypeLabels = map[string]string{
  ReportTypeMarketOverview:     "Aperçu du Marché",
  ReportTypeCompetitorAnalysis: "Analyse Concurrentielle",
  ReportTypeOpportunityReport:  "Rapport d'Opportunités",
}

func ValidReportType(reportType string) bool {
  _, ok := ReportTypeLabels[reportType]
  return ok
}

type Report struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  UserID     uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
  AnalysisID uuid.UUID `gorm:"type:uuid;index;not null;column:analysis_id" json:"analysis_id"`
  ReportType string    `gorm:"not null;column:report_type" json:"report_type"`
  Title      string    `gorm:"not null;column:title" json:"title"`
  Content    string    `gorm:"column:content" json:"content"`
  Status     string    `gorm:"not null;column:status" json:"status"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Report) TableName() string {
  return "report"
}
