package types

import (
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  AnalysisStatusProcessing = "processing"
  AnalysisStatusCompleted  = "completed"
)

const (
  RiskLow    = "low"
  RiskMedium = "medium"
  RiskHigh   = "high"
)

const (
  PriorityLow    = "low"
  PriorityMedium = "medium"
  PriorityHigh   = "high"
)

// Opportunity is embedded in its parent analysis and persisted atomically
// with it. It has no lifecycle of its own.
type Opportunity struct {
  ID               uuid.UUID `json:"id"`
  Title            string    `json:"title"`
  Description      string    `json:"description"`
  PotentialRevenue string    `json:"potential_revenue"`
  RiskLevel        string    `json:"risk_level"`
  Priority         string    `json:"priority"`
}

type Analysis struct {
  ID            uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
  UserID        uuid.UUID                          `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
  Title         string                             `gorm:"not null;column:title" json:"title"`
  Industry      string                             `gorm:"not null;column:industry" json:"industry"`
  TargetMarket  string                             `gorm:"not null;column:target_market" json:"target_market"`
  Competitors   datatypes.JSONSlice[string]        `gorm:"column:competitors" json:"competitors"`
  Description   string                             `gorm:"column:description" json:"description"`
  Status        string                             `gorm:"not null;column:status" json:"status"`
  AIInsights    *string                            `gorm:"column:ai_insights" json:"ai_insights"`
  Opportunities datatypes.JSONSlice[Opportunity]   `gorm:"column:opportunities" json:"opportunities"`
  CreatedAt     time.Time                          `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time                          `gorm:"not null" json:"updated_at"`
}

func (Analysis) TableName() string {
  return "analysis"
}

// NewDraftAnalysis is the only way to construct an analysis. Drafts start
// in the processing state with no insight and an empty opportunity list.
func NewDraftAnalysis(userID uuid.UUID, title, industry, targetMarket string, competitors []string, description string) *Analysis {
  if competitors == nil {
    competitors = []string{}
  }
  now := time.Now().UTC()
  return &Analysis{
    ID:            uuid.New(),
    UserID:        userID,
    Title:         title,
    Industry:      industry,
    TargetMarket:  targetMarket,
    Competitors:   datatypes.NewJSONSlice(competitors),
    Description:   description,
    Status:        AnalysisStatusProcessing,
    AIInsights:    nil,
    Opportunities: datatypes.NewJSONSlice([]Opportunity{}),
    CreatedAt:     now,
    UpdatedAt:     now,
  }
}

// Complete is the single allowed transition: processing -> completed. The
// completed state is terminal, a second call is an error.
func (a *Analysis) Complete(insight string, opportunities []Opportunity) error {
  if a.Status != AnalysisStatusProcessing {
    return fmt.Errorf("analysis %s is already %s", a.ID, a.Status)
  }
  if opportunities == nil {
    opportunities = []Opportunity{}
  }
  a.AIInsights = &insight
  a.Opportunities = datatypes.NewJSONSlice(opportunities)
  a.Status = AnalysisStatusCompleted
  a.UpdatedAt = time.Now().UTC()
  return nil
}
