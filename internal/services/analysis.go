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

// listCap bounds every user-scoped listing; there is no further pagination.
const listCap = 100

type AnalysisCreateInput struct {
  Title        string
  Industry     string
  TargetMarket string
  Competitors  []string
  Description  string
}

// OpportunityRecord is the flattened read model for opportunities across a
// user's analyses.
type OpportunityRecord struct {
  ID               uuid.UUID `json:"id"`
  AnalysisID       uuid.UUID `json:"analysis_id"`
  Title            string    `json:"title"`
  Description      string    `json:"description"`
  PotentialRevenue string    `json:"potential_revenue"`
  RiskLevel        string    `json:"risk_level"`
  Priority         string    `json:"priority"`
  CreatedAt        string    `json:"created_at"`
}

type AnalysisService interface {
  Create(ctx context.Context, userID uuid.UUID, input AnalysisCreateInput) (*types.Analysis, error)
  Get(ctx context.Context, userID, analysisID uuid.UUID) (*types.Analysis, error)
  List(ctx context.Context, userID uuid.UUID) ([]*types.Analysis, error)
  Delete(ctx context.Context, userID, analysisID uuid.UUID) error
  ListOpportunities(ctx context.Context, userID uuid.UUID) ([]OpportunityRecord, error)
}

type analysisService struct {
  db           *gorm.DB
  log          *logger.Logger
  analysisRepo repos.AnalysisRepo
  aiClient     AIClient
}

func NewAnalysisService(
  db *gorm.DB,
  baseLog *logger.Logger,
  analysisRepo repos.AnalysisRepo,
  aiClient AIClient,
) AnalysisService {
  serviceLog := baseLog.With("service", "AnalysisService")
  return &analysisService{
    db:           db,
    log:          serviceLog,
    analysisRepo: analysisRepo,
    aiClient:     aiClient,
  }
}

// Create runs the full analysis lifecycle: persist the draft, generate the
// insight, derive opportunities and finalize the record. Generation failure
// is absorbed into fallback insight text; only store failures propagate.
func (s *analysisService) Create(ctx context.Context, userID uuid.UUID, input AnalysisCreateInput) (*types.Analysis, error) {
  if input.Title == "" {
    return nil, fmt.Errorf("%w: a title is required", ErrInvalidInput)
  }
  if input.Industry == "" {
    return nil, fmt.Errorf("%w: an industry is required", ErrInvalidInput)
  }
  if input.TargetMarket == "" {
    return nil, fmt.Errorf("%w: a target market is required", ErrInvalidInput)
  }

  draft := types.NewDraftAnalysis(userID, input.Title, input.Industry, input.TargetMarket, input.Competitors, input.Description)

  if _, err := s.analysisRepo.Create(ctx, nil, []*types.Analysis{draft}); err != nil {
    s.log.Error("Create analysis draft failed", "error", err, "user_id", userID)
    return nil, fmt.Errorf("create analysis: %w", err)
  }

  // From here on the record must reach the completed state even if the
  // caller disconnects, otherwise the draft would be stuck in processing.
  genCtx := context.WithoutCancel(ctx)

  sessionID := fmt.Sprintf("analysis-%s", draft.ID)
  text, genErr := s.aiClient.GenerateText(genCtx, sessionID, insightSystemMessage, BuildInsightPrompt(draft))
  if genErr != nil {
    s.log.Warn("AI insight generation failed, storing fallback text", "error", genErr, "analysis_id", draft.ID)
  }
  insight := FormatInsightResult(text, genErr)

  opportunities := deriveOpportunities(draft)

  if err := draft.Complete(insight, opportunities); err != nil {
    return nil, fmt.Errorf("complete analysis: %w", err)
  }
  if err := s.analysisRepo.UpdateCompletion(genCtx, nil, draft); err != nil {
    s.log.Error("Finalize analysis failed", "error", err, "analysis_id", draft.ID)
    return nil, fmt.Errorf("finalize analysis: %w", err)
  }

  return draft, nil
}

// deriveOpportunities is a deterministic transformation with no external
// dependency; it always yields at least one record for the target market.
func deriveOpportunities(a *types.Analysis) []types.Opportunity {
  return []types.Opportunity{
    {
      ID:               uuid.New(),
      Title:            fmt.Sprintf("Opportunité marché %s", a.TargetMarket),
      Description:      "Opportunité identifiée par l'analyse IA",
      PotentialRevenue: "50K - 200K €",
      RiskLevel:        types.RiskMedium,
      Priority:         types.PriorityHigh,
    },
  }
}

func (s *analysisService) Get(ctx context.Context, userID, analysisID uuid.UUID) (*types.Analysis, error) {
  analysis, err := s.analysisRepo.GetByIDForUser(ctx, nil, analysisID, userID)
  if err != nil {
    return nil, fmt.Errorf("get analysis: %w", err)
  }
  if analysis == nil {
    return nil, ErrNotFound
  }
  return analysis, nil
}

func (s *analysisService) List(ctx context.Context, userID uuid.UUID) ([]*types.Analysis, error) {
  analyses, err := s.analysisRepo.GetByUserID(ctx, nil, userID, listCap)
  if err != nil {
    return nil, fmt.Errorf("list analyses: %w", err)
  }
  return analyses, nil
}

func (s *analysisService) Delete(ctx context.Context, userID, analysisID uuid.UUID) error {
  affected, err := s.analysisRepo.DeleteByIDForUser(ctx, nil, analysisID, userID)
  if err != nil {
    return fmt.Errorf("delete analysis: %w", err)
  }
  if affected == 0 {
    return ErrNotFound
  }
  return nil
}

func (s *analysisService) ListOpportunities(ctx context.Context, userID uuid.UUID) ([]OpportunityRecord, error) {
  analyses, err := s.analysisRepo.GetByUserID(ctx, nil, userID, listCap)
  if err != nil {
    return nil, fmt.Errorf("list opportunities: %w", err)
  }
  records := []OpportunityRecord{}
  for _, a := range analyses {
    for _, opp := range a.Opportunities {
      records = append(records, OpportunityRecord{
        ID:               opp.ID,
        AnalysisID:       a.ID,
        Title:            opp.Title,
        Description:      opp.Description,
        PotentialRevenue: opp.PotentialRevenue,
        RiskLevel:        opp.RiskLevel,
        Priority:         opp.Priority,
        CreatedAt:        a.UpdatedAt.Format(time.RFC3339),
      })
    }
  }
  return records, nil
}
