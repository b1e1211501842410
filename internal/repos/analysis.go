package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

type AnalysisRepo interface {
  Create(ctx context.Context, tx *gorm.DB, analyses []*types.Analysis) ([]*types.Analysis, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, analysisID, userID uuid.UUID) (*types.Analysis, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Analysis, error)
  UpdateCompletion(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) error
  DeleteByIDForUser(ctx context.Context, tx *gorm.DB, analysisID, userID uuid.UUID) (int64, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type analysisRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
  repoLog := baseLog.With("repo", "AnalysisRepo")
  return &analysisRepo{db: db, log: repoLog}
}

func (ar *analysisRepo) Create(ctx context.Context, tx *gorm.DB, analyses []*types.Analysis) ([]*types.Analysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if len(analyses) == 0 {
    return []*types.Analysis{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&analyses).Error; err != nil {
    return nil, err
  }
  return analyses, nil
}

// GetByIDForUser is a scoped lookup: a record owned by another user is
// indistinguishable from a nonexistent one. Returns (nil, nil) on miss.
func (ar *analysisRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, analysisID, userID uuid.UUID) (*types.Analysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.Analysis
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", analysisID, userID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (ar *analysisRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Analysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.Analysis
  q := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// UpdateCompletion writes the finalized fields of a completed analysis as a
// single partial update keyed by id.
func (ar *analysisRepo) UpdateCompletion(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Analysis{}).
    Where("id = ?", analysis.ID).
    Updates(map[string]interface{}{
      "ai_insights":   analysis.AIInsights,
      "opportunities": analysis.Opportunities,
      "status":        analysis.Status,
      "updated_at":    analysis.UpdatedAt,
    }).Error
}

func (ar *analysisRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, analysisID, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  result := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", analysisID, userID).
    Delete(&types.Analysis{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (ar *analysisRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Analysis{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
