package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

type ReportRepo interface {
  Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, reportID, userID uuid.UUID) (*types.Report, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Report, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type reportRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
  repoLog := baseLog.With("repo", "ReportRepo")
  return &reportRepo{db: db, log: repoLog}
}

func (rr *reportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(reports) == 0 {
    return []*types.Report{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&reports).Error; err != nil {
    return nil, err
  }
  return reports, nil
}

func (rr *reportRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, reportID, userID uuid.UUID) (*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Report
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", reportID, userID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (rr *reportRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Report
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

func (rr *reportRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Report{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
