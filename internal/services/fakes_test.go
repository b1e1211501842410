package services

import (
  "context"
  "sort"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

func testLogger() *logger.Logger {
  log, _ := logger.New("test")
  return log
}

// ---- fake user repo ----

type fakeUserRepo struct {
  users map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
  return &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  for _, u := range users {
    f.users[u.ID] = u
  }
  return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
  var out []*types.User
  for _, id := range userIDs {
    if u, ok := f.users[id]; ok {
      out = append(out, u)
    }
  }
  return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
  var out []*types.User
  for _, email := range userEmails {
    for _, u := range f.users {
      if u.Email == email {
        out = append(out, u)
      }
    }
  }
  return out, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
  for _, u := range f.users {
    if u.Email == userEmail {
      return true, nil
    }
  }
  return false, nil
}

// ---- fake analysis repo ----

type fakeAnalysisRepo struct {
  analyses map[uuid.UUID]*types.Analysis
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
  return &fakeAnalysisRepo{analyses: map[uuid.UUID]*types.Analysis{}}
}

func (f *fakeAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, analyses []*types.Analysis) ([]*types.Analysis, error) {
  for _, a := range analyses {
    copied := *a
    f.analyses[a.ID] = &copied
  }
  return analyses, nil
}

func (f *fakeAnalysisRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, analysisID, userID uuid.UUID) (*types.Analysis, error) {
  a, ok := f.analyses[analysisID]
  if !ok || a.UserID != userID {
    return nil, nil
  }
  copied := *a
  return &copied, nil
}

func (f *fakeAnalysisRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Analysis, error) {
  var out []*types.Analysis
  for _, a := range f.analyses {
    if a.UserID == userID {
      copied := *a
      out = append(out, &copied)
    }
  }
  sort.Slice(out, func(i, j int) bool {
    return out[i].CreatedAt.After(out[j].CreatedAt)
  })
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeAnalysisRepo) UpdateCompletion(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) error {
  stored, ok := f.analyses[analysis.ID]
  if !ok {
    return gorm.ErrRecordNotFound
  }
  stored.AIInsights = analysis.AIInsights
  stored.Opportunities = analysis.Opportunities
  stored.Status = analysis.Status
  stored.UpdatedAt = analysis.UpdatedAt
  return nil
}

func (f *fakeAnalysisRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, analysisID, userID uuid.UUID) (int64, error) {
  a, ok := f.analyses[analysisID]
  if !ok || a.UserID != userID {
    return 0, nil
  }
  delete(f.analyses, analysisID)
  return 1, nil
}

func (f *fakeAnalysisRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  var count int64
  for _, a := range f.analyses {
    if a.UserID == userID {
      count++
    }
  }
  return count, nil
}

// ---- fake report repo ----

type fakeReportRepo struct {
  reports map[uuid.UUID]*types.Report
}

func newFakeReportRepo() *fakeReportRepo {
  return &fakeReportRepo{reports: map[uuid.UUID]*types.Report{}}
}

func (f *fakeReportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error) {
  for _, r := range reports {
    copied := *r
    f.reports[r.ID] = &copied
  }
  return reports, nil
}

func (f *fakeReportRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, reportID, userID uuid.UUID) (*types.Report, error) {
  r, ok := f.reports[reportID]
  if !ok || r.UserID != userID {
    return nil, nil
  }
  copied := *r
  return &copied, nil
}

func (f *fakeReportRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Report, error) {
  var out []*types.Report
  for _, r := range f.reports {
    if r.UserID == userID {
      copied := *r
      out = append(out, &copied)
    }
  }
  sort.Slice(out, func(i, j int) bool {
    return out[i].CreatedAt.After(out[j].CreatedAt)
  })
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeReportRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  var count int64
  for _, r := range f.reports {
    if r.UserID == userID {
      count++
    }
  }
  return count, nil
}

// ---- fake AI client ----

type fakeAIClient struct {
  text  string
  err   error
  calls int

  lastSessionID string
  lastSystem    string
  lastPrompt    string
}

func (f *fakeAIClient) GenerateText(ctx context.Context, sessionID, system, prompt string) (string, error) {
  f.calls++
  f.lastSessionID = sessionID
  f.lastSystem = system
  f.lastPrompt = prompt
  if f.err != nil {
    return "", f.err
  }
  return f.text, nil
}
