package services

import (
  "context"
  "errors"
  "strings"
  "testing"

  "github.com/google/uuid"

  "github.com/marketpulse/marketpulse-backend/internal/types"
)

func seedCompletedAnalysis(t *testing.T, repo *fakeAnalysisRepo, userID uuid.UUID, title string) *types.Analysis {
  t.Helper()
  a := types.NewDraftAnalysis(userID, title, "SaaS", "PME", []string{"Acme"}, "desc")
  if err := a.Complete("insights précédents", deriveOpportunities(a)); err != nil {
    t.Fatalf("Complete: %v", err)
  }
  if _, err := repo.Create(context.Background(), nil, []*types.Analysis{a}); err != nil {
    t.Fatalf("seed analysis: %v", err)
  }
  return a
}

func TestCreateReportDerivedTitle(t *testing.T) {
  analyses := newFakeAnalysisRepo()
  reports := newFakeReportRepo()
  ai := &fakeAIClient{text: "Contenu du rapport."}
  svc := NewReportService(nil, testLogger(), analyses, reports, ai)
  ctx := context.Background()

  owner := uuid.New()
  a := seedCompletedAnalysis(t, analyses, owner, "T")

  report, err := svc.Create(ctx, owner, a.ID, types.ReportTypeMarketOverview)
  if err != nil {
    t.Fatalf("Create: %v", err)
  }
  if !strings.HasPrefix(report.Title, "Aperçu du Marché - T") {
    t.Fatalf("unexpected title %q", report.Title)
  }
  if report.Status != types.ReportStatusCompleted {
    t.Fatalf("expected completed status, got %q", report.Status)
  }
  if report.Content != "Contenu du rapport." {
    t.Fatalf("unexpected content %q", report.Content)
  }
  if !strings.Contains(ai.lastPrompt, "Insights précédents: insights précédents") {
    t.Fatalf("prompt must include the prior insight, got: %q", ai.lastPrompt)
  }

  stored, _ := reports.GetByIDForUser(ctx, nil, report.ID, owner)
  if stored == nil {
    t.Fatalf("report not persisted")
  }
}

func TestCreateReportForeignAnalysisNoGeneration(t *testing.T) {
  analyses := newFakeAnalysisRepo()
  reports := newFakeReportRepo()
  ai := &fakeAIClient{text: "should not be called"}
  svc := NewReportService(nil, testLogger(), analyses, reports, ai)
  ctx := context.Background()

  owner := uuid.New()
  intruder := uuid.New()
  a := seedCompletedAnalysis(t, analyses, owner, "T")

  _, err := svc.Create(ctx, intruder, a.ID, types.ReportTypeMarketOverview)
  if !errors.Is(err, ErrNotFound) {
    t.Fatalf("expected ErrNotFound, got %v", err)
  }
  if ai.calls != 0 {
    t.Fatalf("generation must not be attempted for an unowned analysis, got %d calls", ai.calls)
  }
}

func TestCreateReportUnknownTypeRejected(t *testing.T) {
  analyses := newFakeAnalysisRepo()
  ai := &fakeAIClient{}
  svc := NewReportService(nil, testLogger(), analyses, newFakeReportRepo(), ai)
  ctx := context.Background()

  owner := uuid.New()
  a := seedCompletedAnalysis(t, analyses, owner, "T")

  _, err := svc.Create(ctx, owner, a.ID, "quarterly_forecast")
  if !errors.Is(err, ErrInvalidInput) {
    t.Fatalf("expected ErrInvalidInput for unknown report type, got %v", err)
  }
  if ai.calls != 0 {
    t.Fatalf("generation must not run for an invalid type, got %d calls", ai.calls)
  }
}

func TestCreateReportGenerationFallback(t *testing.T) {
  analyses := newFakeAnalysisRepo()
  reports := newFakeReportRepo()
  svc := NewReportService(nil, testLogger(), analyses, reports, &fakeAIClient{err: ErrAIUnavailable})
  ctx := context.Background()

  owner := uuid.New()
  a := seedCompletedAnalysis(t, analyses, owner, "T")

  report, err := svc.Create(ctx, owner, a.ID, types.ReportTypeOpportunityReport)
  if err != nil {
    t.Fatalf("Create must absorb generation failure, got %v", err)
  }
  if report.Content != reportUnavailableText {
    t.Fatalf("expected unavailable fallback content, got %q", report.Content)
  }
  if !strings.HasPrefix(report.Title, "Rapport d'Opportunités - T") {
    t.Fatalf("unexpected title %q", report.Title)
  }
}

func TestGetAndListReportsScoped(t *testing.T) {
  analyses := newFakeAnalysisRepo()
  reports := newFakeReportRepo()
  svc := NewReportService(nil, testLogger(), analyses, reports, &fakeAIClient{text: "ok"})
  ctx := context.Background()

  owner := uuid.New()
  a := seedCompletedAnalysis(t, analyses, owner, "T")

  created, err := svc.Create(ctx, owner, a.ID, types.ReportTypeCompetitorAnalysis)
  if err != nil {
    t.Fatalf("Create: %v", err)
  }

  if _, err := svc.Get(ctx, owner, created.ID); err != nil {
    t.Fatalf("Get: %v", err)
  }
  if _, err := svc.Get(ctx, uuid.New(), created.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("Get (foreign): expected ErrNotFound, got %v", err)
  }

  list, err := svc.List(ctx, owner)
  if err != nil {
    t.Fatalf("List: %v", err)
  }
  if len(list) != 1 {
    t.Fatalf("expected 1 report, got %d", len(list))
  }
}
