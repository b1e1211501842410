package services

import (
  "errors"
  "strings"
  "testing"

  "github.com/google/uuid"

  "github.com/marketpulse/marketpulse-backend/internal/types"
)

func TestBuildInsightPrompt(t *testing.T) {
  a := types.NewDraftAnalysis(uuid.New(), "T", "SaaS", "PME", []string{"Acme", "Globex"}, "desc")

  p1 := BuildInsightPrompt(a)
  p2 := BuildInsightPrompt(a)
  if p1 != p2 {
    t.Fatalf("prompt construction must be deterministic")
  }
  for _, want := range []string{"Titre: T", "Industrie: SaaS", "Marché cible: PME", "Concurrents: Acme, Globex", "Description: desc"} {
    if !strings.Contains(p1, want) {
      t.Fatalf("prompt missing %q:\n%s", want, p1)
    }
  }
}

func TestBuildReportPromptPerType(t *testing.T) {
  a := types.NewDraftAnalysis(uuid.New(), "T", "SaaS", "PME", nil, "")
  insight := "les insights"
  a.AIInsights = &insight

  cases := []struct {
    reportType string
    want       string
  }{
    {types.ReportTypeMarketOverview, "aperçu du marché"},
    {types.ReportTypeCompetitorAnalysis, "analyse concurrentielle"},
    {types.ReportTypeOpportunityReport, "rapport d'opportunités"},
  }
  for _, tc := range cases {
    t.Run(tc.reportType, func(t *testing.T) {
      p := BuildReportPrompt(a, tc.reportType)
      if !strings.Contains(strings.ToLower(p), tc.want) {
        t.Fatalf("prompt for %s missing %q:\n%s", tc.reportType, tc.want, p)
      }
      if !strings.Contains(p, "Insights précédents: les insights") {
        t.Fatalf("prompt must carry prior insight:\n%s", p)
      }
    })
  }
}

func TestFormatInsightResult(t *testing.T) {
  if got := FormatInsightResult("texte", nil); got != "texte" {
    t.Fatalf("success must pass text through, got %q", got)
  }
  if got := FormatInsightResult("", ErrAIUnavailable); got != insightUnavailableText {
    t.Fatalf("unexpected unavailable fallback: %q", got)
  }
  got := FormatInsightResult("", errors.New("boom"))
  if !strings.Contains(got, "boom") {
    t.Fatalf("fallback must name the failure reason, got %q", got)
  }
}

func TestFormatReportResult(t *testing.T) {
  if got := FormatReportResult("texte", nil); got != "texte" {
    t.Fatalf("success must pass text through, got %q", got)
  }
  if got := FormatReportResult("", ErrAIUnavailable); got != reportUnavailableText {
    t.Fatalf("unexpected unavailable fallback: %q", got)
  }
  got := FormatReportResult("", errors.New("boom"))
  if !strings.HasPrefix(got, "Erreur lors de la génération du rapport") || !strings.Contains(got, "boom") {
    t.Fatalf("unexpected fallback: %q", got)
  }
}
