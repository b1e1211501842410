package services

import (
  "errors"
  "fmt"
  "strings"

  "github.com/marketpulse/marketpulse-backend/internal/types"
)

// The product speaks French to its users; prompts and fallback strings are
// French on purpose.

const insightSystemMessage = "Tu es un expert en analyse de marché et stratégie business. Tu fournis des insights précis et actionnables en français."

const reportSystemMessage = "Tu es un consultant senior en stratégie d'entreprise. Tu rédiges des rapports professionnels et détaillés en français."

const insightUnavailableText = "AI insights unavailable - API key not configured"

const reportUnavailableText = "Rapport non disponible - Clé API non configurée"

var reportTypeInstructions = map[string]string{
  types.ReportTypeMarketOverview:     "Génère un rapport complet d'aperçu du marché incluant: taille du marché, tendances, acteurs clés, facteurs de croissance.",
  types.ReportTypeCompetitorAnalysis: "Génère une analyse concurrentielle détaillée: forces/faiblesses des concurrents, positionnement, stratégies, parts de marché estimées.",
  types.ReportTypeOpportunityReport:  "Génère un rapport d'opportunités: opportunités identifiées, potentiel de revenus, plan d'action recommandé, timeline.",
}

// BuildInsightPrompt renders the market-analysis prompt deterministically
// from the draft's fields.
func BuildInsightPrompt(a *types.Analysis) string {
  return fmt.Sprintf(`Analyse ce marché et fournis des insights stratégiques:

Titre: %s
Industrie: %s
Marché cible: %s
Concurrents: %s
Description: %s

Fournis:
1. Résumé du marché (2-3 phrases)
2. 3 opportunités principales avec estimation de potentiel
3. 2 risques majeurs à considérer
4. Recommandation stratégique clé

Format ta réponse de manière concise et professionnelle.`,
    a.Title, a.Industry, a.TargetMarket, strings.Join(a.Competitors, ", "), a.Description)
}

// BuildReportPrompt renders the type-specific report prompt, including the
// analysis's prior insight when present.
func BuildReportPrompt(a *types.Analysis, reportType string) string {
  instructions := reportTypeInstructions[reportType]
  priorInsights := ""
  if a.AIInsights != nil {
    priorInsights = *a.AIInsights
  }
  return fmt.Sprintf(`%s

Données de l'analyse:
- Titre: %s
- Industrie: %s
- Marché cible: %s
- Concurrents: %s
- Description: %s
- Insights précédents: %s

Génère un rapport professionnel et structuré avec des sections claires.`,
    instructions, a.Title, a.Industry, a.TargetMarket, strings.Join(a.Competitors, ", "), a.Description, priorInsights)
}

// FormatInsightResult decides the user-facing insight string from the
// generation outcome. Generation failure is absorbed here, never surfaced
// as a request failure.
func FormatInsightResult(text string, err error) string {
  if err == nil {
    return text
  }
  if errors.Is(err, ErrAIUnavailable) {
    return insightUnavailableText
  }
  return fmt.Sprintf("Erreur lors de la génération des insights: %s", err.Error())
}

// FormatReportResult mirrors FormatInsightResult for report content.
func FormatReportResult(text string, err error) string {
  if err == nil {
    return text
  }
  if errors.Is(err, ErrAIUnavailable) {
    return reportUnavailableText
  }
  return fmt.Sprintf("Erreur lors de la génération du rapport: %s", err.Error())
}
