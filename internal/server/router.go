package server

import (
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/marketpulse/marketpulse-backend/internal/handlers"
  "github.com/marketpulse/marketpulse-backend/internal/middleware"
)

type RouterConfig struct {
  AllowedOrigins     []string
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  AnalysisHandler    *handlers.AnalysisHandler
  OpportunityHandler *handlers.OpportunityHandler
  ReportHandler      *handlers.ReportHandler
  DashboardHandler   *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  origins := cfg.AllowedOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:80", "http://localhost:3000", "http://localhost:5173"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  api := router.Group("/api")

  // ===============
  // || Public    ||
  // ===============
  api.GET("/", handlers.Root)
  api.GET("/health", handlers.HealthCheck)
  api.POST("/auth/register", cfg.AuthHandler.Register)
  api.POST("/auth/login", cfg.AuthHandler.Login)

  // ===============
  // || Protected ||
  // ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.GET("/auth/me", cfg.AuthHandler.GetMe)
  // Analyses
  protected.POST("/analyses", cfg.AnalysisHandler.Create)
  protected.GET("/analyses", cfg.AnalysisHandler.List)
  protected.GET("/analyses/:id", cfg.AnalysisHandler.Get)
  protected.DELETE("/analyses/:id", cfg.AnalysisHandler.Delete)
  // Opportunities
  protected.GET("/opportunities", cfg.OpportunityHandler.List)
  // Reports
  protected.POST("/reports", cfg.ReportHandler.Create)
  protected.GET("/reports", cfg.ReportHandler.List)
  protected.GET("/reports/:id", cfg.ReportHandler.Get)
  // Dashboard
  protected.GET("/dashboard/stats", cfg.DashboardHandler.Stats)

  return router
}

// ParseOrigins splits a comma separated origin list from the environment.
func ParseOrigins(raw string) []string {
  if strings.TrimSpace(raw) == "" {
    return nil
  }
  parts := strings.Split(raw, ",")
  origins := make([]string, 0, len(parts))
  for _, p := range parts {
    if trimmed := strings.TrimSpace(p); trimmed != "" {
      origins = append(origins, trimmed)
    }
  }
  return origins
}
