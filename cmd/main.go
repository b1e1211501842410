package main

import (
  "fmt"
  "os"
  "time"

  "github.com/marketpulse/marketpulse-backend/internal/db"
  "github.com/marketpulse/marketpulse-backend/internal/handlers"
  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/middleware"
  "github.com/marketpulse/marketpulse-backend/internal/repos"
  "github.com/marketpulse/marketpulse-backend/internal/server"
  "github.com/marketpulse/marketpulse-backend/internal/services"
  "github.com/marketpulse/marketpulse-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
  if jwtSecretKey == "" {
    log.Error("JWT_SECRET_KEY is required")
    os.Exit(1)
  }
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
  allowedOrigins := server.ParseOrigins(utils.GetEnv("CORS_ORIGINS", "", log))

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  analysisRepo := repos.NewAnalysisRepo(thePG, log)
  reportRepo := repos.NewReportRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  aiClient := services.NewAIClient(log)
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  analysisService := services.NewAnalysisService(thePG, log, analysisRepo, aiClient)
  reportService := services.NewReportService(thePG, log, analysisRepo, reportRepo, aiClient)
  dashboardService := services.NewDashboardService(thePG, log, analysisRepo, reportRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(log, authService, userService)
  analysisHandler := handlers.NewAnalysisHandler(log, analysisService)
  opportunityHandler := handlers.NewOpportunityHandler(log, analysisService)
  reportHandler := handlers.NewReportHandler(log, reportService)
  dashboardHandler := handlers.NewDashboardHandler(log, dashboardService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AllowedOrigins:     allowedOrigins,
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    AnalysisHandler:    analysisHandler,
    OpportunityHandler: opportunityHandler,
    ReportHandler:      reportHandler,
    DashboardHandler:   dashboardHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
