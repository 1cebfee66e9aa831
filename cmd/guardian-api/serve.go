package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/digitalwellness/guardian/backend/internal/config"
	"github.com/digitalwellness/guardian/backend/internal/handlers"
	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/middleware"
	"github.com/digitalwellness/guardian/backend/internal/repository"
	"github.com/digitalwellness/guardian/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local overrides live in .env; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	log.Info("starting guardian api server",
		logger.String("env", cfg.Server.Env),
		logger.String("db_path", cfg.Database.Path))

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	usageRepo := repository.NewUsageRecordRepository(db)
	moodRepo := repository.NewMoodRecordRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)

	// Initialize services
	scoringCfg := service.ScoringConfig{
		WeightScreenTime:  cfg.Scoring.WeightScreenTime,
		WeightSocialRatio: cfg.Scoring.WeightSocialRatio,
		WeightUnlocks:     cfg.Scoring.WeightUnlocks,
		WeightVolatility:  cfg.Scoring.WeightVolatility,
		ScreenTimeCeiling: cfg.Scoring.ScreenTimeCeiling,
		UnlockCeiling:     cfg.Scoring.UnlockCeiling,
		TierMediumMin:     cfg.Scoring.TierMediumMin,
		TierHighMin:       cfg.Scoring.TierHighMin,
	}
	if err := scoringCfg.Validate(); err != nil {
		return fmt.Errorf("invalid scoring configuration: %w", err)
	}

	scoringService := service.NewScoringService(scoringCfg)
	correlationService := service.NewCorrelationService(service.CorrelationConfig{
		MoodDeltaThreshold:   cfg.Correlation.MoodDeltaThreshold,
		ScreenShiftTolerance: cfg.Correlation.ScreenShiftTolerance,
	})

	ctx := context.Background()
	interventionService, err := service.NewInterventionService(ctx, ruleRepo, log)
	if err != nil {
		return fmt.Errorf("failed to initialize intervention service: %w", err)
	}
	challengeService, err := service.NewChallengeService(ctx, challengeRepo, log)
	if err != nil {
		return fmt.Errorf("failed to initialize challenge service: %w", err)
	}
	activityService := service.NewActivityService()

	// Initialize handlers
	recordsHandler := handlers.NewRecordsHandler(usageRepo, moodRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(usageRepo, scoringService, cfg.Scoring.WindowDays)
	wellnessHandler := handlers.NewWellnessHandler(usageRepo, moodRepo, scoringService, correlationService, interventionService, challengeService, cfg.Scoring.WindowDays)
	interventionsHandler := handlers.NewInterventionsHandler(interventionService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	activitiesHandler := handlers.NewActivitiesHandler(activityService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Logger(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		records := v1.Group("/records")
		{
			records.POST("/usage", recordsHandler.CreateUsageRecords)
			records.POST("/mood", recordsHandler.CreateMoodRecords)
		}

		v1.GET("/analytics/summary", analyticsHandler.GetSummary)

		wellness := v1.Group("/wellness")
		{
			wellness.GET("/assessment", wellnessHandler.GetAssessment)
			wellness.GET("/correlation", wellnessHandler.GetCorrelation)
			wellness.GET("/recommendations", wellnessHandler.GetRecommendations)
		}

		interventions := v1.Group("/interventions")
		{
			interventions.GET("/rules", interventionsHandler.ListRules)
			interventions.POST("/rules", interventionsHandler.CreateRule)
			interventions.POST("/rules/:id/feedback", interventionsHandler.RecordFeedback)
		}

		v1.GET("/activities", activitiesHandler.GetSuggestions)

		challenge := v1.Group("/challenge")
		{
			challenge.GET("", challengeHandler.GetState)
			challenge.POST("/start", challengeHandler.Start)
			challenge.POST("/check-in", challengeHandler.CheckIn)
			challenge.POST("/abandon", challengeHandler.Abandon)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
