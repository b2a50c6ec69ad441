package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/healthlens/healthlens-backend/internal/app"
	"github.com/healthlens/healthlens-backend/internal/data/db"
	"github.com/healthlens/healthlens-backend/internal/data/repos"
	"github.com/healthlens/healthlens-backend/internal/http/handlers"
	"github.com/healthlens/healthlens-backend/internal/platform/groq"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
	"github.com/healthlens/healthlens-backend/internal/platform/prompts"
	"github.com/healthlens/healthlens-backend/internal/server"
	"github.com/healthlens/healthlens-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("APP_ENV")
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
	cfg, err := app.Load()
	if err != nil {
		log.Fatal("Config load failed", "error", err)
	}
	if !cfg.DevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	influencerRepo := repos.NewInfluencerRepo(thePG, log)
	claimRepo := repos.NewClaimRepo(thePG, log)
	verificationRepo := repos.NewVerificationRepo(thePG, log)

	// Prompt templates
	templates := prompts.Default()
	if cfg.PromptsFile != "" {
		templates, err = prompts.Load(cfg.PromptsFile)
		if err != nil {
			log.Fatal("Prompt templates load failed", "error", err, "path", cfg.PromptsFile)
		}
	}

	// LLM clients
	log.Info("Setting up LLM clients from main...")
	analysisClient, err := groq.NewClient(log, groq.ClientConfig{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
	}, templates)
	if err != nil {
		log.Fatal("Groq client init failed", "error", err)
	}

	// Claim discovery can run against a second provider; it falls back to
	// the Groq credentials when none is configured.
	discoveryClient := analysisClient
	if cfg.OpenAIAPIKey != "" {
		openAIBaseURL := cfg.OpenAIBaseURL
		if openAIBaseURL == "" {
			openAIBaseURL = "https://api.openai.com/v1"
		}
		openAIModel := cfg.OpenAIModel
		if openAIModel == "" {
			openAIModel = "gpt-4o-mini"
		}
		discoveryClient, err = groq.NewClient(log, groq.ClientConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: openAIBaseURL,
			Model:   openAIModel,
		}, templates)
		if err != nil {
			log.Fatal("OpenAI client init failed", "error", err)
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	analysisService := services.NewAnalysisService(log, analysisClient, influencerRepo, claimRepo, verificationRepo)
	discoveryService := services.NewClaimDiscoveryService(log, discoveryClient, influencerRepo, claimRepo, verificationRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthHandler := handlers.NewHealthHandler(handlers.EnvStatus{
		GroqConfigured:     cfg.GroqAPIKey != "",
		OpenAIConfigured:   cfg.OpenAIAPIKey != "",
		DatabaseConfigured: cfg.DatabaseURL != "" || os.Getenv("POSTGRES_HOST") != "",
		AppEnv:             cfg.AppEnv,
	})
	analysisHandler := handlers.NewAnalysisHandler(analysisService, log, cfg.DevMode())
	claimsHandler := handlers.NewClaimsHandler(discoveryService, log, cfg.DevMode())
	influencerHandler := handlers.NewInfluencerHandler(influencerRepo, claimRepo, log, cfg.DevMode())

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		HealthHandler:     healthHandler,
		AnalysisHandler:   analysisHandler,
		ClaimsHandler:     claimsHandler,
		InfluencerHandler: influencerHandler,
	})

	log.Info("Starting server", "port", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
