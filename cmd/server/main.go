package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/ai-studio/backend/internal/config"
	"github.com/ai-studio/backend/internal/database"
	"github.com/ai-studio/backend/internal/generation"
	"github.com/ai-studio/backend/internal/handlers"
	"github.com/ai-studio/backend/internal/ledger"
	"github.com/ai-studio/backend/internal/logger"
	"github.com/ai-studio/backend/internal/middleware"
	"github.com/ai-studio/backend/internal/projects"
	"github.com/ai-studio/backend/internal/session"
	"github.com/ai-studio/backend/internal/store"
	"github.com/ai-studio/backend/internal/supabase"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logg := logger.New(cfg.Environment)

	// Supabase clients. Without the endpoint and key the server runs in
	// degraded mode: auth and persistence fail fast, nothing is durable.
	var authClient session.AuthClient
	var storageClient *supabase.StorageClient
	if cfg.IsSupabaseConfigured() {
		supabaseClient, err := supabase.NewClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase client: %v", err)
		}
		authClient = supabase.NewAuth(supabaseClient)

		storageClient, err = supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
	} else {
		logg.Warn().Msg("SUPABASE_URL / SUPABASE_PUBLISHABLE_KEY not set, running in degraded mode")
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			logg.Warn().Err(err).Msg("failed to initialize database client, persistence disabled")
		} else {
			defer dbClient.Close()
			st = dbClient

			migrator, err := database.NewMigrator(cfg.DatabaseURL, logg)
			if err != nil {
				logg.Warn().Err(err).Msg("failed to initialize migrator")
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					logg.Warn().Err(err).Msg("migration failed")
				}
			}
		}
	} else {
		logg.Warn().Msg("DATABASE_URL not set, persistence disabled")
	}

	// Services
	sessions := session.NewManager(authClient, st, logg)
	defer sessions.Close()

	sub := sessions.Subscribe()
	defer sub.Unsubscribe()
	go func() {
		for ev := range sub.C {
			logg.Debug().Str("event", string(ev.Type)).Str("user_id", ev.UserID.String()).Msg("session event")
		}
	}()

	ledg := ledger.New(st, sessions, logg)
	provider := generation.NewMockProvider()
	flow := generation.NewService(provider, ledg, st, st, logg)
	projectService := projects.NewService(st, storageClient, logg)

	// Handlers
	authHandler := handlers.NewAuthHandler(sessions)
	generateHandler := handlers.NewGenerateHandler(flow, sessions)
	projectsHandler := handlers.NewProjectsHandler(projectService)
	creditsHandler := handlers.NewCreditsHandler(ledg, sessions)

	// Router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/plans", creditsHandler.ListPlans)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/generate/image", generateHandler.GenerateImage)
	authed.POST("/generate/video", generateHandler.GenerateVideo)
	authed.GET("/projects", projectsHandler.ListProjects)
	authed.PATCH("/projects/:project_id", projectsHandler.RenameProject)
	authed.DELETE("/projects/:project_id", projectsHandler.DeleteProject)
	authed.GET("/credits/transactions", creditsHandler.ListTransactions)
	authed.POST("/credits/adjust", creditsHandler.AdjustCredits)

	handler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
