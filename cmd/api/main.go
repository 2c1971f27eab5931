package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/feelalive/aura-engine/internal/adapters/cache"
	adapterHTTP "github.com/feelalive/aura-engine/internal/adapters/handler/http"
	"github.com/feelalive/aura-engine/internal/adapters/oracle"
	"github.com/feelalive/aura-engine/internal/adapters/repository"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	serverPort := getEnv("PORT", "8080")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	rdb, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	ctx := context.Background()

	gemini, err := oracle.NewGeminiOracle(
		ctx,
		os.Getenv("GEMINI_API_KEY_PRIMARY"),
		os.Getenv("GEMINI_API_KEY_FAILSAFE"),
		getEnv("GEMINI_MODEL", oracle.DefaultModel),
		30*time.Second,
	)
	if err != nil {
		log.Fatalf("Critical: Failed to initialise verification oracle: %v", err)
	}

	profileRepo := repository.NewPostgresProfileRepository(db)
	var taskRepo domain.TaskRepository = repository.NewPostgresTaskRepository(db)
	if rdb != nil {
		taskRepo = repository.NewCachedTaskRepository(taskRepo, rdb)
	}
	habitRepo := repository.NewPostgresHabitRepository(db)
	badHabitRepo := repository.NewPostgresBadHabitRepository(db)
	planRepo := repository.NewPostgresStudyPlanRepository(db)
	pageRepo := repository.NewPostgresAuraPageRepository(db)

	profileService := services.NewProfileService(profileRepo)
	taskService := services.NewTaskService(taskRepo, profileService, gemini)
	habitService := services.NewHabitService(habitRepo, profileService)
	badHabitService := services.NewBadHabitService(badHabitRepo, profileService)
	planService := services.NewStudyPlanService(planRepo, profileService, gemini)
	socialService := services.NewSocialService(profileRepo, profileService)
	pageService := services.NewAuraPageService(pageRepo)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is required")
	}
	tokenService := services.NewTokenService(jwtSecret, getEnv("JWT_ISSUER", "aura-engine"), 24*time.Hour)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		ProfileHandler:   adapterHTTP.NewProfileHandler(profileService),
		TaskHandler:      adapterHTTP.NewTaskHandler(taskService),
		HabitHandler:     adapterHTTP.NewHabitHandler(habitService),
		BadHabitHandler:  adapterHTTP.NewBadHabitHandler(badHabitService),
		StudyPlanHandler: adapterHTTP.NewStudyPlanHandler(planService),
		SocialHandler:    adapterHTTP.NewSocialHandler(socialService),
		AuraPageHandler:  adapterHTTP.NewAuraPageHandler(pageService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Aura Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
