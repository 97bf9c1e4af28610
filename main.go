package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/HrudhyaRadesh/EcoSphereLive/handlers"
	"github.com/HrudhyaRadesh/EcoSphereLive/models"
	"github.com/HrudhyaRadesh/EcoSphereLive/services"
	"github.com/HrudhyaRadesh/EcoSphereLive/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "EcoSphere",
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserMetrics{},
		&models.Activity{},
		&models.Badge{},
		&models.GlobalStats{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	statsService := services.NewStatsService(db)
	badgeService := services.NewBadgeService(db)
	rankService := services.NewRankService(db)
	metricsService := services.NewMetricsService(db, badgeService, rankService, statsService)
	userService := services.NewUserService(db, statsService)
	routeService := services.NewRouteService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditInterval := 10 * time.Minute
	if raw := os.Getenv("AUDIT_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			auditInterval = d
		}
	}
	auditWorker := workers.NewAuditWorker(db)
	go workers.PollLedger(ctx, auditWorker, auditInterval)

	services.StartStatsScheduler(statsService, rankService)

	handlers.SetupAuthRoutes(app, userService)
	handlers.SetupActivityRoutes(app, metricsService)
	handlers.SetupLeaderboardRoutes(app, rankService)
	handlers.SetupBadgeRoutes(app, badgeService)
	handlers.SetupStatsRoutes(app, statsService, rankService)
	handlers.SetupRouteRoutes(app, routeService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ EcoSphere running on http://localhost:%s", port)
	log.Println("✅ Ledger audit worker running")
	log.Println("✅ Stats & rank refresh scheduler running")
	log.Printf("✅ CORS configured for origins: %s", strings.Join(origins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
