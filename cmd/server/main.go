package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"retail-edge-pos/internal/auth"
	"retail-edge-pos/internal/config"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/events"
	"retail-edge-pos/internal/handlers"
	"retail-edge-pos/internal/sales"
	"retail-edge-pos/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	database.Connect(cfg)

	// --- Events: Kafka when brokers are configured, the log otherwise ---
	var publisher events.Publisher = events.LogPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafka.Close()
		publisher = kafka
		log.Printf("📡 Publishing events to Kafka at %v", cfg.KafkaBrokers)
	}

	terminalID := utils.TerminalID()
	proc := &sales.Processor{
		DB:                database.DB,
		Publisher:         publisher,
		DefaultTaxRate:    cfg.DefaultTaxRate,
		LowStockThreshold: cfg.LowStockThreshold,
		TerminalID:        terminalID,
	}

	if cfg.AllowAdminRegistration {
		log.Println("⚠️ WARNING: Admin registration is OPEN. Disable this in production!")
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(r, cfg, proc)

	// --- DEPLOYMENT: Serve React Frontend ---
	r.Static("/assets", "./web/assets")
	r.StaticFile("/vite.svg", "./web/vite.svg")

	// SPA Catch-All: If the user refreshes on "/dashboard",
	// serve index.html so React can handle the routing.
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server starting on %s (terminal %s)", cfg.BaseURL, terminalID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("Server failed to start:", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}
}
