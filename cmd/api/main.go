package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Gabo-araya/connect4-IA-agent/internal/config"
	"github.com/Gabo-araya/connect4-IA-agent/internal/repository/postgres"
	"github.com/Gabo-araya/connect4-IA-agent/internal/repository/redis"
	"github.com/Gabo-araya/connect4-IA-agent/internal/service/cleanup"
	"github.com/Gabo-araya/connect4-IA-agent/internal/service/game"
	transportHttp "github.com/Gabo-araya/connect4-IA-agent/internal/transport/http"
	"github.com/Gabo-araya/connect4-IA-agent/internal/transport/http/middleware"
	"github.com/Gabo-araya/connect4-IA-agent/internal/transport/websocket"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable:", err)
	}

	log.Println("[DB] Running database migrations...")
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Repositories
	gameRepo := postgres.NewGameRepo(db)

	// Redis is optional: without it, difficulty adjustment reads Postgres
	if err := redis.InitRedis(); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var winnerCache game.WinnerCache
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		winnerCache = redis.NewWinnerCache(redis.RedisClient, game.AdjustmentWindow)
	}

	// Services
	manager := game.NewManager(gameRepo, winnerCache, cfg.DefaultDifficulty)

	cleanupWorker := cleanup.NewWorker(manager, cfg.InactivityTimeout)
	cleanupWorker.Start()

	// Transports
	gameHandler := transportHttp.NewGameHandler(manager)
	historyHandler := transportHttp.NewHistoryHandler(gameRepo)
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, manager)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())

	gameAuth := middleware.GameAuthMiddleware()

	router.POST("/api/games", gameHandler.CreateGame)
	router.GET("/api/history", historyHandler.GetHistory)

	authorized := router.Group("/api/games/:id")
	authorized.Use(gameAuth)
	{
		authorized.GET("", gameHandler.GetGame)
		authorized.POST("/moves", gameHandler.PostMove)
		authorized.GET("/suggestion", gameHandler.GetSuggestion)
		authorized.GET("/evaluation", gameHandler.GetEvaluation)
		authorized.GET("/history", historyHandler.GetGameDetails)
	}

	// WebSocket route: auth happens inside via the init message
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
