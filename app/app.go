package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"monetrix/api"
	"monetrix/auth"
	"monetrix/cache"
	"monetrix/chatbot"
	"monetrix/config"
	"monetrix/database"
	"monetrix/database/analysis"
	"monetrix/database/users"
	"monetrix/llm"
	"monetrix/service"
)

// App represents the main application
type App struct {
	config *config.Config
	db     *database.Database
	redis  *cache.RedisClient
	server *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
		db:     nil, // Will be initialized in Start()
		redis:  nil, // Will be initialized in Start()
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	log.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	if err := a.db.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 2. Redis Connection. Sessions live here, so unlike the analysis
	// cache this connection is not optional.
	log.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		return fmt.Errorf("redis connection failed")
	}
	a.redis = redisClient

	// 3. Repositories
	analysisRepo := analysis.NewRepository(a.db.DB())
	userRepo := users.NewRepository(a.db.DB())

	// 4. Auth manager with Redis-backed sessions
	sessionStore := cache.NewSessionStore(a.redis)
	sessionTTL := time.Duration(a.config.Auth.SessionTTLHours) * time.Hour
	authManager := auth.NewManager(userRepo, sessionStore, sessionTTL, a.config.Auth.MinPasswordLen)

	// 5. Analysis service with latest-record cache
	analysisCache := cache.NewAnalysisCache(a.redis)
	analysisService := service.NewAnalysisService(analysisRepo, analysisCache)

	// 6. Chatbot, with LLM fallback if enabled
	var llmClient *llm.Client
	if a.config.LLM.Enabled {
		llmClient = llm.NewClient(a.config.LLM.Endpoint, a.config.LLM.APIKey, a.config.LLM.Model)
		log.Printf("✅ Chatbot LLM fallback ENABLED (Model: %s)", a.config.LLM.Model)
	} else {
		log.Println("ℹ️  Chatbot LLM fallback DISABLED")
	}
	bot := chatbot.NewBot(chatbot.NewDictionary(), llmClient)

	// 7. API server
	a.server = api.NewServer(analysisService, authManager, bot)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(a.config.ServerPort)
	}()

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("🛑 Received signal %v, shutting down...", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("API server failed: %w", err)
		}
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis connection: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Failed to close database connection: %v", err)
		}
	}
	log.Println("👋 Shutdown complete")
	return nil
}
