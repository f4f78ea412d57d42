package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/streadway/amqp"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/config"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/database"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/extractor"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/optimizer"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/server"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/service"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/worker"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		if errors.Is(err, optimizer.ErrMissingCredential) {
			log.Fatalf("Configuration error: %s", service.Message(err))
		}
		log.Fatalf("failed to create generator: %v", err)
	}

	var opts []optimizer.Option
	if cfg.PipelineConcurrent {
		opts = append(opts, optimizer.WithConcurrentFollowups())
	}
	svc := service.New(extractor.New(), optimizer.New(gen, opts...))

	switch cfg.Mode {
	case config.ModeWorker:
		runWorker(ctx, cfg, svc)
	default:
		runServer(ctx, cfg, svc)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (optimizer.Generator, error) {
	geminiCfg := optimizer.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}
	if cfg.GeneratorBackend == config.BackendAgent {
		log.Printf("Using ADK agent backend with model %s", cfg.GeminiModel)
		return optimizer.NewAgentGenerator(ctx, geminiCfg)
	}
	log.Printf("Using Gemini API backend with model %s", cfg.GeminiModel)
	return optimizer.NewGeminiGenerator(ctx, geminiCfg)
}

func runServer(ctx context.Context, cfg *config.Config, svc *service.Service) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(svc, server.Options{
		Version:        version,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// three sequential model calls can take well over a minute
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

func runWorker(ctx context.Context, cfg *config.Config, svc *service.Service) {
	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}
	defer db.Close()

	objects, err := worker.NewR2Store(ctx, cfg.R2)
	if err != nil {
		log.Fatalf("error creating r2 client: %v", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("error connecting to RabbitMQ. err:  %v", err)
	}
	defer conn.Close()

	publisher, err := worker.NewAMQPPublisher(conn)
	if err != nil {
		log.Fatalf("error preparing session updates: %v", err)
	}

	processor := worker.NewProcessor(database.New(db), objects, publisher, svc)
	log.Printf("Starting %d workers consumer pool", cfg.WorkerCount)
	worker.NewConsumer(cfg.RabbitMQURL, processor).StartWorkerPool(ctx, cfg.WorkerCount)
	log.Println("Workers stopped")
}
