package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/easy-post-ia-1/easy-post-ia-backend/configs"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/api/handlers"
	job "github.com/easy-post-ia-1/easy-post-ia-backend/internal/jobs"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/queue"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	strategyRepo := repository.NewStrategyRepository(db)
	postRepo := repository.NewPostRepository(db)
	credentialsRepo := repository.NewCredentialsRepository(db)
	scheduledJobRepo := repository.NewScheduledJobRepository(db)
	postingAttemptRepo := repository.NewPostingAttemptRepository(db)

	storageService := service.NewStorageService(*cfg)
	generatorService := service.NewGeneratorService(*cfg, postRepo, storageService)
	schedulerService := service.NewSchedulerService(scheduledJobRepo)
	credentialsService := service.NewCredentialsService(*cfg, credentialsRepo)

	queueW := queue.NewQueue(strategyRepo, postRepo, postingAttemptRepo, generatorService, schedulerService, credentialsService, service.NewTwitterClient)

	strategy := handlers.NewStrategyHandler(strategyRepo, postRepo, postingAttemptRepo, client)
	api := app.Group("/api")
	api.Post("/strategies", strategy.CreateStrategy)
	api.Get("/strategies/:id", strategy.GetStrategy)

	// cron-driven dispatcher for the scheduling registry
	dispatcher := job.NewDispatchJob(scheduledJobRepo)
	dispatcher.Register(queue.TaskTypePublishPost, func(ctx context.Context, args string) error {
		var payload queue.PublishPostPayload
		if err := json.Unmarshal([]byte(args), &payload); err != nil {
			return err
		}
		return queue.EnqueuePublishPost(client, payload)
	})

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", dispatcher.DispatchDue); err != nil {
		log.Fatalf("Failed to register the scheduled-job dispatcher: %v", err)
	}
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeCreateStrategy, queueW.HandleCreateStrategyTask)
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
