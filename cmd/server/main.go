package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/n23dcpt085-cyber/social-media-website/configs"
	"github.com/n23dcpt085-cyber/social-media-website/internal/api/handlers"
	"github.com/n23dcpt085-cyber/social-media-website/internal/api/middleware"
	job "github.com/n23dcpt085-cyber/social-media-website/internal/jobs"
	"github.com/n23dcpt085-cyber/social-media-website/internal/models"
	"github.com/n23dcpt085-cyber/social-media-website/internal/publisher"
	"github.com/n23dcpt085-cyber/social-media-website/internal/queue"
	"github.com/n23dcpt085-cyber/social-media-website/internal/repository"
	"github.com/n23dcpt085-cyber/social-media-website/internal/service"
	"github.com/robfig/cron"
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
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-User-ID",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	postingHistoryRepo := repository.NewPostingHistoryRepository(db)

	publishers := map[string]publisher.Publisher{
		models.PlatformFacebook:  publisher.NewFacebookPublisher(cfg, nil),
		models.PlatformInstagram: publisher.NewInstagramPublisher(cfg, nil),
		models.PlatformTiktok:    publisher.NewTiktokPublisher(cfg, nil),
	}

	postService := service.NewPostService(postRepo, postingHistoryRepo, publishers)
	assetService := service.NewAssetService(cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := app.Group("/api")
	api.Use(middleware.IdentityMiddleware())

	post := handlers.NewPostHandler(postService, client)
	api.Post("/:platform/posts", post.CreatePost)
	api.Get("/:platform/posts", post.ListPosts)
	api.Get("/:platform/posts/:id", post.GetPost)

	asset := handlers.NewAssetHandler(assetService)
	api.Post("/assets", asset.UploadAsset)

	// cron jobs
	staleQueuedJob := job.NewStaleQueuedJob(postRepo, 15*time.Minute)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", staleQueuedJob.Run)
	c.Start()

	// queue
	queueW := queue.NewQueue(postService)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
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
