package main

import (
	"log"

	"crowdfunding-service/internal/config"
	"crowdfunding-service/internal/handlers"
	"crowdfunding-service/internal/metrics"
	"crowdfunding-service/internal/models"
	"crowdfunding-service/internal/repository"
	"crowdfunding-service/internal/services"
	"crowdfunding-service/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	minioClient := InitMinIOClient(cfg)

	projectRepo := repository.NewProjectRepository(db)
	projectService := services.NewProjectService(projectRepo)
	imageService := services.NewImageService(projectRepo, minioClient, cfg.MinioBucket, cfg.MinioSSL)

	app := fiber.New()
	app.Use(metrics.RequestDuration())

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Set up routes for project CRUD and lifecycle operations
	h := handlers.NewProjectHandler(projectService, imageService)
	api := app.Group("/api")
	api.Post("/projetos", h.CreateProject)
	api.Get("/projetos", h.ListProjects)
	// fixed segments must be registered before the :id routes
	api.Get("/projetos/ativos", h.ListActiveProjects)
	api.Get("/projetos/tags", h.ListProjectsByTags)
	api.Get("/projetos/categoria/:categoria", h.ListProjectsByCategory)
	api.Get("/projetos/criador/:criadorId", h.ListProjectsByCreator)
	api.Get("/projetos/:id", h.GetProject)
	api.Put("/projetos/:id", h.UpdateProject)
	api.Delete("/projetos/:id", h.DeleteProject)
	api.Post("/projetos/:id/publicar", h.PublishProject)
	api.Post("/projetos/:id/doacao", h.AddDonation)
	api.Post("/projetos/:id/imagem", h.UploadProjectImage)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Start the Fiber server
	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.Project{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func InitMinIOClient(cfg *config.Config) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return minioClient
}
