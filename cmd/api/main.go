package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"seguimiento/metas-api/internal/config"
	"seguimiento/metas-api/internal/handlers"
	"seguimiento/metas-api/internal/middlewares"
	"seguimiento/metas-api/internal/repositories"
	"seguimiento/metas-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	metaRepo := repositories.NewMetaRepository(db)
	evidenciaRepo := repositories.NewEvidenciaRepository(db)
	envioRepo := repositories.NewEnvioRepository(db)
	calificacionRepo := repositories.NewCalificacionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize file storage
	archivoService := services.NewArchivoService(cfg.Storage.UploadPath)
	if err := archivoService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize notifier
	notifier := services.NewNotifier(
		services.NewLogSender(),
		cfg.Notifier.Concurrency,
		cfg.Notifier.QueueSize,
	)
	notifier.Start(context.Background())

	// Initialize services
	evidenciaService := services.NewEvidenciaService(evidenciaRepo, metaRepo, envioRepo, notifier)
	envioService := services.NewEnvioService(envioRepo, metaRepo, evidenciaRepo)
	calificacionService := services.NewCalificacionService(calificacionRepo, evidenciaRepo)
	reporteService := services.NewReporteService(calificacionRepo, evidenciaRepo)

	// Reviewer routes are already gated to the admin rol; any admin may
	// review any area.
	puedeRevisar := func(revisorID, areaID uuid.UUID, trimestre int) bool {
		return true
	}
	revisionService := services.NewRevisionService(evidenciaService, evidenciaRepo, puedeRevisar)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	metaHandler := handlers.NewMetaHandler(metaRepo, evidenciaRepo)
	archivoHandler := handlers.NewArchivoHandler(archivoService, cfg.Storage.MaxFileSize)
	evidenciaHandler := handlers.NewEvidenciaHandler(evidenciaService)
	envioHandler := handlers.NewEnvioHandler(envioService)
	revisionHandler := handlers.NewRevisionHandler(revisionService)
	calificacionHandler := handlers.NewCalificacionHandler(calificacionService)
	reporteHandler := handlers.NewReporteHandler(reporteService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Metas Anuales API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := middlewares.RequireAuth(cfg.JWT.Secret)
	soloAdmin := middlewares.RequireRol("admin")

	// Goal plan
	api.Get("/metas", auth, metaHandler.HandleList)
	api.Post("/metas", auth, soloAdmin, metaHandler.HandleCreate)
	api.Put("/metas/:id", auth, soloAdmin, metaHandler.HandleUpdate)
	api.Delete("/metas/:id", auth, soloAdmin, metaHandler.HandleDelete)

	// Evidence composition and submission
	api.Post("/evidencias/archivo", auth, archivoHandler.HandleUpload)
	api.Put("/evidencias/draft", auth, evidenciaHandler.HandleUpsertDraft)
	api.Get("/evidencias", auth, evidenciaHandler.HandleGet)
	api.Post("/envios", auth, envioHandler.HandleSubmit)

	// Review
	admin := api.Group("/admin", auth, soloAdmin)
	admin.Get("/evidencias", revisionHandler.HandleList)
	admin.Post("/evidencias/:id/revision", revisionHandler.HandleRevisar)
	admin.Put("/evidencias/:id/revision", revisionHandler.HandleEditarRevision)
	admin.Delete("/evidencias/:id", revisionHandler.HandleEliminar)
	admin.Put("/calificaciones", calificacionHandler.HandleSet)

	// Reporting
	api.Get("/reportes/anual", auth, reporteHandler.HandleAnual)
	api.Get("/reportes/aprobadas", auth, reporteHandler.HandleAprobadas)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Metas Anuales API",
			"version": "1.0.0",
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		notifier.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
