package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"enscal/internal/app"
	"enscal/internal/calendar"
	"enscal/internal/infra/config"
	idb "enscal/internal/infra/database"
	"enscal/internal/infra/httpapi"
	"enscal/internal/infra/logger"
	"enscal/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. Environment: %s, Timezone: %s", cfg.Environment, cfg.Timezone)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	eventRepo := idb.NewPostgresEventRepository(db)
	directoryRepo := idb.NewPostgresDirectoryRepository(db)
	log.Info("Repositories initialized.")

	// Initialize Services
	styles := calendar.DefaultStyles()
	calendarService := app.NewCalendarService(eventRepo, directoryRepo, styles, cfg.Location, log)
	eventService := app.NewEventService(eventRepo, cfg.Location, log)
	exportService := app.NewExportService(calendarService, cfg.ExportProdID, cfg.Location)
	digestService := app.NewDigestService(calendarService, cfg.DigestWindowDays, log)
	log.Info("Application services initialized.")

	// Initialize Digest Scheduler
	digestScheduler := scheduler.NewDigestScheduler(digestService, log, cfg.CronSpecDigest)
	digestScheduler.Start()

	// Initialize HTTP API
	f := fiber.New(fiber.Config{AppName: "enscal"})
	handler := httpapi.NewHandler(calendarService, eventService, exportService, log)
	httpapi.RegisterRoutes(f, handler, httpapi.NewViewerMiddleware(directoryRepo))
	log.Info("HTTP routes registered.")

	go func() {
		if err := f.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("FATAL: HTTP server stopped: %v", err)
		}
	}()
	log.Infof("Application setup complete. Listening on %s", cfg.HTTPAddr)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	digestScheduler.Stop()
	if err := f.Shutdown(); err != nil {
		log.Errorf("Error during HTTP server shutdown: %v", err)
	}
	// db.Close() is handled by defer
	log.Info("Application shut down gracefully.")
}
