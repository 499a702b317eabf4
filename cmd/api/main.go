package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"tix4u-backend/interfaces/api/handlers"
	"tix4u-backend/interfaces/api/middleware"
	"tix4u-backend/interfaces/api/routes"
	"tix4u-backend/pkg/di"
	"tix4u-backend/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		// logger อาจยังไม่ init
		panic("Failed to initialize container: " + err.Error())
	}

	setupGracefulShutdown(container)

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		// direct upload จำกัดขนาดที่ service layer อีกชั้น
		BodyLimit: int(cfg.Storage.MaxUploadSize) + 1024*1024,
	})

	// ลำดับสำคัญ: request ID ต้องมาก่อน logger
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware())

	h := handlers.NewHandlers(container.GetHandlerServices())
	routes.SetupRoutes(app, h, cfg.JWT.Secret)

	logger.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env, "app", cfg.App.Name)

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		container.Cleanup()
		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
