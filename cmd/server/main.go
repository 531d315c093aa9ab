package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dataroom/backend/internal/config"
	"github.com/dataroom/backend/internal/database"
	"github.com/dataroom/backend/internal/handlers"
	"github.com/dataroom/backend/internal/middleware"
	"github.com/dataroom/backend/internal/services"
	"github.com/dataroom/backend/pkg/logger"
	"github.com/dataroom/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	collisionService := services.NewCollisionService(db)
	ssoService := services.NewSSOService(db, cfg)

	authHandler := handlers.NewAuthHandler(ssoService, cfg.Server.FrontendURL)
	filesHandler := handlers.NewFilesHandler(db, collisionService)
	foldersHandler := handlers.NewFoldersHandler(db, collisionService)
	accountHandler := handlers.NewAccountHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.FrontendURL))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Get("/google", authHandler.GoogleLogin)
	authRoutes.Get("/google/callback", authHandler.GoogleCallback)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Get("/session", authMiddleware.RequireAuth, authHandler.Session)

	fileRoutes := api.Group("/files", authMiddleware.RequireAuth)
	fileRoutes.Get("/", filesHandler.List)
	fileRoutes.Post("/", filesHandler.BulkCreate)
	fileRoutes.Post("/bulk-delete", filesHandler.BulkDelete)
	fileRoutes.Patch("/", filesHandler.Rename)
	fileRoutes.Patch("/starred", filesHandler.UpdateStarred)
	fileRoutes.Delete("/", filesHandler.Delete)

	folderRoutes := api.Group("/folders", authMiddleware.RequireAuth)
	folderRoutes.Get("/", foldersHandler.List)
	folderRoutes.Get("/tree", foldersHandler.Tree)
	folderRoutes.Get("/:id/path", foldersHandler.Path)
	folderRoutes.Post("/", foldersHandler.Create)
	folderRoutes.Patch("/", foldersHandler.Rename)
	folderRoutes.Delete("/", foldersHandler.Delete)

	api.Delete("/account", authMiddleware.RequireAuth, accountHandler.Delete)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
