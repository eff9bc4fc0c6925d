// @title         taskboard API
// @version       1.0
// @description   REST API для управления задачами с JWT-аутентификацией и ролевым доступом (USER/ADMIN).
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации в формате "Bearer <JWT>".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	// internal imports
	httpapi "github.com/artem13815/taskboard/api/http"
	"github.com/artem13815/taskboard/api/http/handlers"
	"github.com/artem13815/taskboard/api/http/presenter"
	_ "github.com/artem13815/taskboard/docs"
	"github.com/artem13815/taskboard/pkg/auth"
	"github.com/artem13815/taskboard/pkg/config"
	"github.com/artem13815/taskboard/pkg/health"
	healthpg "github.com/artem13815/taskboard/pkg/health/checkers"
	"github.com/artem13815/taskboard/pkg/repository/memory"
	pgrepo "github.com/artem13815/taskboard/pkg/repository/postgres"
	"github.com/artem13815/taskboard/pkg/security/jwt"
	"github.com/artem13815/taskboard/pkg/storage/postgres"
	"github.com/artem13815/taskboard/pkg/task"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				fiberErr = e
				code = e.Code
			}
			if fiberErr != nil && code < fiber.StatusInternalServerError {
				return presenter.Error(c, code, presenter.CodeValidation, fiberErr.Message)
			}
			// Internals are never surfaced to clients
			return presenter.Error(c, fiber.StatusInternalServerError, presenter.CodeServerError, "internal server error")
		},
	})
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Wire dependencies (Clean Architecture)
	var (
		userRepo  auth.UserRepository
		taskRepo  task.Repository
		readiness health.ReadinessUseCase
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()

		users, err := pgrepo.NewUserRepository(pool)
		if err != nil {
			log.Fatalf("init user repo: %v", err)
		}
		tasks, err := pgrepo.NewTaskRepository(pool)
		if err != nil {
			log.Fatalf("init task repo: %v", err)
		}
		userRepo, taskRepo = users, tasks
		readiness = health.NewService(healthpg.NewPostgresChecker(pool))
	} else {
		// No DATABASE_URL: run fully in-memory (dev/demo mode)
		log.Print("DATABASE_URL не задан, используется in-memory хранилище")
		users := memory.NewUserRepository()
		userRepo = users
		taskRepo = memory.NewTaskRepository(users)
		readiness = health.NewService()
	}

	// Token generator/verifier
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authUC := auth.NewAuthService(userRepo, jwtGen)
	authHandler := handlers.NewAuthHandler(authUC)

	taskUC := task.NewService(taskRepo)
	taskHandler := handlers.NewTaskHandler(taskUC)

	healthHandler := handlers.NewHealthHandler(readiness, cfg.Environment)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(jwtGen, userRepo)

	// Register routes
	httpapi.Register(app, authHandler, taskHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	go func() {
		log.Printf("HTTP server listening on :%s (%s)", cfg.Port, cfg.Environment)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Print("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
