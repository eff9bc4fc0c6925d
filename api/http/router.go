package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/handlers"
	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/auth"
	"github.com/artem13815/taskboard/pkg/security/rbac"
)

// Register wires all HTTP routes onto given Fiber app. Mutating task routes
// run behind requireAdmin; task reads only need a valid token.
func Register(app *fiber.App, authHandler *handlers.AuthHandler, taskHandler *handlers.TaskHandler, healthHandler *handlers.HealthHandler, authMW fiber.Handler) {
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/", func(c *fiber.Ctx) error {
		return presenter.Success(c, http.StatusOK, "Welcome to REST API v1", fiber.Map{
			"endpoints": fiber.Map{
				"auth":  "/api/v1/auth",
				"tasks": "/api/v1/tasks",
			},
		})
	})

	a := v1.Group("/auth")
	a.Post("/register", authHandler.Register)
	a.Post("/login", authHandler.Login)
	a.Get("/me", authMW, authHandler.Me)

	requireAdmin := rbac.RequireRole(auth.RoleAdmin)
	anyRole := rbac.RequireRole(auth.RoleUser, auth.RoleAdmin)

	t := v1.Group("/tasks", authMW)
	t.Get("/", anyRole, taskHandler.List)
	t.Get("/:id", anyRole, taskHandler.GetByID)
	t.Post("/", requireAdmin, taskHandler.Create)
	t.Put("/:id", requireAdmin, taskHandler.Update)
	t.Delete("/:id", requireAdmin, taskHandler.Delete)

	// Fallback: everything unrouted is a uniform 404
	app.Use(func(c *fiber.Ctx) error {
		return presenter.Error(c, http.StatusNotFound, presenter.CodeRouteNotFound, "route not found: "+c.OriginalURL())
	})
}
