package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trackerhq/project-tracker/internal/api/http/handlers"
	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIPrefix string
	Gateway   *auth.Gateway
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Web       *handlers.WebHandler
	Projects  *handlers.ProjectsHandler
	Tasks     *handlers.TasksHandler
	Reports   *handlers.ReportsHandler
	Dashboard *handlers.DashboardHandler
}

// RegisterRoutes wires HTTP routes. The gateway middleware runs on every
// request before any handler; the role gates below only see requests the
// gateway let through.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gateway.Middleware(cfg.Web))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Browser surface: session trust model.
	app.Get("/login", cfg.Web.LoginPage)
	app.Post("/login", cfg.Web.LoginSubmit)
	app.Post("/logout", cfg.Web.Logout)
	app.Get("/", cfg.Web.Index)
	app.Get("/ws/dashboard", cfg.Dashboard.Upgrade())

	// API surface: bearer-token trust model.
	api := app.Group(cfg.APIPrefix)
	api.Post("/auth/login", cfg.Auth.Login)

	projects := api.Group("/projects")
	projects.Get("/", auth.RequireRoles(), cfg.Projects.List)
	projects.Get("/:id", auth.RequireRoles(), cfg.Projects.Get)
	projects.Post("/", auth.RequireRoles(domain.RoleAdmin, domain.RoleUser), cfg.Projects.Create)
	projects.Put("/:id", auth.RequireRoles(domain.RoleAdmin, domain.RoleUser), cfg.Projects.Update)
	projects.Delete("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Projects.Delete)

	projects.Get("/:id/tasks", auth.RequireRoles(), cfg.Tasks.List)
	projects.Post("/:id/tasks", auth.RequireRoles(domain.RoleAdmin, domain.RoleUser), cfg.Tasks.Create)
	projects.Post("/:id/tasks/import", auth.RequireRoles(domain.RoleAdmin), cfg.Tasks.Import)

	api.Post("/reports/:projectId", auth.RequireRoles(domain.RoleAdmin, domain.RoleUser), cfg.Reports.Request)
}
