package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Projects     *handlers.ProjectsHandler
	Applications *handlers.ApplicationsHandler
	Session      *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.Session.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Put("/me", cfg.Auth.UpdateProfile)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	api := app.Group("/api", cfg.Session.Handle)

	users := api.Group("/users")
	users.Get("/:id", cfg.Users.GetUser)
	users.Delete("/:id", cfg.Users.DeleteUser)

	projects := api.Group("/projects")
	// static paths before :id parameters
	projects.Get("/own", cfg.Projects.ListOwnProjects)
	projects.Get("/applications/my", cfg.Applications.MyApplications)
	projects.Get("/applicants/all", cfg.Applications.AllApplicants)
	projects.Put("/applications/:id/status", cfg.Applications.UpdateStatus)

	projects.Get("/", cfg.Projects.ListProjects)
	projects.Post("/", cfg.Projects.CreateProject)
	projects.Get("/:id", cfg.Projects.GetProject)
	projects.Put("/:id", cfg.Projects.UpdateProject)
	projects.Delete("/:id", cfg.Projects.DeleteProject)
	projects.Post("/:id/apply", cfg.Applications.Apply)
	projects.Get("/:id/application-status", cfg.Applications.ApplicationStatus)
	projects.Get("/:id/employees", cfg.Applications.ProjectApplicants)
}
