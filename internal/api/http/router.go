package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-portal/internal/api/http/handlers"
	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Profile       *handlers.ProfileHandler
	Courses       *handlers.CoursesHandler
	Tasks         *handlers.TasksHandler
	Financial     *handlers.FinancialHandler
	Admin         *handlers.AdminHandler
	Notifications *handlers.NotificationsHandler
	Gate          *auth.AccessGate
}

// RegisterRoutes wires HTTP and websocket routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	gate := cfg.Gate

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", gate.Authenticate, cfg.Auth.ChangePassword)

	profile := api.Group("/profile", gate.Authenticate)
	profile.Get("/me", cfg.Profile.Me)
	profile.Put("/me", cfg.Profile.UpdateMe)

	courses := api.Group("/courses", gate.Authenticate)
	courses.Get("/", cfg.Courses.List)
	courses.Get("/mine", cfg.Courses.Mine)
	courses.Post("/", gate.RequireRole(domain.RoleTeacher, domain.RoleAdmin), cfg.Courses.Create)
	courses.Post("/enroll", gate.RequireRole(domain.RoleStudent, domain.RoleAdmin), cfg.Courses.Enroll)
	courses.Get("/:id/materials", cfg.Courses.ListMaterials)
	courses.Post("/:id/materials", gate.RequireRole(domain.RoleTeacher), cfg.Courses.AddMaterial)

	tasks := api.Group("/tasks", gate.Authenticate)
	tasks.Post("/", gate.RequireRole(domain.RoleTeacher), cfg.Tasks.Create)
	tasks.Get("/mine", gate.RequireRole(domain.RoleStudent), cfg.Tasks.Mine)
	tasks.Get("/course/:id", gate.RequireRole(domain.RoleTeacher, domain.RoleAdmin), cfg.Tasks.ListByCourse)
	tasks.Post("/grade", gate.RequireRole(domain.RoleTeacher), cfg.Tasks.PostGrade)

	financial := api.Group("/financial", gate.Authenticate)
	financial.Get("/me", gate.RequireRole(domain.RoleStudent), cfg.Financial.MyLedger)
	financial.Post("/charges", gate.RequireRole(domain.RoleAdmin), cfg.Financial.PostCharge)
	financial.Post("/payments", gate.RequireRole(domain.RoleAdmin), cfg.Financial.PostPayment)

	admin := api.Group("/admin", gate.Authenticate, gate.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard/stats", cfg.Admin.Stats)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/activity-logs", cfg.Admin.Activity)
	admin.Post("/announcements", cfg.Admin.Announce)

	// authentication happens inside the session handshake, not here:
	// browsers cannot set an Authorization header on websocket upgrade
	app.Get("/ws/notifications", cfg.Notifications.Upgrade, cfg.Notifications.Serve())
}
