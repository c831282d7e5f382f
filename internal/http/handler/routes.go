package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"caseflow/internal/config"
	"caseflow/internal/http/middleware"
	"caseflow/internal/model"
	"caseflow/internal/service"
)

// Services bundles the injected service layer for route registration.
type Services struct {
	Clients   service.ClientService
	Cases     service.CaseService
	Tasks     service.TaskService
	Documents service.DocumentService
	Dashboard service.DashboardService
	Auth      service.AuthService
	Users     service.UserService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything flows through Services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, authCfg config.AuthConfig) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	auth := middleware.Auth(authCfg.JWTSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	// Authentication
	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register(svc.Auth))
	authGroup.Post("/login", Login(svc.Auth))
	authGroup.Get("/me", auth, Me(svc.Users))

	// Clients: destructive operations are Admin-only
	clients := api.Group("/clients", auth)
	clients.Get("/search/:query", SearchClients(svc.Clients))
	clients.Get("/", ListClients(svc.Clients))
	clients.Post("/", admin, CreateClient(svc.Clients))
	clients.Get("/:id", GetClient(svc.Clients))
	clients.Put("/:id", admin, UpdateClient(svc.Clients))
	clients.Delete("/:id", admin, DeleteClient(svc.Clients))

	// Cases: delete is Admin-only
	cases := api.Group("/cases", auth)
	cases.Get("/search/:query", SearchCases(svc.Cases))
	cases.Get("/client/:clientId", ListCasesByClient(svc.Cases))
	cases.Get("/", ListCases(svc.Cases))
	cases.Post("/", CreateCase(svc.Cases))
	cases.Get("/:id", GetCase(svc.Cases))
	cases.Put("/:id", UpdateCase(svc.Cases))
	cases.Delete("/:id", admin, DeleteCase(svc.Cases))

	// Tasks
	tasks := api.Group("/tasks", auth)
	tasks.Get("/case/:caseId", ListTasksByCase(svc.Tasks))
	tasks.Get("/", ListTasks(svc.Tasks))
	tasks.Post("/", CreateTask(svc.Tasks))
	tasks.Get("/:id", GetTask(svc.Tasks))
	tasks.Put("/:id", UpdateTask(svc.Tasks))
	tasks.Delete("/:id", DeleteTask(svc.Tasks))

	// Documents. Download and view are deliberately left unauthenticated to
	// match the historical sharing behavior; see DESIGN.md.
	documents := api.Group("/documents")
	documents.Get("/download/:id", DownloadDocument(svc.Documents))
	documents.Get("/view/:id", ViewDocument(svc.Documents))
	documents.Post("/", auth, UploadDocument(svc.Documents))
	documents.Get("/", auth, ListDocuments(svc.Documents))
	documents.Get("/:id", auth, GetDocument(svc.Documents))
	documents.Put("/:id", auth, UpdateDocument(svc.Documents))
	documents.Delete("/:id", auth, DeleteDocument(svc.Documents))

	// Dashboard
	api.Get("/dashboard/stats", auth, DashboardStats(svc.Dashboard))

	// Users
	users := api.Group("/users", auth)
	users.Get("/", admin, ListUsers(svc.Users))
	users.Get("/:id", GetUser(svc.Users))
}
