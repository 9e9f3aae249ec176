package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-admin/internal/application/analytics"
	"github.com/jhoicas/portal-admin/internal/application/auth"
	"github.com/jhoicas/portal-admin/internal/application/chat"
	"github.com/jhoicas/portal-admin/internal/application/notification"
	"github.com/jhoicas/portal-admin/internal/application/reports"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/application/usecase"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store        *store.Store
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	CompanyUC    *usecase.CompanyUseCase
	ProductUC    *usecase.ProductUseCase
	Permissions  *usecase.PermissionService
	DashboardUC  *analytics.DashboardUseCase
	Reports      *reports.Service
	Chat         *chat.Service
	Dispatcher   *notification.Dispatcher
	LoginLimiter *IPRateLimiter
	EmailLimiter *IPRateLimiter
	FunctionKey  string // clave compartida de /api/send-email
	JWTSecret    string
	AppName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Función de envío de correo: clave de función o JWT, con límite por IP
	emailLimiter := deps.EmailLimiter
	if emailLimiter == nil {
		emailLimiter = NewIPRateLimiter(0)
	}
	api.Post("/send-email", emailLimiter.Middleware(), FunctionKeyAuth(deps.FunctionKey, deps.JWTSecret),
		NewEmailHandler(deps.Dispatcher).Send)

	// Auth (login público con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	loginLimiter := deps.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = NewIPRateLimiter(0)
	}
	api.Post("/auth/login", loginLimiter.Middleware(), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/switch-company", authHandler.SwitchCompany)
	protected.Get("/auth/me", authHandler.Me)

	perm := func(p string) fiber.Handler { return RequirePermission(p, deps.Permissions) }
	writers := RequireRole(entity.RoleAdmin, entity.RoleOperativo)
	admins := RequireRole(entity.RoleAdmin)

	// Users
	users := protected.Group("/users", perm(entity.PermUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", admins, userHandler.Create)
	users.Put("/:id", admins, userHandler.Update)
	users.Delete("/:id", admins, userHandler.Delete)
	users.Post("/:id/welcome", writers, userHandler.SendWelcome)

	// Companies (solo Admin modifica)
	companies := protected.Group("/companies", perm(entity.PermCompanies))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", admins, companyHandler.Create)
	companies.Put("/:id", admins, companyHandler.Update)
	companies.Delete("/:id", admins, companyHandler.Delete)

	// Products
	products := protected.Group("/products", perm(entity.PermInventory))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", writers, productHandler.Delete)
	products.Post("/:id/low-stock-alert", writers, productHandler.SendLowStockAlert)

	// Reports
	rep := protected.Group("/reports", perm(entity.PermReports))
	reportHandler := NewReportHandler(deps.Reports)
	rep.Get("/", reportHandler.List)
	rep.Get("/history", reportHandler.History)
	rep.Get("/:type/data", reportHandler.Data)
	rep.Get("/:type/export/pdf", reportHandler.ExportPDF)
	rep.Get("/:type/export/excel", reportHandler.ExportExcel)
	rep.Post("/:type/email", reportHandler.Email)
	rep.Post("/:type/schedule", reportHandler.Schedule)

	// Dashboard y actividad (cualquier usuario autenticado)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Store)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
	protected.Get("/activity", dashboardHandler.Activity)

	// Chat de soporte
	chatGroup := protected.Group("/chat", perm(entity.PermChat))
	chatHandler := NewChatHandler(deps.Chat)
	chatGroup.Get("/quick-replies", chatHandler.QuickReplies)
	chatGroup.Get("/conversations", chatHandler.Conversations)
	chatGroup.Post("/conversations", chatHandler.CreateConversation)
	chatGroup.Get("/conversations/:id/messages", chatHandler.Messages)
	chatGroup.Post("/conversations/:id/messages", chatHandler.Send)
	chatGroup.Delete("/conversations/:id", chatHandler.DeleteConversation)
	chatGroup.Delete("/messages", chatHandler.Clear)
}
