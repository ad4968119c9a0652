package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-pro/internal/application/analytics"
	"github.com/tu-usuario/pos-pro/internal/application/auth"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/application/usecase"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CreateSale  *sales.CreateSaleUseCase
	SaleQuery   *sales.SaleQueryUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido; pending/approve solo admin+)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Get("/pending", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), userHandler.ListPending)
	users.Put("/:id/approve", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), userHandler.Approve)

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id/stock", productHandler.AdjustStock)

	// Sales (protegido)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)
}
