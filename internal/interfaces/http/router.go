package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoventas-api/internal/application/auth"
	"github.com/jhoicas/autoventas-api/internal/application/sales"
	"github.com/jhoicas/autoventas-api/internal/application/usecase"
	"github.com/jhoicas/autoventas-api/internal/domain/access"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	UserUC *usecase.UserUseCase
	SaleUC *sales.SaleUseCase
	Log    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password/:token", authHandler.ResetPassword)

	gate := AuthMiddleware(deps.AuthUC, deps.Log)

	// Users (protegido)
	users := api.Group("/users", gate)
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Get("/", RequireCapability(access.ListUsers), userHandler.List)
	users.Post("/create", RequireCapability(access.CreateUser), userHandler.Create)
	users.Put("/approve/:id", RequireCapability(access.ApproveUser), userHandler.Approve)
	users.Put("/suspend/:id", RequireCapability(access.SuspendUser), userHandler.Suspend)
	users.Put("/:id", RequireCapability(access.UpdateUser), userHandler.Update)
	users.Delete("/:id", RequireCapability(access.DeleteUser), userHandler.Delete)

	// Vehicle sales (protegido). /customer va antes que /:userId.
	vs := api.Group("/vehiclesales", gate)
	saleHandler := NewVehicleSaleHandler(deps.SaleUC, deps.Log)
	vs.Get("/", RequireCapability(access.ListSales), saleHandler.List)
	vs.Get("/customer", RequireCapability(access.ListOwnSales), saleHandler.ListMine)
	vs.Get("/:id/receipt", RequireCapability(access.ViewReceipt), saleHandler.Receipt)
	vs.Get("/:userId", RequireCapability(access.ListCustomer), saleHandler.ListForCustomer)
	vs.Post("/create", RequireCapability(access.CreateSale), saleHandler.Create)
	vs.Put("/:id", RequireCapability(access.UpdateSale), saleHandler.Update)
	vs.Delete("/:id", RequireCapability(access.DeleteSale), saleHandler.Delete)
}
